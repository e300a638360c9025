package geometry

import "math"

// roundingTolerance absorbs floating error in the trigonometry so that quarter
// turns and other exact results are not bumped up by a pixel.
const roundingTolerance = 1e-9

// NormalizeDegrees maps any angle into [0, 360). Non-finite input maps to 0.
func NormalizeDegrees(degrees float64) float64 {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return 0
	}
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// RotatedSize returns the bounding box of a src-sized rectangle rotated by
// degrees about its center, rounded up to whole pixels.
func RotatedSize(src Size, degrees float64) Size {
	rad := NormalizeDegrees(degrees) * math.Pi / 180
	cos := math.Abs(math.Cos(rad))
	sin := math.Abs(math.Sin(rad))

	w := float64(src.W)
	h := float64(src.H)
	return Size{
		W: ceilPixels(w*cos + h*sin),
		H: ceilPixels(w*sin + h*cos),
	}
}

func ceilPixels(v float64) int {
	if r := math.Round(v); math.Abs(v-r) < roundingTolerance*math.Max(1, v) {
		v = r
	}
	n := int(math.Ceil(v))
	if n < 1 {
		return 1
	}
	return n
}
