package transform

import (
	"fmt"
	"math"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/watimage-mcp/internal/canvas"
	"github.com/ironsheep/watimage-mcp/internal/geometry"
)

// Background is the fill for pixels a rotation leaves uncovered: a color, or
// the transparent sentinel.
type Background struct {
	color       canvas.Color
	transparent bool
}

// TransparentBackground leaves uncovered pixels fully transparent when the
// output format has an alpha channel.
var TransparentBackground = Background{transparent: true}

// FillBackground fills uncovered pixels with col.
func FillBackground(col canvas.Color) Background {
	return Background{color: col}
}

// IsTransparent reports whether b is the transparent sentinel.
func (b Background) IsTransparent() bool { return b.transparent }

// Resolve returns the concrete fill color. Formats without alpha cannot store
// a transparent fill, so the sentinel becomes opaque white for them.
func (b Background) Resolve(supportsAlpha bool) canvas.Color {
	if !b.transparent {
		return b.color
	}
	if supportsAlpha {
		return canvas.Transparent
	}
	return canvas.White
}

func (b Background) String() string {
	if b.transparent {
		return "transparent"
	}
	return b.color.Hex()
}

// ParseBackground accepts "transparent", "none", "-1" or an empty string for
// the transparent sentinel, and any color understood by canvas.ParseColor.
func ParseBackground(s string) (Background, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "transparent", "none", "-1":
		return TransparentBackground, nil
	}
	col, err := canvas.ParseColor(s)
	if err != nil {
		return Background{}, fmt.Errorf("invalid background: %w", err)
	}
	return FillBackground(col), nil
}

// Rotate turns c counter-clockwise by degrees about its center. Any angle is
// accepted and normalized into [0, 360); 0 returns c itself.
func Rotate(c *canvas.Canvas, degrees float64, bg canvas.Color) *canvas.Canvas {
	d := geometry.NormalizeDegrees(degrees)
	switch d {
	case 0:
		return c
	case 90:
		return adopt(imaging.Rotate90(c.NRGBA()))
	case 180:
		return adopt(imaging.Rotate180(c.NRGBA()))
	case 270:
		return adopt(imaging.Rotate270(c.NRGBA()))
	}

	size := geometry.RotatedSize(sizeOf(c), d)
	out, err := canvas.New(size.W, size.H)
	if err != nil {
		panic(fmt.Sprintf("transform: rotated size %s: %v", size, err))
	}

	rad := d * math.Pi / 180
	sin, cos := math.Sincos(rad)
	srcCX, srcCY := float64(c.Width())/2, float64(c.Height())/2
	dstCX, dstCY := float64(size.W)/2, float64(size.H)/2

	for y := 0; y < size.H; y++ {
		py := float64(y) + 0.5 - dstCY
		for x := 0; x < size.W; x++ {
			px := float64(x) + 0.5 - dstCX
			// inverse of the on-screen counter-clockwise turn (y points down)
			sx := px*cos - py*sin + srcCX
			sy := px*sin + py*cos + srcCY
			out.Set(x, y, sampleBilinear(c, sx-0.5, sy-0.5, bg))
		}
	}
	return out
}

// sampleBilinear interpolates c at pixel-space coordinates (fx, fy), where
// integer coordinates hit pixel centers. Neighbours outside c read as bg.
func sampleBilinear(c *canvas.Canvas, fx, fy float64, bg canvas.Color) canvas.Color {
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	taps := [4]struct {
		x, y int
		w    float64
	}{
		{x0, y0, (1 - tx) * (1 - ty)},
		{x0 + 1, y0, tx * (1 - ty)},
		{x0, y0 + 1, (1 - tx) * ty},
		{x0 + 1, y0 + 1, tx * ty},
	}

	var r, g, b, a float64
	for _, tap := range taps {
		if tap.w == 0 {
			continue
		}
		col := bg
		if c.In(tap.x, tap.y) {
			col = c.At(tap.x, tap.y)
		}
		wa := tap.w * float64(col.A)
		r += wa * float64(col.R)
		g += wa * float64(col.G)
		b += wa * float64(col.B)
		a += wa
	}

	if a <= 0 {
		return canvas.Transparent
	}
	return canvas.Color{
		R: clampUint8(r / a),
		G: clampUint8(g / a),
		B: clampUint8(b / a),
		A: clampUint8(a),
	}
}

func clampUint8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
