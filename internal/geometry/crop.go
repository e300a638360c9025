package geometry

import (
	"errors"
	"fmt"
	"image"
)

// ErrEmptyRegion is returned when a crop rectangle has no overlap with the
// source.
var ErrEmptyRegion = errors.New("empty crop region")

// CropRect is a rectangle relative to the source origin. X and Y may be
// negative and the rectangle may extend past the source; ClampCrop trims it.
type CropRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rectangle converts r to an image.Rectangle.
func (r CropRect) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Size returns the rectangle's width and height.
func (r CropRect) Size() Size { return Size{W: r.Width, H: r.Height} }

// ClampCrop intersects rect with [0,src.W) x [0,src.H). A partially overlapping
// rectangle is trimmed; one with no overlap fails with ErrEmptyRegion.
func ClampCrop(rect CropRect, src Size) (CropRect, error) {
	x0 := max64(int64(rect.X), 0)
	y0 := max64(int64(rect.Y), 0)
	x1 := min64(int64(rect.X)+int64(rect.Width), int64(src.W))
	y1 := min64(int64(rect.Y)+int64(rect.Height), int64(src.H))

	if x1 <= x0 || y1 <= y0 {
		return CropRect{}, fmt.Errorf("%w: (%d,%d %dx%d) does not intersect %s",
			ErrEmptyRegion, rect.X, rect.Y, rect.Width, rect.Height, src)
	}
	return CropRect{
		X:      int(x0),
		Y:      int(y0),
		Width:  int(x1 - x0),
		Height: int(y1 - y0),
	}, nil
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
