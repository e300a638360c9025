package transform

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/watimage-mcp/internal/canvas"
	"github.com/ironsheep/watimage-mcp/internal/geometry"
)

// ResampleFilter is the filter every resize uses.
var ResampleFilter = imaging.Linear

func sizeOf(c *canvas.Canvas) geometry.Size {
	return geometry.Size{W: c.Width(), H: c.Height()}
}

// adopt wraps an imaging result. imaging never returns an empty image for a
// non-empty input, so a failure here is a programming error.
func adopt(img *image.NRGBA) *canvas.Canvas {
	c, err := canvas.FromNRGBA(img)
	if err != nil {
		panic(fmt.Sprintf("transform: unexpected empty result: %v", err))
	}
	return c
}

// Resize scales c according to mode and target, then applies the centered crop
// that ResizeCrop and Crop request.
func Resize(c *canvas.Canvas, mode geometry.Mode, target geometry.Dimensions) (*canvas.Canvas, error) {
	size, crop, err := geometry.ResolveResize(mode, target, sizeOf(c))
	if err != nil {
		return nil, err
	}

	out := c
	if size != sizeOf(c) {
		out = adopt(imaging.Resize(c.NRGBA(), size.W, size.H, ResampleFilter))
	}
	if crop != nil {
		return Crop(out, *crop)
	}
	return out, nil
}

// Crop copies the part of c covered by rect. The rectangle is clamped to the
// canvas first; no overlap at all fails with geometry.ErrEmptyRegion.
func Crop(c *canvas.Canvas, rect geometry.CropRect) (*canvas.Canvas, error) {
	clamped, err := geometry.ClampCrop(rect, sizeOf(c))
	if err != nil {
		return nil, err
	}
	return adopt(imaging.Crop(c.NRGBA(), clamped.Rectangle())), nil
}
