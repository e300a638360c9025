// Package composite blends a watermark canvas onto a target canvas at one of
// the nine anchor positions.
package composite

import (
	"errors"

	"github.com/ironsheep/watimage-mcp/internal/canvas"
	"github.com/ironsheep/watimage-mcp/internal/geometry"
)

// ErrNotLoaded is returned when a watermark is applied before one was loaded.
var ErrNotLoaded = errors.New("watermark not loaded")

// Watermark is a decoded overlay together with its placement.
type Watermark struct {
	Canvas   *canvas.Canvas
	Position geometry.Position
	Margin   geometry.Margin
}

// Offset returns where the watermark's top-left corner lands on target.
func (w *Watermark) Offset(target *canvas.Canvas) (x, y int) {
	p := geometry.AnchorOffset(
		geometry.Size{W: target.Width(), H: target.Height()},
		geometry.Size{W: w.Canvas.Width(), H: w.Canvas.Height()},
		w.Position, w.Margin,
	)
	return p.X, p.Y
}

// Apply alpha-composites wm over a copy of target and returns the copy.
// Watermark pixels that fall outside target are skipped.
func Apply(target *canvas.Canvas, wm *Watermark) (*canvas.Canvas, error) {
	if wm == nil || wm.Canvas == nil {
		return nil, ErrNotLoaded
	}

	out := target.Clone()
	offX, offY := wm.Offset(target)

	// overlap of the watermark with the target, in watermark coordinates
	startX := max(0, -offX)
	startY := max(0, -offY)
	endX := min(wm.Canvas.Width(), target.Width()-offX)
	endY := min(wm.Canvas.Height(), target.Height()-offY)

	for y := startY; y < endY; y++ {
		for x := startX; x < endX; x++ {
			out.Blend(x+offX, y+offY, wm.Canvas.At(x, y))
		}
	}
	return out, nil
}
