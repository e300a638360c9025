package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/watimage-mcp/internal/canvas"
)

// ErrInvalidAxis is returned by ParseAxis for unknown flip directions.
var ErrInvalidAxis = errors.New("invalid flip axis")

// Axis selects the mirror direction of Flip.
type Axis int

const (
	// Horizontal mirrors columns (left becomes right).
	Horizontal Axis = iota
	// Vertical mirrors rows (top becomes bottom).
	Vertical
	// Both mirrors rows and columns.
	Both
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Both:
		return "both"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis parses "horizontal", "vertical" or "both". An empty string means
// horizontal.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	case "both", "hv":
		return Both, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAxis, s)
}

// Flip mirrors c along axis into a new canvas of the same size.
func Flip(c *canvas.Canvas, axis Axis) *canvas.Canvas {
	switch axis {
	case Vertical:
		return adopt(imaging.FlipV(c.NRGBA()))
	case Both:
		// mirroring both axes is a half turn
		return adopt(imaging.Rotate180(c.NRGBA()))
	default:
		return adopt(imaging.FlipH(c.NRGBA()))
	}
}
