package server

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/watimage-mcp/internal/geometry"
)

// pairArg is a JSON value that may be a single integer, a two-element array
// or an {"x": .., "y": ..} object. A single integer sets both axes.
type pairArg struct {
	X, Y   int
	square bool
	set    bool
}

func (p *pairArg) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	switch b[0] {
	case '[':
		var xy []int
		if err := json.Unmarshal(b, &xy); err != nil {
			return fmt.Errorf("expected [x, y]: %w", err)
		}
		if len(xy) != 2 {
			return fmt.Errorf("expected [x, y], got %d values", len(xy))
		}
		*p = pairArg{X: xy[0], Y: xy[1], set: true}
	case '{':
		var xy struct {
			X *int `json:"x"`
			Y *int `json:"y"`
		}
		if err := json.Unmarshal(b, &xy); err != nil {
			return fmt.Errorf("expected {\"x\": .., \"y\": ..}: %w", err)
		}
		if xy.X == nil || xy.Y == nil {
			return fmt.Errorf("both x and y are required")
		}
		*p = pairArg{X: *xy.X, Y: *xy.Y, set: true}
	default:
		var n int
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("expected an integer, [x, y] or {\"x\": .., \"y\": ..}: %w", err)
		}
		*p = pairArg{X: n, Y: n, square: true, set: true}
	}
	return nil
}

// Dimensions resolves the argument into a resize target.
func (p pairArg) Dimensions() geometry.Dimensions {
	if p.square {
		return geometry.Square(p.X)
	}
	return geometry.Pair(p.X, p.Y)
}

// Margin resolves the argument into a watermark margin.
func (p pairArg) Margin() geometry.Margin {
	return geometry.Margin{X: p.X, Y: p.Y}
}
