package geometry

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

// ErrInvalidPosition is returned by ParsePosition for unknown anchors.
var ErrInvalidPosition = errors.New("invalid position")

// Position is one of the nine anchor points used to place content inside a
// container.
type Position int

const (
	TopLeft Position = iota
	TopCenter
	TopRight
	MiddleLeft
	MiddleCenter
	MiddleRight
	BottomLeft
	BottomCenter
	BottomRight
)

// DefaultPosition is used when no anchor is given.
const DefaultPosition = BottomRight

const (
	alignStart = iota
	alignCenter
	alignEnd
)

func newPosition(vertical, horizontal int) Position {
	return Position(vertical*3 + horizontal)
}

func (p Position) vertical() int   { return int(p) / 3 }
func (p Position) horizontal() int { return int(p) % 3 }

func (p Position) String() string {
	if p < TopLeft || p > BottomRight {
		return fmt.Sprintf("Position(%d)", int(p))
	}
	v := [...]string{"top", "middle", "bottom"}[p.vertical()]
	h := [...]string{"left", "center", "right"}[p.horizontal()]
	return v + " " + h
}

// ParsePosition parses anchors such as "bottom right", "top-left", "center" or
// "left". Words may appear in either order and be separated by spaces, '-' or
// '_'. A single word fixes one axis and centers the other; "center" and
// "middle" center whichever axis is left unset. An empty string yields
// DefaultPosition.
func ParsePosition(s string) (Position, error) {
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == ','
	})
	if len(tokens) == 0 {
		return DefaultPosition, nil
	}
	if len(tokens) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}

	v, h := -1, -1
	set := func(axis *int, value int) error {
		if *axis != -1 {
			return fmt.Errorf("%w: %q names the same axis twice", ErrInvalidPosition, s)
		}
		*axis = value
		return nil
	}

	for _, tok := range tokens {
		var err error
		switch tok {
		case "top":
			err = set(&v, alignStart)
		case "bottom":
			err = set(&v, alignEnd)
		case "left":
			err = set(&h, alignStart)
		case "right":
			err = set(&h, alignEnd)
		case "center", "centre", "middle":
			// resolved below
		default:
			err = fmt.Errorf("%w: unknown anchor %q", ErrInvalidPosition, tok)
		}
		if err != nil {
			return 0, err
		}
	}

	if v == -1 {
		v = alignCenter
	}
	if h == -1 {
		h = alignCenter
	}
	return newPosition(v, h), nil
}

// Margin offsets content away from the edges its anchor touches.
type Margin struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// AnchorOffset returns the top-left point at which content must be drawn to sit
// at pos inside container. Margins move content inward from the touched edges
// and are ignored on centered axes. The result may be negative or place content
// partially outside the container.
func AnchorOffset(container, content Size, pos Position, margin Margin) image.Point {
	return image.Point{
		X: alignAxis(container.W, content.W, pos.horizontal(), margin.X),
		Y: alignAxis(container.H, content.H, pos.vertical(), margin.Y),
	}
}

func alignAxis(container, content, align, margin int) int {
	switch align {
	case alignStart:
		return margin
	case alignEnd:
		return container - content - margin
	default:
		return (container - content) / 2
	}
}
