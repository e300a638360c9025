package geometry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidGeometry is returned when a target size cannot produce a
	// non-empty canvas.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidMode is returned by ParseMode for unknown resize policies.
	ErrInvalidMode = errors.New("invalid resize mode")
)

// Size is a width/height pair in pixels.
type Size struct {
	W int `json:"width"`
	H int `json:"height"`
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.W, s.H) }

// Dimensions is a user-supplied target: either a single value for a square or an
// explicit (x, y) pair. An axis of 0 means "derive from the aspect ratio".
type Dimensions struct {
	X      int
	Y      int
	square bool
}

// Square returns a square target of n x n.
func Square(n int) Dimensions { return Dimensions{X: n, Y: n, square: true} }

// Pair returns a target with independent axes.
func Pair(x, y int) Dimensions { return Dimensions{X: x, Y: y} }

// IsSquare reports whether d was built with Square.
func (d Dimensions) IsSquare() bool { return d.square }

func (d Dimensions) String() string {
	if d.square {
		return fmt.Sprintf("%d", d.X)
	}
	return fmt.Sprintf("%dx%d", d.X, d.Y)
}

// Mode selects a resize policy.
type Mode int

const (
	Resize Mode = iota
	ResizeMin
	ResizeCrop
	Crop
)

var modeNames = map[Mode]string{
	Resize:     "resize",
	ResizeMin:  "resizemin",
	ResizeCrop: "resizecrop",
	Crop:       "crop",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a policy name: resize, resizemin, resizecrop or crop.
// Matching is case-insensitive and ignores '-' and '_' separators.
func ParseMode(s string) (Mode, error) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(s))
	for m, name := range modeNames {
		if name == key {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// ResolveResize computes the scaled size for mode and, for ResizeCrop and Crop,
// the rectangle to cut from the scaled canvas afterwards.
func ResolveResize(mode Mode, target Dimensions, src Size) (Size, *CropRect, error) {
	if src.W < 1 || src.H < 1 {
		return Size{}, nil, fmt.Errorf("%w: source %s is empty", ErrInvalidGeometry, src)
	}
	if target.X < 0 || target.Y < 0 {
		return Size{}, nil, fmt.Errorf("%w: negative target %s", ErrInvalidGeometry, target)
	}
	if target.X == 0 && target.Y == 0 {
		return Size{}, nil, fmt.Errorf("%w: target %s has no dimensions", ErrInvalidGeometry, target)
	}

	switch mode {
	case Resize:
		out := Size{W: target.X, H: target.Y}
		if out.W == 0 {
			out.W = scaleAxis(src.W, target.Y, src.H)
		}
		if out.H == 0 {
			out.H = scaleAxis(src.H, target.X, src.W)
		}
		if err := checkSize(out, target); err != nil {
			return Size{}, nil, err
		}
		return out, nil, nil

	case ResizeMin, ResizeCrop:
		out := coverSize(target, src)
		if err := checkSize(out, target); err != nil {
			return Size{}, nil, err
		}
		if mode == ResizeMin {
			return out, nil, nil
		}
		return out, centeredRect(target, out), nil

	case Crop:
		return src, centeredRect(target, src), nil

	default:
		return Size{}, nil, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
}

// coverSize scales src preserving its aspect ratio so that it covers target:
// the governing axis matches the target exactly and the other is at least as
// large as its target.
func coverSize(target Dimensions, src Size) Size {
	// tx/sw >= ty/sh, compared without division
	xGoverns := target.Y == 0 ||
		(target.X != 0 && int64(target.X)*int64(src.H) >= int64(target.Y)*int64(src.W))
	if xGoverns {
		return Size{W: target.X, H: scaleAxis(src.H, target.X, src.W)}
	}
	return Size{W: scaleAxis(src.W, target.Y, src.H), H: target.Y}
}

// centeredRect returns a target-sized rectangle centered in within. Zero target
// axes take the full extent of within.
func centeredRect(target Dimensions, within Size) *CropRect {
	w, h := target.X, target.Y
	if w == 0 {
		w = within.W
	}
	if h == 0 {
		h = within.H
	}
	return &CropRect{
		X:      (within.W - w) / 2,
		Y:      (within.H - h) / 2,
		Width:  w,
		Height: h,
	}
}

// scaleAxis returns round(n * num / den) using integer arithmetic.
func scaleAxis(n, num, den int) int {
	p := int64(n) * int64(num)
	return int((2*p + int64(den)) / (2 * int64(den)))
}

func checkSize(s Size, target Dimensions) error {
	if s.W < 1 || s.H < 1 {
		return fmt.Errorf("%w: target %s resolves to %s", ErrInvalidGeometry, target, s)
	}
	return nil
}
