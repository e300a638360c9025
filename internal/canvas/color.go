package canvas

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a non-premultiplied RGBA color with 8-bit components.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Common colors.
var (
	Transparent = Color{}
	White       = Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Black       = Color{A: 0xff}
)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Hex formats the color as "#RRGGBB", or "#RRGGBBAA" when not fully opaque.
func (c Color) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// Over composites src over dst:
//
//	out.rgb = src.rgb*src.a + dst.rgb*(1-src.a)
//	out.a   = src.a + dst.a*(1-src.a)
//
// An opaque src replaces dst exactly and a transparent src leaves dst unchanged.
func Over(src, dst Color) Color {
	sa := uint32(src.A)
	switch sa {
	case 0xff:
		return src
	case 0:
		return dst
	}
	inv := 0xff - sa
	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*sa + uint32(d)*inv + 127) / 0xff)
	}
	return Color{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: uint8(sa + (uint32(dst.A)*inv+127)/0xff),
	}
}

// ParseColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA" (the leading '#' is
// optional) into a Color.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3, 6:
		c, err := colorful.Hex("#" + hex)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return Color{R: r, G: g, B: b, A: 0xff}, nil
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return Color{
			R: uint8(val >> 24),
			G: uint8(val >> 16),
			B: uint8(val >> 8),
			A: uint8(val),
		}, nil
	default:
		return Color{}, fmt.Errorf("invalid color %q: expected 3, 6 or 8 hex digits", s)
	}
}
