// Package canvas provides the owned pixel buffer every pipeline operation reads
// and writes.
//
// A Canvas stores non-premultiplied RGBA samples, 4 bytes per pixel in row-major
// order, with its origin at (0,0). Width and height are always at least 1; a
// zero-area Canvas cannot be constructed.
//
// # Ownership
//
// Operations that transform a Canvas return a new one and never modify their
// input. The pipeline drops the previous Canvas once its replacement exists, so
// a Canvas is never shared between two owners. NRGBA exposes the buffer as an
// *image.NRGBA without copying; the view is valid only while the caller owns the
// Canvas.
package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// ErrZeroArea is returned when a Canvas would have no pixels.
var ErrZeroArea = errors.New("canvas must be at least 1x1")

// Canvas is a rectangular grid of non-premultiplied RGBA pixels.
type Canvas struct {
	width  int
	height int
	pix    []uint8
}

// New allocates a fully transparent Canvas of the given size.
func New(width, height int) (*Canvas, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrZeroArea, width, height)
	}
	return &Canvas{
		width:  width,
		height: height,
		pix:    make([]uint8, 4*width*height),
	}, nil
}

// FromImage copies any image into a new Canvas whose origin is (0,0).
func FromImage(img image.Image) (*Canvas, error) {
	if nrgba, ok := img.(*image.NRGBA); ok {
		return copyNRGBA(nrgba)
	}
	b := img.Bounds()
	c, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	draw.Draw(c.NRGBA(), image.Rect(0, 0, c.width, c.height), img, b.Min, draw.Src)
	return c, nil
}

// FromNRGBA wraps an *image.NRGBA produced by the raster backend. The buffer is
// adopted without copying when its rows are tightly packed from (0,0); otherwise
// the pixels are copied. Callers must not touch img afterwards.
func FromNRGBA(img *image.NRGBA) (*Canvas, error) {
	b := img.Rect
	if b.Min == (image.Point{}) && img.Stride == 4*b.Dx() && len(img.Pix) == 4*b.Dx()*b.Dy() {
		if b.Dx() < 1 || b.Dy() < 1 {
			return nil, fmt.Errorf("%w: got %dx%d", ErrZeroArea, b.Dx(), b.Dy())
		}
		return &Canvas{width: b.Dx(), height: b.Dy(), pix: img.Pix}, nil
	}
	return copyNRGBA(img)
}

func copyNRGBA(img *image.NRGBA) (*Canvas, error) {
	b := img.Rect
	c, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	rowLen := 4 * c.width
	for y := 0; y < c.height; y++ {
		src := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(c.pix[y*rowLen:(y+1)*rowLen], img.Pix[src:src+rowLen])
	}
	return c, nil
}

// Width returns the Canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the Canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Bounds returns the Canvas rectangle, always anchored at (0,0).
func (c *Canvas) Bounds() image.Rectangle { return image.Rect(0, 0, c.width, c.height) }

// NRGBA returns an *image.NRGBA view sharing the Canvas pixel buffer.
func (c *Canvas) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    c.pix,
		Stride: 4 * c.width,
		Rect:   c.Bounds(),
	}
}

// In reports whether (x, y) lies inside the Canvas.
func (c *Canvas) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

func (c *Canvas) offset(x, y int) int { return 4 * (y*c.width + x) }

// At returns the pixel at (x, y). Out-of-bounds reads return Transparent.
func (c *Canvas) At(x, y int) Color {
	if !c.In(x, y) {
		return Transparent
	}
	i := c.offset(x, y)
	p := c.pix[i : i+4 : i+4]
	return Color{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Set overwrites the pixel at (x, y). Out-of-bounds writes are ignored.
func (c *Canvas) Set(x, y int, col Color) {
	if !c.In(x, y) {
		return
	}
	i := c.offset(x, y)
	p := c.pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = col.R, col.G, col.B, col.A
}

// Blend composites col over the pixel at (x, y) with Over. Out-of-bounds
// writes are ignored.
func (c *Canvas) Blend(x, y int, col Color) {
	if !c.In(x, y) {
		return
	}
	c.Set(x, y, Over(col, c.At(x, y)))
}

// Fill sets every pixel to col.
func (c *Canvas) Fill(col Color) {
	for i := 0; i < len(c.pix); i += 4 {
		c.pix[i], c.pix[i+1], c.pix[i+2], c.pix[i+3] = col.R, col.G, col.B, col.A
	}
}

// Clone returns a deep copy.
func (c *Canvas) Clone() *Canvas {
	pix := make([]uint8, len(c.pix))
	copy(pix, c.pix)
	return &Canvas{width: c.width, height: c.height, pix: pix}
}

// Equal reports whether both canvases have identical size and pixel data.
func (c *Canvas) Equal(o *Canvas) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.width == o.width && c.height == o.height && bytes.Equal(c.pix, o.pix)
}

// Opaque reports whether every pixel has full alpha.
func (c *Canvas) Opaque() bool {
	for i := 3; i < len(c.pix); i += 4 {
		if c.pix[i] != 0xff {
			return false
		}
	}
	return true
}
