package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/watimage-mcp/internal/canvas"
)

// Defaults used when a pipeline never sets quality or compression.
const (
	DefaultQuality     = 90
	DefaultCompression = 6
)

// EncodeOptions carries the per-output quality settings.
type EncodeOptions struct {
	// Quality is 0-100 and applies to JPEG (and GIF palette size).
	Quality int

	// Compression is 0-9 and applies to PNG.
	Compression int
}

// DefaultEncodeOptions returns the settings used when none are given.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{Quality: DefaultQuality, Compression: DefaultCompression}
}

// Encode writes c to w in format f.
//
// Formats without an alpha channel get the canvas flattened onto opaque white
// first, so transparent areas come out white instead of black.
func Encode(w io.Writer, c *canvas.Canvas, f Format, opts EncodeOptions) error {
	target, err := f.toImaging()
	if err != nil {
		return err
	}

	var img image.Image = c.NRGBA()
	if !f.SupportsAlpha() && !c.Opaque() {
		img = flatten(c)
	}

	var encOpts []imaging.EncodeOption
	switch f {
	case JPEG:
		encOpts = append(encOpts, imaging.JPEGQuality(clampInt(opts.Quality, 1, 100)))
	case PNG:
		encOpts = append(encOpts, imaging.PNGCompressionLevel(pngLevel(opts.Compression)))
	case GIF:
		encOpts = append(encOpts, imaging.GIFNumColors(gifColors(opts.Quality)))
	}

	if err := imaging.Encode(w, img, target, encOpts...); err != nil {
		return fmt.Errorf("failed to encode %s: %w", f, err)
	}
	return nil
}

// EncodeBytes is Encode into a fresh buffer.
func EncodeBytes(c *canvas.Canvas, f Format, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, c, f, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func flatten(c *canvas.Canvas) *image.NRGBA {
	bg := imaging.New(c.Width(), c.Height(), color.White)
	return imaging.Overlay(bg, c.NRGBA(), image.Pt(0, 0), 1.0)
}

// pngLevel maps a 0-9 zlib-style level onto the four levels image/png offers.
func pngLevel(level int) png.CompressionLevel {
	switch {
	case level <= 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

// gifColors maps quality 0-100 onto a palette size of 2-256.
func gifColors(quality int) int {
	return 2 + 254*clampInt(quality, 0, 100)/100
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
