package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/watimage-mcp/internal/canvas"
)

// Info contains metadata about decoded image data.
type Info struct {
	// Width is the image width in pixels, after EXIF orientation is applied.
	Width int `json:"width"`

	// Height is the image height in pixels, after EXIF orientation is applied.
	Height int `json:"height"`

	// Format is the format output defaults to when no MIME type is requested.
	Format Format `json:"format"`

	// Source is the decoder that recognized the data: "png", "jpeg", "gif",
	// "bmp", "tiff" or "webp".
	Source string `json:"source"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the source color model carries transparency.
	HasAlpha bool `json:"has_alpha"`

	// SizeBytes is the length of the encoded input.
	SizeBytes int `json:"size_bytes"`
}

// DecodeOptions bounds what Decode accepts.
type DecodeOptions struct {
	// MaxPixels rejects images whose width*height exceeds it. 0 disables the
	// check.
	MaxPixels int
}

// Decode parses encoded image bytes into a Canvas.
//
// The header is inspected first so oversized images are rejected before any
// pixel memory is allocated. Decoding goes through imaging.Decode with EXIF
// auto-orientation, so JPEG photos come out upright. Only the first frame of
// an animated GIF is kept.
//
// # Errors
//
//   - ErrEmptyInput for a zero-length slice
//   - ErrTooLarge when MaxPixels is exceeded
//   - a wrapped image.ErrFormat for unrecognized or corrupt data
func Decode(data []byte, opts DecodeOptions) (*canvas.Canvas, *Info, error) {
	if len(data) == 0 {
		return nil, nil, ErrEmptyInput
	}

	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if opts.MaxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(opts.MaxPixels) {
		return nil, nil, fmt.Errorf("%w: %dx%d > %d pixels", ErrTooLarge, cfg.Width, cfg.Height, opts.MaxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c, err := canvas.FromImage(img)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image: %w", err)
	}

	hasAlpha, colorDepth := describeModel(cfg.ColorModel)
	return c, &Info{
		Width:      c.Width(),
		Height:     c.Height(),
		Format:     formatFromDecoder(name),
		Source:     name,
		ColorDepth: colorDepth,
		HasAlpha:   hasAlpha,
		SizeBytes:  len(data),
	}, nil
}

// describeModel reports alpha support and channel depth for a color model.
//
//   - RGBA/NRGBA models -> alpha, 8-bit
//   - RGBA64/NRGBA64 -> alpha, 16-bit
//   - Gray16 -> no alpha, 16-bit
//   - Palettes -> alpha if any entry is not fully opaque
func describeModel(m color.Model) (hasAlpha bool, colorDepth string) {
	colorDepth = "8-bit"
	switch m {
	case color.RGBAModel, color.NRGBAModel, color.AlphaModel:
		hasAlpha = true
	case color.RGBA64Model, color.NRGBA64Model, color.Alpha16Model:
		hasAlpha = true
		colorDepth = "16-bit"
	case color.Gray16Model:
		colorDepth = "16-bit"
	}
	if p, ok := m.(color.Palette); ok {
		for _, entry := range p {
			if _, _, _, a := entry.RGBA(); a != 0xffff {
				hasAlpha = true
				break
			}
		}
	}
	return hasAlpha, colorDepth
}
