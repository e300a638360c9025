package raster

import (
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/disintegration/imaging"
)

var (
	// ErrUnsupportedFormat is returned for formats the backend cannot encode.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrEmptyInput is returned when Decode receives no bytes.
	ErrEmptyInput = errors.New("empty image data")

	// ErrTooLarge is returned when a decoded image exceeds the pixel limit.
	ErrTooLarge = errors.New("image exceeds pixel limit")
)

// Format is an encodable output format.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

var formatMIME = map[Format]string{
	PNG:  "image/png",
	JPEG: "image/jpeg",
	GIF:  "image/gif",
	BMP:  "image/bmp",
	TIFF: "image/tiff",
}

var mimeAliases = map[string]Format{
	"image/png":      PNG,
	"image/x-png":    PNG,
	"image/jpeg":     JPEG,
	"image/jpg":      JPEG,
	"image/pjpeg":    JPEG,
	"image/gif":      GIF,
	"image/bmp":      BMP,
	"image/x-ms-bmp": BMP,
	"image/tiff":     TIFF,
}

// MIME returns the canonical MIME type, e.g. "image/png".
func (f Format) MIME() string { return formatMIME[f] }

// SupportsAlpha reports whether encoded output keeps per-pixel transparency.
// GIF is treated as opaque because its encoder quantizes to a fixed palette
// without a transparent entry.
func (f Format) SupportsAlpha() bool {
	return f == PNG || f == TIFF
}

// Lossy reports whether the format takes a 0-100 quality instead of a 0-9
// compression level.
func (f Format) Lossy() bool { return f == JPEG }

// QualityRange returns the valid quality/compression range for f: 0-9 for PNG,
// 0-100 otherwise.
func (f Format) QualityRange() (lo, hi int) {
	if f == PNG {
		return 0, 9
	}
	return 0, 100
}

func (f Format) toImaging() (imaging.Format, error) {
	switch f {
	case PNG:
		return imaging.PNG, nil
	case JPEG:
		return imaging.JPEG, nil
	case GIF:
		return imaging.GIF, nil
	case BMP:
		return imaging.BMP, nil
	case TIFF:
		return imaging.TIFF, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
}

// FormatFromMIME maps a MIME type such as "image/jpeg" to a Format.
// Parameters like "; charset" are ignored.
func FormatFromMIME(mimeType string) (Format, error) {
	mt, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(mimeType))
	}
	if f, ok := mimeAliases[mt]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: mime type %q", ErrUnsupportedFormat, mimeType)
}

// FormatFromPath detects the format from a file name's extension.
func FormatFromPath(path string) (Format, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	switch f {
	case imaging.PNG:
		return PNG, nil
	case imaging.JPEG:
		return JPEG, nil
	case imaging.GIF:
		return GIF, nil
	case imaging.BMP:
		return BMP, nil
	case imaging.TIFF:
		return TIFF, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// formatFromDecoder maps the name reported by image.DecodeConfig to the
// format new output defaults to. WebP input has no encoder and defaults to PNG.
func formatFromDecoder(name string) Format {
	switch name {
	case "jpeg":
		return JPEG
	case "gif":
		return GIF
	case "bmp":
		return BMP
	case "tiff":
		return TIFF
	default:
		return PNG
	}
}
