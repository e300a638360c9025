package pipeline

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/watimage-mcp/internal/canvas"
	"github.com/ironsheep/watimage-mcp/internal/composite"
	"github.com/ironsheep/watimage-mcp/internal/geometry"
	"github.com/ironsheep/watimage-mcp/internal/raster"
	"github.com/ironsheep/watimage-mcp/internal/transform"
)

// Options configures a new Pipeline.
type Options struct {
	// Quality is the initial JPEG/GIF quality, 0-100.
	Quality int

	// Compression is the initial PNG compression level, 0-9.
	Compression int

	// MaxPixels rejects inputs, and resize or rotate results, larger than
	// width*height pixels. 0 disables the check.
	MaxPixels int

	// Debug logs every operation and failure.
	Debug bool
}

// DefaultOptions returns the options used by the MCP server when nothing is
// configured.
func DefaultOptions() Options {
	return Options{
		Quality:     raster.DefaultQuality,
		Compression: raster.DefaultCompression,
		MaxPixels:   100_000_000,
	}
}

// Pipeline holds the image being worked on, an optional watermark and the
// encode settings.
//
// Each operation either replaces the current image or fails and leaves every
// piece of state as it was, appending an *Error to the log. A Pipeline is not
// safe for concurrent use; run one per goroutine.
type Pipeline struct {
	opts Options

	current   *canvas.Canvas
	info      *raster.Info
	watermark *composite.Watermark

	quality     int
	compression int

	errs []*Error
}

// New returns an empty pipeline.
func New(opts Options) *Pipeline {
	return &Pipeline{
		opts:        opts,
		quality:     opts.Quality,
		compression: opts.Compression,
	}
}

// fail records err in the log and returns it.
func (p *Pipeline) fail(op string, kind Kind, err error) error {
	e := &Error{Kind: kind, Op: op, Err: err}
	p.errs = append(p.errs, e)
	if p.opts.Debug {
		log.Printf("pipeline %s failed (%s): %v", op, kind, err)
	}
	return e
}

func (p *Pipeline) debugf(format string, args ...interface{}) {
	if p.opts.Debug {
		log.Printf(format, args...)
	}
}

// replace installs c as the current image.
func (p *Pipeline) replace(op string, c *canvas.Canvas) {
	p.current = c
	p.debugf("pipeline %s: now %dx%d", op, c.Width(), c.Height())
}

func (p *Pipeline) size() geometry.Size {
	return geometry.Size{W: p.current.Width(), H: p.current.Height()}
}

// checkSize rejects a result larger than MaxPixels before it is allocated.
func (p *Pipeline) checkSize(size geometry.Size) error {
	limit := int64(p.opts.MaxPixels)
	if limit <= 0 || size.H <= 0 {
		return nil
	}
	if int64(size.W) > limit/int64(size.H) {
		return fmt.Errorf("%w: %s > %d pixels", raster.ErrTooLarge, size, limit)
	}
	return nil
}

func (p *Pipeline) decodeOptions() raster.DecodeOptions {
	return raster.DecodeOptions{MaxPixels: p.opts.MaxPixels}
}

// Load decodes src and makes it the current image. The watermark and encode
// settings are kept.
func (p *Pipeline) Load(src []byte) error {
	c, info, err := raster.Decode(src, p.decodeOptions())
	if err != nil {
		return p.fail("load", KindLoad, err)
	}
	p.info = info
	p.replace("load", c)
	return nil
}

// LoadFile reads and decodes the image at path.
func (p *Pipeline) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return p.fail("load", KindLoad, fmt.Errorf("failed to read image: %w", err))
	}
	return p.Load(data)
}

// outputFormat is the format Generate uses when no MIME type or destination
// says otherwise.
func (p *Pipeline) outputFormat() raster.Format {
	if p.info == nil {
		return raster.PNG
	}
	return p.info.Format
}

// SetQuality sets the encode quality for the loaded format: 0-9 for PNG,
// where it is the compression level, and 0-100 for everything else. Before
// anything is loaded the level is taken as a 0-100 quality.
func (p *Pipeline) SetQuality(level int) error {
	if p.info != nil && p.info.Format == raster.PNG {
		return p.setCompression("set_quality", level)
	}
	if level < 0 || level > 100 {
		return p.fail("set_quality", KindRange, fmt.Errorf("%w: %d not in 0-100", ErrQualityRange, level))
	}
	p.quality = level
	p.debugf("pipeline set_quality: %d", level)
	return nil
}

// SetCompression sets the PNG compression level, 0-9.
func (p *Pipeline) SetCompression(level int) error {
	return p.setCompression("set_compression", level)
}

func (p *Pipeline) setCompression(op string, level int) error {
	if level < 0 || level > 9 {
		return p.fail(op, KindRange, fmt.Errorf("%w: %d not in 0-9", ErrCompressionRange, level))
	}
	p.compression = level
	p.debugf("pipeline %s: %d", op, level)
	return nil
}

// Resize applies a resize policy to the current image.
func (p *Pipeline) Resize(mode geometry.Mode, target geometry.Dimensions) error {
	if p.current == nil {
		return p.fail("resize", KindNotLoaded, ErrNoImage)
	}
	size, _, err := geometry.ResolveResize(mode, target, p.size())
	if err != nil {
		return p.fail("resize", KindGeometry, err)
	}
	if err := p.checkSize(size); err != nil {
		return p.fail("resize", KindGeometry, err)
	}
	c, err := transform.Resize(p.current, mode, target)
	if err != nil {
		return p.fail("resize", KindGeometry, err)
	}
	p.replace("resize", c)
	return nil
}

// Crop cuts rect out of the current image. Rectangles reaching past the
// edges are clamped.
func (p *Pipeline) Crop(rect geometry.CropRect) error {
	if p.current == nil {
		return p.fail("crop", KindNotLoaded, ErrNoImage)
	}
	c, err := transform.Crop(p.current, rect)
	if err != nil {
		return p.fail("crop", KindGeometry, err)
	}
	p.replace("crop", c)
	return nil
}

// Rotate turns the current image counter-clockwise by degrees. A transparent
// background stays transparent in the canvas; Generate flattens it onto white
// for formats without an alpha channel.
func (p *Pipeline) Rotate(degrees float64, bg transform.Background) error {
	if p.current == nil {
		return p.fail("rotate", KindNotLoaded, ErrNoImage)
	}
	if err := p.checkSize(geometry.RotatedSize(p.size(), degrees)); err != nil {
		return p.fail("rotate", KindGeometry, err)
	}
	p.replace("rotate", transform.Rotate(p.current, degrees, bg.Resolve(true)))
	return nil
}

// Flip mirrors the current image.
func (p *Pipeline) Flip(axis transform.Axis) error {
	if p.current == nil {
		return p.fail("flip", KindNotLoaded, ErrNoImage)
	}
	p.replace("flip", transform.Flip(p.current, axis))
	return nil
}

// LoadWatermark decodes src as the watermark, replacing any earlier one.
func (p *Pipeline) LoadWatermark(src []byte, pos geometry.Position, margin geometry.Margin) error {
	c, _, err := raster.Decode(src, p.decodeOptions())
	if err != nil {
		return p.fail("load_watermark", KindLoad, err)
	}
	p.watermark = &composite.Watermark{Canvas: c, Position: pos, Margin: margin}
	p.debugf("pipeline load_watermark: %dx%d at %s", c.Width(), c.Height(), pos)
	return nil
}

// LoadWatermarkFile reads and decodes the watermark at path.
func (p *Pipeline) LoadWatermarkFile(path string, pos geometry.Position, margin geometry.Margin) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return p.fail("load_watermark", KindLoad, fmt.Errorf("failed to read watermark: %w", err))
	}
	return p.LoadWatermark(data, pos, margin)
}

// ApplyWatermark composites the loaded watermark onto the current image.
func (p *Pipeline) ApplyWatermark() error {
	if p.watermark == nil {
		return p.fail("apply_watermark", KindNotLoaded, composite.ErrNotLoaded)
	}
	if p.current == nil {
		return p.fail("apply_watermark", KindNotLoaded, ErrNoImage)
	}
	c, err := composite.Apply(p.current, p.watermark)
	if err != nil {
		return p.fail("apply_watermark", KindNotLoaded, err)
	}
	p.replace("apply_watermark", c)
	return nil
}

// Generate encodes the current image and returns the bytes. When dest is not
// empty the bytes are also written there.
//
// The format comes from mimeType when given, otherwise from dest's extension,
// otherwise from the loaded image.
func (p *Pipeline) Generate(dest, mimeType string) ([]byte, error) {
	if p.current == nil {
		return nil, p.fail("generate", KindNotLoaded, ErrNoImage)
	}

	f, err := p.ResolveFormat(dest, mimeType)
	if err != nil {
		return nil, p.fail("generate", KindEncode, err)
	}

	data, err := raster.EncodeBytes(p.current, f, raster.EncodeOptions{
		Quality:     p.quality,
		Compression: p.compression,
	})
	if err != nil {
		return nil, p.fail("generate", KindEncode, err)
	}

	if dest != "" {
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return nil, p.fail("generate", KindEncode, fmt.Errorf("failed to write image: %w", err))
		}
	}
	p.debugf("pipeline generate: %d bytes of %s", len(data), f)
	return data, nil
}

// ResolveFormat reports the format Generate(dest, mimeType) would write.
func (p *Pipeline) ResolveFormat(dest, mimeType string) (raster.Format, error) {
	if mimeType != "" {
		return raster.FormatFromMIME(mimeType)
	}
	if dest != "" {
		if f, err := raster.FormatFromPath(dest); err == nil {
			return f, nil
		}
	}
	return p.outputFormat(), nil
}

// Errors returns the error log, oldest first.
func (p *Pipeline) Errors() []*Error {
	out := make([]*Error, len(p.errs))
	copy(out, p.errs)
	return out
}

// Canvas returns a copy of the current image, or nil before Load.
func (p *Pipeline) Canvas() *canvas.Canvas {
	if p.current == nil {
		return nil
	}
	return p.current.Clone()
}

// Info describes the current image: the load metadata with dimensions
// updated to the current canvas. It returns nil before Load.
func (p *Pipeline) Info() *raster.Info {
	if p.current == nil || p.info == nil {
		return nil
	}
	info := *p.info
	info.Width = p.current.Width()
	info.Height = p.current.Height()
	return &info
}

// HasWatermark reports whether a watermark is loaded.
func (p *Pipeline) HasWatermark() bool { return p.watermark != nil }

// Quality returns the current JPEG/GIF quality and PNG compression level.
func (p *Pipeline) Quality() (quality, compression int) {
	return p.quality, p.compression
}
