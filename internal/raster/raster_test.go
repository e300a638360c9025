package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/ironsheep/watimage-mcp/internal/canvas"
)

// createTestPNG encodes a width x height image filled with c as PNG.
func createTestPNG(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

// createTestJPEG encodes an opaque width x height image as JPEG.
func createTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{200, 100, 50, 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("failed to encode JPEG: %v", err)
	}
	return buf.Bytes()
}

func TestDecode_PNG(t *testing.T) {
	data := createTestPNG(t, 30, 20, color.NRGBA{255, 0, 0, 128})

	c, info, err := Decode(data, DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if c.Width() != 30 || c.Height() != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", c.Width(), c.Height())
	}
	if info.Format != PNG || info.Source != "png" {
		t.Errorf("format: got %s (%s), want png", info.Format, info.Source)
	}
	if !info.HasAlpha {
		t.Error("NRGBA PNG should report alpha")
	}
	if info.ColorDepth != "8-bit" {
		t.Errorf("ColorDepth: got %s, want 8-bit", info.ColorDepth)
	}
	if info.SizeBytes != len(data) {
		t.Errorf("SizeBytes: got %d, want %d", info.SizeBytes, len(data))
	}
	if got := c.At(5, 5); got != (canvas.Color{R: 255, A: 128}) {
		t.Errorf("pixel: got %+v, want translucent red", got)
	}
}

func TestDecode_JPEG(t *testing.T) {
	c, info, err := Decode(createTestJPEG(t, 16, 8), DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if info.Format != JPEG {
		t.Errorf("format: got %s, want jpeg", info.Format)
	}
	if info.HasAlpha {
		t.Error("JPEG should not report alpha")
	}
	if !c.Opaque() {
		t.Error("decoded JPEG should be opaque")
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, _, err := Decode(nil, DecodeOptions{}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty input: got %v, want ErrEmptyInput", err)
	}
	if _, _, err := Decode([]byte("definitely not an image"), DecodeOptions{}); !errors.Is(err, image.ErrFormat) {
		t.Errorf("garbage input: got %v, want image.ErrFormat", err)
	}

	data := createTestPNG(t, 100, 100, color.White)
	if _, _, err := Decode(data, DecodeOptions{MaxPixels: 5000}); !errors.Is(err, ErrTooLarge) {
		t.Errorf("oversized input: got %v, want ErrTooLarge", err)
	}
	if _, _, err := Decode(data, DecodeOptions{MaxPixels: 10000}); err != nil {
		t.Errorf("input at the limit should decode: %v", err)
	}
}

func TestEncode_RoundTripPNG(t *testing.T) {
	src, _ := canvas.New(7, 5)
	src.Fill(canvas.Color{R: 10, G: 20, B: 30, A: 40})
	src.Set(3, 2, canvas.Color{R: 255, A: 255})

	for level := 0; level <= 9; level++ {
		data, err := EncodeBytes(src, PNG, EncodeOptions{Compression: level})
		if err != nil {
			t.Fatalf("EncodeBytes(level %d) failed: %v", level, err)
		}
		got, _, err := Decode(data, DecodeOptions{})
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if !got.Equal(src) {
			t.Errorf("PNG level %d round trip changed pixel data", level)
		}
	}
}

func TestEncode_JPEGFlattensOntoWhite(t *testing.T) {
	src, _ := canvas.New(16, 16)

	data, err := EncodeBytes(src, JPEG, EncodeOptions{Quality: 100})
	if err != nil {
		t.Fatalf("EncodeBytes failed: %v", err)
	}
	got, info, err := Decode(data, DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if info.Format != JPEG {
		t.Errorf("format: got %s, want jpeg", info.Format)
	}
	if c := got.At(8, 8); c.R < 250 || c.G < 250 || c.B < 250 {
		t.Errorf("transparent pixels should encode as white, got %+v", c)
	}
}

func TestEncode_JPEGQualityAffectsSize(t *testing.T) {
	src, _ := canvas.New(64, 64)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			src.Set(x, y, canvas.Color{R: uint8(x * 4), G: uint8(y * 4), B: uint8(x ^ y), A: 255})
		}
	}

	low, err := EncodeBytes(src, JPEG, EncodeOptions{Quality: 10})
	if err != nil {
		t.Fatalf("EncodeBytes failed: %v", err)
	}
	high, err := EncodeBytes(src, JPEG, EncodeOptions{Quality: 100})
	if err != nil {
		t.Fatalf("EncodeBytes failed: %v", err)
	}
	if len(low) >= len(high) {
		t.Errorf("quality 10 (%d bytes) should be smaller than quality 100 (%d bytes)", len(low), len(high))
	}
}

func TestEncode_AllFormats(t *testing.T) {
	src, _ := canvas.New(10, 6)
	src.Fill(canvas.White)

	for _, f := range []Format{PNG, JPEG, GIF, BMP, TIFF} {
		t.Run(string(f), func(t *testing.T) {
			data, err := EncodeBytes(src, f, DefaultEncodeOptions())
			if err != nil {
				t.Fatalf("EncodeBytes failed: %v", err)
			}
			got, info, err := Decode(data, DecodeOptions{})
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if got.Width() != 10 || got.Height() != 6 {
				t.Errorf("dimensions: got %dx%d, want 10x6", got.Width(), got.Height())
			}
			if info.Format != f {
				t.Errorf("format: got %s, want %s", info.Format, f)
			}
		})
	}
}

func TestEncode_Unsupported(t *testing.T) {
	src, _ := canvas.New(2, 2)
	if _, err := EncodeBytes(src, Format("webp"), DefaultEncodeOptions()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestFormatFromMIME(t *testing.T) {
	tests := []struct {
		mime string
		want Format
	}{
		{"image/png", PNG},
		{"image/jpeg", JPEG},
		{"image/jpg", JPEG},
		{"IMAGE/GIF", GIF},
		{"image/png; charset=binary", PNG},
		{"image/x-ms-bmp", BMP},
		{"image/tiff", TIFF},
	}
	for _, tt := range tests {
		got, err := FormatFromMIME(tt.mime)
		if err != nil {
			t.Fatalf("FormatFromMIME(%q) failed: %v", tt.mime, err)
		}
		if got != tt.want {
			t.Errorf("FormatFromMIME(%q): got %s, want %s", tt.mime, got, tt.want)
		}
		if got.MIME() == "" {
			t.Errorf("%s has no canonical MIME type", got)
		}
	}

	for _, bad := range []string{"", "text/plain", "image/webp"} {
		if _, err := FormatFromMIME(bad); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("FormatFromMIME(%q): got %v, want ErrUnsupportedFormat", bad, err)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"/tmp/out.png", PNG},
		{"photo.JPG", JPEG},
		{"photo.jpeg", JPEG},
		{"anim.gif", GIF},
		{"scan.tif", TIFF},
		{"old.bmp", BMP},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if err != nil {
			t.Fatalf("FormatFromPath(%q) failed: %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q): got %s, want %s", tt.path, got, tt.want)
		}
	}
	if _, err := FormatFromPath("notes.txt"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("FormatFromPath(notes.txt): got %v, want ErrUnsupportedFormat", err)
	}
}

func TestFormatProperties(t *testing.T) {
	if !PNG.SupportsAlpha() || JPEG.SupportsAlpha() || GIF.SupportsAlpha() {
		t.Error("only PNG and TIFF keep alpha")
	}
	if lo, hi := PNG.QualityRange(); lo != 0 || hi != 9 {
		t.Errorf("PNG range: got %d-%d, want 0-9", lo, hi)
	}
	if lo, hi := JPEG.QualityRange(); lo != 0 || hi != 100 {
		t.Errorf("JPEG range: got %d-%d, want 0-100", lo, hi)
	}
	if !JPEG.Lossy() || PNG.Lossy() {
		t.Error("only JPEG is lossy")
	}
}

func TestPNGLevelAndGIFColors(t *testing.T) {
	if pngLevel(0) != png.NoCompression || pngLevel(9) != png.BestCompression || pngLevel(2) != png.BestSpeed {
		t.Error("unexpected PNG level mapping")
	}
	if gifColors(0) != 2 || gifColors(100) != 256 || gifColors(500) != 256 {
		t.Errorf("unexpected GIF palette sizes: %d %d %d", gifColors(0), gifColors(100), gifColors(500))
	}
}

func TestDescribeModel(t *testing.T) {
	opaque := color.Palette{color.Black, color.White}
	if alpha, _ := describeModel(opaque); alpha {
		t.Error("opaque palette should not report alpha")
	}
	withTransparent := color.Palette{color.Black, color.Transparent}
	if alpha, _ := describeModel(withTransparent); !alpha {
		t.Error("palette with transparent entry should report alpha")
	}
	if alpha, depth := describeModel(color.NRGBA64Model); !alpha || depth != "16-bit" {
		t.Errorf("NRGBA64: got alpha=%v depth=%s", alpha, depth)
	}
	if alpha, _ := describeModel(color.YCbCrModel); alpha {
		t.Error("YCbCr should not report alpha")
	}
}
