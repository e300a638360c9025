package canvas

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// createPatternCanvas builds a canvas with four colored quadrants:
// red top-left, green top-right, blue bottom-left, white bottom-right.
func createPatternCanvas(t *testing.T, width, height int) *Canvas {
	t.Helper()
	c, err := New(width, height)
	if err != nil {
		t.Fatalf("New(%d, %d) failed: %v", width, height, err)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var col Color
			switch {
			case x < width/2 && y < height/2:
				col = Color{255, 0, 0, 255}
			case x >= width/2 && y < height/2:
				col = Color{0, 255, 0, 255}
			case x < width/2:
				col = Color{0, 0, 255, 255}
			default:
				col = White
			}
			c.Set(x, y, col)
		}
	}
	return c
}

func TestNew(t *testing.T) {
	c, err := New(3, 2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if c.Width() != 3 || c.Height() != 2 {
		t.Errorf("dimensions: got %dx%d, want 3x2", c.Width(), c.Height())
	}
	if len(c.pix) != 3*2*4 {
		t.Errorf("pixel buffer length: got %d, want 24", len(c.pix))
	}
	if c.At(1, 1) != Transparent {
		t.Errorf("new canvas should be transparent, got %+v", c.At(1, 1))
	}
}

func TestNew_ZeroArea(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.w, tt.h)
			if !errors.Is(err, ErrZeroArea) {
				t.Errorf("New(%d, %d): got %v, want ErrZeroArea", tt.w, tt.h, err)
			}
		})
	}
}

func TestFromImage_RebasesOrigin(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 14, 23))
	img.Set(10, 20, color.RGBA{255, 0, 0, 255})
	img.Set(13, 22, color.RGBA{0, 0, 255, 255})

	c, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if c.Width() != 4 || c.Height() != 3 {
		t.Fatalf("dimensions: got %dx%d, want 4x3", c.Width(), c.Height())
	}
	if got := c.At(0, 0); got != (Color{255, 0, 0, 255}) {
		t.Errorf("At(0,0): got %+v, want red", got)
	}
	if got := c.At(3, 2); got != (Color{0, 0, 255, 255}) {
		t.Errorf("At(3,2): got %+v, want blue", got)
	}
}

func TestFromImage_SubImageCopies(t *testing.T) {
	src := createPatternCanvas(t, 8, 8).NRGBA()
	sub := src.SubImage(image.Rect(4, 0, 8, 4)).(*image.NRGBA)

	c, err := FromImage(sub)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if c.Width() != 4 || c.Height() != 4 {
		t.Fatalf("dimensions: got %dx%d, want 4x4", c.Width(), c.Height())
	}
	if got := c.At(0, 0); got != (Color{0, 255, 0, 255}) {
		t.Errorf("At(0,0): got %+v, want green", got)
	}

	c.Set(0, 0, Black)
	if src.NRGBAAt(4, 0).G != 255 {
		t.Error("FromImage must not share memory with its source")
	}
}

func TestFromNRGBA_AdoptsTightBuffer(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	c, err := FromNRGBA(img)
	if err != nil {
		t.Fatalf("FromNRGBA failed: %v", err)
	}
	if &c.pix[0] != &img.Pix[0] {
		t.Error("tightly packed buffer should be adopted, not copied")
	}
}

func TestFromNRGBA_Empty(t *testing.T) {
	_, err := FromNRGBA(image.NewNRGBA(image.Rect(0, 0, 0, 5)))
	if !errors.Is(err, ErrZeroArea) {
		t.Errorf("got %v, want ErrZeroArea", err)
	}
}

func TestAtSet_OutOfBounds(t *testing.T) {
	c := createPatternCanvas(t, 4, 4)
	before := c.Clone()

	c.Set(-1, 0, Black)
	c.Set(4, 0, Black)
	c.Set(0, 4, Black)

	if !c.Equal(before) {
		t.Error("out-of-bounds Set must not modify the canvas")
	}
	if got := c.At(10, 10); got != Transparent {
		t.Errorf("out-of-bounds At: got %+v, want Transparent", got)
	}
}

func TestClone_Independent(t *testing.T) {
	c := createPatternCanvas(t, 4, 4)
	clone := c.Clone()
	if !c.Equal(clone) {
		t.Fatal("clone should equal original")
	}
	clone.Set(0, 0, Black)
	if c.At(0, 0) == Black {
		t.Error("modifying clone changed the original")
	}
}

func TestEqual(t *testing.T) {
	a := createPatternCanvas(t, 4, 4)
	b := createPatternCanvas(t, 4, 4)
	c := createPatternCanvas(t, 4, 2)

	if !a.Equal(b) {
		t.Error("identical canvases should be equal")
	}
	if a.Equal(c) {
		t.Error("canvases of different size should differ")
	}
	if a.Equal(nil) {
		t.Error("canvas should not equal nil")
	}
}

func TestFillAndOpaque(t *testing.T) {
	c, _ := New(3, 3)
	if c.Opaque() {
		t.Error("fresh canvas should not be opaque")
	}
	c.Fill(White)
	if !c.Opaque() {
		t.Error("white-filled canvas should be opaque")
	}
	c.Set(1, 1, Color{10, 10, 10, 128})
	if c.Opaque() {
		t.Error("canvas with translucent pixel should not be opaque")
	}
}

func TestBlend(t *testing.T) {
	c, _ := New(2, 1)
	c.Fill(Color{0, 0, 255, 255})

	c.Blend(0, 0, Color{255, 0, 0, 255})
	c.Blend(1, 0, Color{255, 0, 0, 0})

	if got := c.At(0, 0); got != (Color{255, 0, 0, 255}) {
		t.Errorf("opaque blend: got %+v, want red", got)
	}
	if got := c.At(1, 0); got != (Color{0, 0, 255, 255}) {
		t.Errorf("transparent blend: got %+v, want unchanged blue", got)
	}
}
