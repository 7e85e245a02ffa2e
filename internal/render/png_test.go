package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"terraflow/pkg/terrain"
)

func TestWriteGrayPNGNormalizes(t *testing.T) {
	f, err := terrain.NewHeightField(8, 4)
	if err != nil {
		t.Fatalf("NewHeightField: %v", err)
	}
	f.Fill(0.5)
	f.Set(0, 0, 0.2)
	f.Set(7, 3, 0.9)

	var buf bytes.Buffer
	if err := WriteGrayPNG(&buf, f); err != nil {
		t.Fatalf("WriteGrayPNG: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Fatalf("bounds = %v, want 8x4", b)
	}
	if g := color.GrayModel.Convert(img.At(0, 0)).(color.Gray); g.Y != 0 {
		t.Fatalf("lowest cell = %d, want 0", g.Y)
	}
	if g := color.GrayModel.Convert(img.At(7, 3)).(color.Gray); g.Y != 255 {
		t.Fatalf("highest cell = %d, want 255", g.Y)
	}
}

func TestWriteGrayPNGConstantField(t *testing.T) {
	f, _ := terrain.NewHeightField(4, 4)
	f.Fill(0.7)

	var buf bytes.Buffer
	if err := WriteGrayPNG(&buf, f); err != nil {
		t.Fatalf("WriteGrayPNG: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestWritePalettedPNG(t *testing.T) {
	palette := []color.RGBA{
		{R: 10, G: 20, B: 30, A: 255},
		{R: 200, G: 100, B: 50, A: 255},
	}
	cells := []uint8{0, 1, 1, 0}

	var buf bytes.Buffer
	if err := WritePalettedPNG(&buf, cells, 2, 2, palette); err != nil {
		t.Fatalf("WritePalettedPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, g, b, _ := img.At(1, 0).RGBA()
	want := palette[1]
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Fatalf("pixel (1,0) = %d,%d,%d, want %d,%d,%d", r>>8, g>>8, b>>8, want.R, want.G, want.B)
	}

	if err := WritePalettedPNG(&buf, cells, 3, 2, palette); err == nil {
		t.Fatal("mismatched dimensions accepted")
	}
}
