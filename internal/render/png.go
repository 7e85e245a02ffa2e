package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"terraflow/pkg/terrain"
)

// WriteGrayPNG encodes the field as an 8-bit grayscale image, normalized
// so the lowest cell maps to black and the highest to white.
func WriteGrayPNG(w io.Writer, f *terrain.HeightField) error {
	if f == nil {
		return fmt.Errorf("render: nil height field")
	}
	lo, hi := f.MinMax()
	span := hi - lo
	if span == 0 {
		span = 1
	}

	img := image.NewGray(image.Rect(0, 0, f.Width(), f.Height()))
	values := f.Values()
	for i, v := range values {
		img.Pix[i] = uint8((v - lo) / span * 255)
	}
	return png.Encode(w, img)
}

// SaveGrayPNG writes the normalized grayscale rendering to a file.
func SaveGrayPNG(path string, f *terrain.HeightField) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteGrayPNG(file, f)
}

// WritePalettedPNG encodes paletted cell data as a full color image.
func WritePalettedPNG(w io.Writer, cells []uint8, width, height int, palette []color.RGBA) error {
	if len(cells) != width*height {
		return fmt.Errorf("render: cell count %d does not match %dx%d", len(cells), width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fillPaletteRGBA(img.Pix, cells, palette)
	return png.Encode(w, img)
}

// SavePalettedPNG writes the paletted rendering to a file.
func SavePalettedPNG(path string, cells []uint8, width, height int, palette []color.RGBA) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WritePalettedPNG(file, cells, width, height, palette)
}
