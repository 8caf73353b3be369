// Package text loads fonts and rasterizes strings into images for labels
// and the overlay glyph atlas.
package text

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultSize is the point size used when none is configured.
const DefaultSize = 28

// LoadFace parses a TrueType/OpenType file and returns a face at size points.
func LoadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font %s: %w", path, err)
	}
	face, err := parseFace(data, size)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}
	return face, nil
}

// DefaultFace returns the bundled Go Regular face, or the fixed 7x13 bitmap
// face if it cannot be parsed.
func DefaultFace(size float64) font.Face {
	face, err := parseFace(goregular.TTF, size)
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

func parseFace(data []byte, size float64) (font.Face, error) {
	if size <= 0 {
		size = DefaultSize
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face: %w", err)
	}
	return face, nil
}

// Measure returns the pixel width and line height of s in face.
func Measure(face font.Face, s string) (w, h int) {
	m := face.Metrics()
	return font.MeasureString(face, s).Ceil(), (m.Ascent + m.Descent).Ceil()
}

// Rasterize draws s in col onto a transparent image sized to the text.
// An empty string yields nil.
func Rasterize(face font.Face, s string, col color.Color) *image.RGBA {
	if s == "" {
		return nil
	}
	w, h := Measure(face, s)
	if w == 0 || h == 0 {
		return nil
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: face.Metrics().Ascent},
	}
	d.DrawString(s)
	return img
}
