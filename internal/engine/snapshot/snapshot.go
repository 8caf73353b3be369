// Package snapshot saves rendered frames as PNG files.
package snapshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const timeLayout = "2006-01-02_15-04-05"

// Capture writes snapshots into a directory.
type Capture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// New creates a capture writing "<prefix>_<label>_<time>.png" files into outputDir.
func New(outputDir, prefix string) *Capture {
	return &Capture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// OutputDir returns the directory snapshots are written to.
func (c *Capture) OutputDir() string {
	return c.outputDir
}

// Filename returns the path the next snapshot for label would be saved to.
func (c *Capture) Filename(label string) string {
	parts := []string{c.prefix}
	if s := sanitize(label); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, c.now().Format(timeLayout))
	name := strings.Join(parts, "_") + ".png"
	if c.outputDir != "" {
		name = filepath.Join(c.outputDir, name)
	}
	return name
}

// sanitize keeps the characters GitHub allows in usernames.
func sanitize(label string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return -1
		}
	}, label)
}

// FromPixels converts bottom-up RGBA rows, as read back from OpenGL, into a
// top-down image.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := range height {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// SavePixels flips and saves raw frame pixels.
func (c *Capture) SavePixels(pixels []byte, width, height int, label string) (string, error) {
	img, err := FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return c.Save(img, label)
}

// Save encodes img as PNG and returns the written path.
func (c *Capture) Save(img image.Image, label string) (string, error) {
	if c.outputDir != "" {
		if err := os.MkdirAll(c.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := c.Filename(label)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}
