package text

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
)

// Label is a rasterized string placed in world space, anchored at the
// bottom center of its image.
type Label struct {
	Text   string
	Image  *image.RGBA
	Anchor [3]float32
	// Height is the world-space height; the width follows the image aspect.
	Height float32
}

// NewLabel rasterizes s for display at anchor. It reports false when there
// is nothing to draw.
func NewLabel(face font.Face, s string, col color.Color, anchor [3]float32, height float32) (Label, bool) {
	img := Rasterize(face, s, col)
	if img == nil || height <= 0 {
		return Label{}, false
	}
	return Label{Text: s, Image: img, Anchor: anchor, Height: height}, true
}

// Size returns the world-space width and height of the label.
func (l Label) Size() (float32, float32) {
	if l.Image == nil {
		return 0, 0
	}
	b := l.Image.Bounds()
	if b.Dy() == 0 {
		return 0, 0
	}
	return l.Height * float32(b.Dx()) / float32(b.Dy()), l.Height
}
