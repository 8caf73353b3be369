package text

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// atlasColumns is the number of glyph cells per atlas row.
const atlasColumns = 16

// Glyph locates one rune inside an Atlas.
type Glyph struct {
	// U0, V0, U1, V1 are normalized texture coordinates of the glyph cell.
	U0, V0, U1, V1 float32
	// Advance is the horizontal pen advance in pixels.
	Advance float32
}

// Atlas is a white-on-transparent image holding one fixed-size cell per
// rune. Glyph quads are CellW×CellH pixels; the pen advances per glyph.
type Atlas struct {
	Image        *image.RGBA
	CellW, CellH int
	Ascent       int
	glyphs       map[rune]Glyph
	fallback     Glyph
}

// ASCII returns the printable ASCII range plus a few symbols the overlay uses.
func ASCII() []rune {
	runes := make([]rune, 0, 100)
	for r := rune(32); r < 127; r++ {
		runes = append(runes, r)
	}
	return append(runes, '…', '·', '•')
}

// BuildAtlas renders runes from face into a single atlas image. Runes the
// face has no glyph for are left out.
func BuildAtlas(face font.Face, runes []rune) *Atlas {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	cellH := ascent + m.Descent.Ceil()

	cellW := 1
	supported := make([]rune, 0, len(runes))
	advances := make([]fixed.Int26_6, 0, len(runes))
	for _, r := range runes {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		supported = append(supported, r)
		advances = append(advances, adv)
		cellW = max(cellW, adv.Ceil())
	}
	runes = supported

	rows := (len(runes) + atlasColumns - 1) / atlasColumns
	if rows == 0 {
		rows = 1
	}
	width, height := cellW*atlasColumns, cellH*rows

	a := &Atlas{
		Image:  image.NewRGBA(image.Rect(0, 0, width, height)),
		CellW:  cellW,
		CellH:  cellH,
		Ascent: ascent,
		glyphs: make(map[rune]Glyph, len(runes)),
	}

	d := &font.Drawer{Dst: a.Image, Src: image.NewUniform(color.White), Face: face}
	for i, r := range runes {
		col, row := i%atlasColumns, i/atlasColumns
		x, y := col*cellW, row*cellH
		d.Dot = fixed.P(x, y+ascent)
		d.DrawString(string(r))

		a.glyphs[r] = Glyph{
			U0:      float32(x) / float32(width),
			V0:      float32(y) / float32(height),
			U1:      float32(x+cellW) / float32(width),
			V1:      float32(y+cellH) / float32(height),
			Advance: float32(advances[i]) / 64,
		}
	}

	if g, ok := a.glyphs['?']; ok {
		a.fallback = g
	}
	return a
}

// Glyph returns the cell for r, falling back to '?' for unknown runes.
func (a *Atlas) Glyph(r rune) Glyph {
	if g, ok := a.glyphs[r]; ok {
		return g
	}
	return a.fallback
}

// Has reports whether r was rendered into the atlas.
func (a *Atlas) Has(r rune) bool {
	_, ok := a.glyphs[r]
	return ok
}

// MeasureText returns the width and height of s drawn at scale.
func (a *Atlas) MeasureText(s string, scale float32) (float32, float32) {
	var w, line float32
	lines := 1
	for _, r := range s {
		if r == '\n' {
			w = max(w, line)
			line = 0
			lines++
			continue
		}
		line += a.Glyph(r).Advance
	}
	w = max(w, line)
	return w * scale, float32(a.CellH*lines) * scale
}
