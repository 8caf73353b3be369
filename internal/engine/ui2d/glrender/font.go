package glrender

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"

	"github.com/Faultbox/contribscape/internal/engine/text"
)

// Font is a glyph atlas uploaded as a GL texture.
type Font struct {
	atlas   *text.Atlas
	texture uint32
}

// NewFont rasterizes the printable ASCII set of face and uploads it.
// Requires a current GL context.
func NewFont(face font.Face) *Font {
	atlas := text.BuildAtlas(face, text.ASCII())
	img := atlas.Image
	b := img.Bounds()

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &Font{atlas: atlas, texture: tex}
}

// TextureID returns the atlas texture.
func (f *Font) TextureID() uint32 {
	return f.texture
}

// Glyph returns the atlas cell for r.
func (f *Font) Glyph(r rune) text.Glyph {
	return f.atlas.Glyph(r)
}

// GlyphSize returns the pixel size of one atlas cell.
func (f *Font) GlyphSize() (int, int) {
	return f.atlas.CellW, f.atlas.CellH
}

// MeasureText returns the width and height of text at scale.
func (f *Font) MeasureText(s string, scale float32) (float32, float32) {
	return f.atlas.MeasureText(s, scale)
}

// Close deletes the texture.
func (f *Font) Close() {
	if f.texture != 0 {
		gl.DeleteTextures(1, &f.texture)
		f.texture = 0
	}
}
