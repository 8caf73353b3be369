package text

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestMeasureBasicFace(t *testing.T) {
	w, h := Measure(basicfont.Face7x13, "abc")
	if w != 21 || h != 13 {
		t.Errorf("Measure = %dx%d, want 21x13", w, h)
	}
}

func TestRasterize(t *testing.T) {
	img := Rasterize(basicfont.Face7x13, "Hi", color.White)
	if img == nil {
		t.Fatal("Rasterize returned nil")
	}
	if b := img.Bounds(); b.Dx() != 14 || b.Dy() != 13 {
		t.Fatalf("bounds = %v, want 14x13", b)
	}

	inked := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			inked++
		}
	}
	if inked == 0 {
		t.Error("no pixels drawn")
	}
}

func TestRasterizeEmpty(t *testing.T) {
	if img := Rasterize(basicfont.Face7x13, "", color.White); img != nil {
		t.Errorf("empty string rasterized to %v", img.Bounds())
	}
}

func TestDefaultFace(t *testing.T) {
	face := DefaultFace(20)
	if face == nil {
		t.Fatal("DefaultFace returned nil")
	}
	wa, _ := Measure(face, "a")
	wab, h := Measure(face, "ab")
	if wab <= wa {
		t.Errorf("width(ab) = %d not wider than width(a) = %d", wab, wa)
	}
	if h <= 0 {
		t.Errorf("line height = %d", h)
	}
}

func TestLoadFaceErrors(t *testing.T) {
	if _, err := LoadFace(filepath.Join(t.TempDir(), "missing.ttf"), 12); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "garbage.ttf")
	if err := os.WriteFile(path, []byte("not a font"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFace(path, 12); err == nil {
		t.Error("expected error for invalid font data")
	}
}

func TestBuildAtlas(t *testing.T) {
	a := BuildAtlas(basicfont.Face7x13, ASCII())

	if a.CellW != 7 || a.CellH != 13 || a.Ascent != 11 {
		t.Fatalf("cell = %dx%d ascent %d, want 7x13 ascent 11", a.CellW, a.CellH, a.Ascent)
	}
	if a.Image.Bounds().Dx() != 7*atlasColumns {
		t.Errorf("atlas width = %d", a.Image.Bounds().Dx())
	}

	for r := rune(32); r < 127; r++ {
		if !a.Has(r) {
			t.Fatalf("rune %q missing", r)
		}
		g := a.Glyph(r)
		if g.U0 < 0 || g.U1 > 1 || g.V0 < 0 || g.V1 > 1 || g.U0 >= g.U1 || g.V0 >= g.V1 {
			t.Fatalf("rune %q has bad uv %+v", r, g)
		}
		if g.Advance != 7 {
			t.Fatalf("rune %q advance = %v, want 7", r, g.Advance)
		}
	}
}

func TestAtlasFallbackAndMeasure(t *testing.T) {
	a := BuildAtlas(basicfont.Face7x13, ASCII())

	if a.Has('漢') {
		t.Fatal("unexpected glyph for CJK rune")
	}
	if a.Glyph('漢') != a.Glyph('?') {
		t.Error("unknown rune should fall back to '?'")
	}

	w, h := a.MeasureText("abcd", 2)
	if w != 56 || h != 26 {
		t.Errorf("MeasureText = %vx%v, want 56x26", w, h)
	}

	w, h = a.MeasureText("ab\nabcd", 1)
	if w != 28 || h != 26 {
		t.Errorf("multi-line MeasureText = %vx%v, want 28x26", w, h)
	}
}

func TestNewLabel(t *testing.T) {
	l, ok := NewLabel(basicfont.Face7x13, "octocat", color.White, [3]float32{1, 2, 3}, 1.3)
	if !ok {
		t.Fatal("NewLabel reported nothing to draw")
	}
	w, h := l.Size()
	// 7 runes × 7px wide, 13px tall
	if h != 1.3 || w < 4.89 || w > 4.91 {
		t.Errorf("Size() = %v x %v, want 4.9 x 1.3", w, h)
	}
	if l.Anchor != [3]float32{1, 2, 3} || l.Text != "octocat" {
		t.Errorf("label = %+v", l)
	}

	if _, ok := NewLabel(basicfont.Face7x13, "", color.White, [3]float32{}, 1); ok {
		t.Error("empty text should not produce a label")
	}
	if _, ok := NewLabel(basicfont.Face7x13, "x", color.White, [3]float32{}, 0); ok {
		t.Error("zero height should not produce a label")
	}
	if w, h := (Label{}).Size(); w != 0 || h != 0 {
		t.Errorf("empty label size = %v x %v", w, h)
	}
}
