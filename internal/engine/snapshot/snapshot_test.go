package snapshot

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 5, 14, 30, 9, 0, time.UTC)
}

func TestFilename(t *testing.T) {
	c := New("shots", "contribscape")
	c.now = fixedClock

	tests := []struct {
		label string
		want  string
	}{
		{"octocat", "contribscape_octocat_2024-03-05_14-30-09.png"},
		{"../evil name", "contribscape_evilname_2024-03-05_14-30-09.png"},
		{"", "contribscape_2024-03-05_14-30-09.png"},
	}
	for _, tt := range tests {
		if got := c.Filename(tt.label); got != filepath.Join("shots", tt.want) {
			t.Errorf("Filename(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestFromPixelsFlips(t *testing.T) {
	// 1x2 image: bottom row red, top row blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b == 0 {
		t.Errorf("top pixel should be blue")
	}
	if r, _, b, _ := img.At(0, 1).RGBA(); r == 0 || b != 0 {
		t.Errorf("bottom pixel should be red")
	}

	if _, err := FromPixels(pixels, 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
	if _, err := FromPixels(nil, 0, 0); err == nil {
		t.Error("expected invalid size error")
	}
}

func TestSavePixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	c := New(dir, "test")
	c.now = fixedClock

	path, err := c.SavePixels(make([]byte, 4*3*2), 4, 3, "octocat")
	// 4x3 needs 48 bytes
	if err == nil {
		t.Fatalf("short buffer saved to %s", path)
	}

	path, err = c.SavePixels(make([]byte, 4*3*4), 4, 3, "octocat")
	if err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("saved image is %v, want 4x3", b)
	}
}
