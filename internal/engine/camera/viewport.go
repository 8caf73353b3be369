package camera

// Viewport is the device context handed to resize handlers and picking.
// Width and Height are in window (logical) pixels, the unit of pointer
// events; PixelRatio maps them to drawable pixels.
type Viewport struct {
	Width      int
	Height     int
	PixelRatio float32
}

// Aspect returns width / height, or 1 for an empty viewport.
func (v Viewport) Aspect() float32 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// DrawableSize returns the framebuffer size with the pixel ratio capped at maxRatio.
func (v Viewport) DrawableSize(maxRatio float32) (int, int) {
	ratio := v.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	if maxRatio > 0 {
		ratio = min(ratio, maxRatio)
	}
	return int(float32(v.Width) * ratio), int(float32(v.Height) * ratio)
}

// ToNDC converts window pixel coordinates (origin top-left) to normalized
// device coordinates (-1..1, Y up).
func (v Viewport) ToNDC(x, y float32) (float32, float32) {
	if v.Width <= 0 || v.Height <= 0 {
		return 0, 0
	}
	return 2*x/float32(v.Width) - 1, 1 - 2*y/float32(v.Height)
}

// ToScreen is the inverse of ToNDC.
func (v Viewport) ToScreen(ndcX, ndcY float32) (float32, float32) {
	return (ndcX + 1) / 2 * float32(v.Width), (1 - ndcY) / 2 * float32(v.Height)
}
