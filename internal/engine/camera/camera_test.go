package camera

import (
	gomath "math"
	"testing"
)

func near(a, b, eps float32) bool {
	return gomath.Abs(float64(a-b)) <= float64(eps)
}

func TestViewportNDCRoundTrip(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600, PixelRatio: 2}

	tests := []struct {
		x, y       float32
		ndcX, ndcY float32
	}{
		{0, 0, -1, 1},
		{800, 600, 1, -1},
		{400, 300, 0, 0},
		{200, 450, -0.5, -0.5},
	}
	for _, tt := range tests {
		nx, ny := vp.ToNDC(tt.x, tt.y)
		if !near(nx, tt.ndcX, 1e-6) || !near(ny, tt.ndcY, 1e-6) {
			t.Errorf("ToNDC(%v,%v) = (%v,%v), want (%v,%v)", tt.x, tt.y, nx, ny, tt.ndcX, tt.ndcY)
		}
		sx, sy := vp.ToScreen(nx, ny)
		if !near(sx, tt.x, 1e-3) || !near(sy, tt.y, 1e-3) {
			t.Errorf("ToScreen(ToNDC(%v,%v)) = (%v,%v)", tt.x, tt.y, sx, sy)
		}
	}
}

func TestViewportAspectAndDrawable(t *testing.T) {
	vp := Viewport{Width: 1280, Height: 720, PixelRatio: 3}
	if a := vp.Aspect(); !near(a, 16.0/9.0, 1e-6) {
		t.Errorf("Aspect() = %v", a)
	}
	if w, h := vp.DrawableSize(2); w != 2560 || h != 1440 {
		t.Errorf("DrawableSize(2) = %dx%d, want 2560x1440", w, h)
	}
	if w, h := vp.DrawableSize(0); w != 3840 || h != 2160 {
		t.Errorf("DrawableSize(0) = %dx%d, want uncapped 3840x2160", w, h)
	}

	empty := Viewport{}
	if empty.Aspect() != 1 {
		t.Error("empty viewport aspect should be 1")
	}
	if x, y := empty.ToNDC(10, 10); x != 0 || y != 0 {
		t.Error("empty viewport ToNDC should be origin")
	}
}

func TestDampingConverges(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(-100, 40)
	if c.RotationY != 0 {
		t.Fatal("drag must only move the target")
	}

	for range 200 {
		c.Update(1.0 / 60)
	}
	if !near(c.RotationY, c.TargetRotationY, 1e-3) || !near(c.RotationX, c.TargetRotationX, 1e-3) {
		t.Errorf("rotation (%v,%v) did not reach target (%v,%v)", c.RotationX, c.RotationY, c.TargetRotationX, c.TargetRotationY)
	}
}

func TestNoDampingSnaps(t *testing.T) {
	c := NewOrbitCamera()
	c.Damping = 0
	c.HandleZoom(1)
	c.Update(0.016)
	if c.Distance != c.TargetDistance {
		t.Errorf("distance = %v, want %v", c.Distance, c.TargetDistance)
	}
}

func TestConstraints(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	if c.TargetRotationX != c.MaxPitch {
		t.Errorf("pitch = %v, want clamp %v", c.TargetRotationX, c.MaxPitch)
	}
	c.HandleDrag(0, -1e6)
	if c.TargetRotationX != c.MinPitch {
		t.Errorf("pitch = %v, want clamp %v", c.TargetRotationX, c.MinPitch)
	}

	for range 100 {
		c.HandleZoom(5)
	}
	if c.TargetDistance != c.MinDistance {
		t.Errorf("distance = %v, want %v", c.TargetDistance, c.MinDistance)
	}
	for range 100 {
		c.HandleZoom(-5)
	}
	if c.TargetDistance != c.MaxDistance {
		t.Errorf("distance = %v, want %v", c.TargetDistance, c.MaxDistance)
	}
}

func TestAutoRotatePausesWhileDragging(t *testing.T) {
	c := NewOrbitCamera()
	c.AutoRotate = true
	c.AutoRotateSpeed = 1

	c.Update(0.5)
	if !near(c.TargetRotationY, 0.5, 1e-6) {
		t.Fatalf("target yaw = %v, want 0.5", c.TargetRotationY)
	}

	c.BeginDrag()
	c.Update(0.5)
	if !near(c.TargetRotationY, 0.5, 1e-6) {
		t.Errorf("auto-rotate advanced during drag: %v", c.TargetRotationY)
	}
	c.EndDrag()
	c.Update(0.5)
	if !near(c.TargetRotationY, 1.0, 1e-6) {
		t.Errorf("target yaw = %v, want 1.0", c.TargetRotationY)
	}
}

func TestFitToBoundsAndReset(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(-26.5, -1, -3.5, 26.5, 4, 3.5)

	if c.CenterX != 0 || c.CenterY != 1.5 || c.CenterZ != 0 {
		t.Errorf("center = (%v,%v,%v)", c.CenterX, c.CenterY, c.CenterZ)
	}
	if c.Distance < 26.5 || c.Distance > c.MaxDistance {
		t.Errorf("distance %v does not frame the terrain", c.Distance)
	}
	fitted := c.Distance

	c.HandleDrag(300, 10)
	c.HandleZoom(3)
	for range 60 {
		c.Update(1.0 / 60)
	}
	c.Reset()
	if c.Distance != fitted || c.RotationY != 0 || c.TargetDistance != fitted {
		t.Errorf("Reset() left distance %v yaw %v", c.Distance, c.RotationY)
	}
}

func TestInvViewProj(t *testing.T) {
	c := NewOrbitCamera()
	vp := Viewport{Width: 800, Height: 600, PixelRatio: 1}

	m := c.ViewProj(vp).Mul(c.InvViewProj(vp))
	for i := range 16 {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		if !near(m[i], want, 1e-3) {
			t.Fatalf("ViewProj × InvViewProj [%d] = %v, want %v", i, m[i], want)
		}
	}
}
