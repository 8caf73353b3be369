// Package camera provides the orbit camera and viewport context.
package camera

import (
	gomath "math"

	"github.com/Faultbox/contribscape/pkg/math"
)

// OrbitCamera orbits around a center point. Input moves target angles and
// distance; Update eases the current values toward them.
type OrbitCamera struct {
	// Center point to orbit around
	CenterX, CenterY, CenterZ float32

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Targets for damping
	TargetDistance  float32
	TargetRotationX float32
	TargetRotationY float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Damping is the easing rate per second; 0 snaps immediately.
	Damping float32

	AutoRotate      bool
	AutoRotateSpeed float32 // radians per second

	// Projection
	FOV       float32 // vertical, radians
	Near, Far float32

	dragging bool
	home     [6]float32
	hasHome  bool
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{
		Distance:        60.0,
		RotationX:       0.6,
		RotationY:       0.0,
		MinDistance:     5.0,
		MaxDistance:     300.0,
		MinPitch:        0.05,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		Damping:         8.0,
		AutoRotateSpeed: 0.1,
		FOV:             float32(gomath.Pi / 4),
		Near:            0.1,
		Far:             1000.0,
	}
	c.syncTargets()
	return c
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return math.Vec3{
		X: c.CenterX + x,
		Y: c.CenterY + y,
		Z: c.CenterZ + z,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	pos := c.Position()
	center := math.Vec3{X: c.CenterX, Y: c.CenterY, Z: c.CenterZ}
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(pos, center, up)
}

// Projection returns the perspective projection for vp.
func (c *OrbitCamera) Projection(vp Viewport) math.Mat4 {
	return math.Perspective(c.FOV, vp.Aspect(), c.Near, c.Far)
}

// ViewProj returns projection × view.
func (c *OrbitCamera) ViewProj(vp Viewport) math.Mat4 {
	return c.Projection(vp).Mul(c.ViewMatrix())
}

// InvViewProj returns the inverse view-projection used to unproject the pointer.
func (c *OrbitCamera) InvViewProj(vp Viewport) math.Mat4 {
	return c.ViewProj(vp).Inverse()
}

// BeginDrag and EndDrag bracket a pointer drag; auto-rotate pauses in between.
func (c *OrbitCamera) BeginDrag() { c.dragging = true }

// EndDrag ends a drag started with BeginDrag.
func (c *OrbitCamera) EndDrag() { c.dragging = false }

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.TargetRotationY -= deltaX * c.DragSensitivity
	c.TargetRotationX += deltaY * c.DragSensitivity
	c.TargetRotationX = clamp(c.TargetRotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.TargetDistance -= delta * c.TargetDistance * c.ZoomSensitivity
	c.TargetDistance = clamp(c.TargetDistance, c.MinDistance, c.MaxDistance)
}

// Update advances auto-rotation and eases toward the targets.
func (c *OrbitCamera) Update(dt float32) {
	if dt <= 0 {
		return
	}
	if c.AutoRotate && !c.dragging {
		c.TargetRotationY += c.AutoRotateSpeed * dt
	}

	k := float32(1)
	if c.Damping > 0 {
		k = 1 - float32(gomath.Exp(float64(-c.Damping*dt)))
	}
	c.RotationX += (c.TargetRotationX - c.RotationX) * k
	c.RotationY += (c.TargetRotationY - c.RotationY) * k
	c.Distance += (c.TargetDistance - c.Distance) * k
}

// SetCenter sets the camera's center point.
func (c *OrbitCamera) SetCenter(x, y, z float32) {
	c.CenterX = x
	c.CenterY = y
	c.CenterZ = z
}

// FitToBounds centers the camera on the box and backs off until its
// bounding sphere fits the vertical field of view. The box becomes the
// home position restored by Reset.
func (c *OrbitCamera) FitToBounds(minX, minY, minZ, maxX, maxY, maxZ float32) {
	c.home = [6]float32{minX, minY, minZ, maxX, maxY, maxZ}
	c.hasHome = true

	c.CenterX = (minX + maxX) / 2
	c.CenterY = (minY + maxY) / 2
	c.CenterZ = (minZ + maxZ) / 2

	dx, dy, dz := maxX-minX, maxY-minY, maxZ-minZ
	radius := float32(gomath.Sqrt(float64(dx*dx+dy*dy+dz*dz))) / 2
	dist := radius / float32(gomath.Sin(float64(c.FOV)/2))

	c.Distance = clamp(dist, c.MinDistance, c.MaxDistance)
	c.RotationX = 0.6 // Look down at ~35 degrees
	c.RotationY = 0.0
	c.syncTargets()
}

// Reset returns to the last fitted bounds.
func (c *OrbitCamera) Reset() {
	if !c.hasHome {
		return
	}
	h := c.home
	c.FitToBounds(h[0], h[1], h[2], h[3], h[4], h[5])
}

func (c *OrbitCamera) syncTargets() {
	c.TargetDistance = c.Distance
	c.TargetRotationX = c.RotationX
	c.TargetRotationY = c.RotationY
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}
