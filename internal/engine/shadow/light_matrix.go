package shadow

import (
	"github.com/Faultbox/contribscape/internal/engine/terrain"
	"github.com/Faultbox/contribscape/pkg/math"
)

// Center returns the midpoint of b.
func Center(b terrain.Bounds) math.Vec3 {
	return math.Vec3{
		X: (b.Min[0] + b.Max[0]) / 2,
		Y: (b.Min[1] + b.Max[1]) / 2,
		Z: (b.Min[2] + b.Max[2]) / 2,
	}
}

// Radius returns the half-diagonal of b.
func Radius(b terrain.Bounds) float32 {
	return math.Vec3{
		X: b.Max[0] - b.Min[0],
		Y: b.Max[1] - b.Min[1],
		Z: b.Max[2] - b.Min[2],
	}.Length() / 2
}

// LightMatrix returns the view-projection of a directional light that
// covers all of b. lightDir points towards the light and must be
// normalized.
func LightMatrix(lightDir [3]float32, b terrain.Bounds) math.Mat4 {
	center := Center(b)
	radius := max(Radius(b), 1e-3)

	// Far enough back that the whole box is in front of the near plane
	distance := radius * 2
	eye := center.Add(math.V3(lightDir).Scale(distance))

	up := math.Vec3{Y: 1}
	if lightDir[1] > 0.99 || lightDir[1] < -0.99 {
		up = math.Vec3{Z: 1}
	}
	view := math.LookAt(eye, center, up)

	half := radius * 1.1
	proj := math.Ortho(-half, half, -half, half, 0.1, distance+half)
	return proj.Mul(view)
}
