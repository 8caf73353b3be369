// Package lighting describes the directional light over the terrain.
package lighting

import "math"

// Sun is a directional light given by compass angles.
type Sun struct {
	// Azimuth is the rotation around the Y axis in degrees, 0 facing +Z.
	Azimuth float32 `yaml:"azimuth"`
	// Elevation is the angle above the horizon in degrees (0-90).
	Elevation float32    `yaml:"elevation"`
	Ambient   float32    `yaml:"ambient"`
	Diffuse   [3]float32 `yaml:"diffuse"`
}

// DefaultSun returns a warm light from the upper front-right.
func DefaultSun() Sun {
	return Sun{
		Azimuth:   35,
		Elevation: 55,
		Ambient:   0.35,
		Diffuse:   [3]float32{0.85, 0.85, 0.8},
	}
}

// Direction returns the normalized vector pointing towards the sun.
func (s Sun) Direction() [3]float32 {
	return SunDirection(s.Azimuth, s.Elevation)
}

// SunDirection converts azimuth/elevation angles in degrees to a light
// direction vector. Elevation is clamped to 0-90.
func SunDirection(azimuth, elevation float32) [3]float32 {
	elevation = min(max(elevation, 0), 90)

	lonRad := float64(azimuth) * math.Pi / 180.0
	latRad := float64(elevation) * math.Pi / 180.0

	// Spherical to Cartesian, azimuth around Y, elevation from the horizon
	x := float32(math.Cos(latRad) * math.Sin(lonRad))
	y := float32(math.Sin(latRad))
	z := float32(math.Cos(latRad) * math.Cos(lonRad))

	return [3]float32{x, y, z}
}
