// Package particles animates the ambient points drifting above the terrain.
package particles

import (
	gomath "math"
	"math/rand"
)

// Field is a fixed set of points rising through a box. Points that leave
// the top re-enter at the bottom.
type Field struct {
	Min, Max [3]float32
	Speed    float32 // upward units per second
	Sway     float32 // horizontal sway amplitude

	// Positions holds 3 floats per point, ready for upload.
	Positions []float32

	base  []float32 // resting x, z per point
	phase []float32
	time  float32
}

// NewField scatters count points inside [lo, hi] using seed.
func NewField(count int, lo, hi [3]float32, speed, sway float32, seed int64) *Field {
	rng := rand.New(rand.NewSource(seed))
	f := &Field{
		Min:       lo,
		Max:       hi,
		Speed:     speed,
		Sway:      sway,
		Positions: make([]float32, count*3),
		base:      make([]float32, count*2),
		phase:     make([]float32, count),
	}

	for i := range count {
		x := lo[0] + rng.Float32()*(hi[0]-lo[0])
		y := lo[1] + rng.Float32()*(hi[1]-lo[1])
		z := lo[2] + rng.Float32()*(hi[2]-lo[2])
		f.Positions[i*3], f.Positions[i*3+1], f.Positions[i*3+2] = x, y, z
		f.base[i*2], f.base[i*2+1] = x, z
		f.phase[i] = rng.Float32() * 2 * gomath.Pi
	}
	return f
}

// Count returns the number of points.
func (f *Field) Count() int {
	return len(f.phase)
}

// Update advances the drift by dt seconds.
func (f *Field) Update(dt float32) {
	if dt <= 0 || len(f.phase) == 0 {
		return
	}
	f.time += dt
	height := f.Max[1] - f.Min[1]

	for i := range f.phase {
		y := f.Positions[i*3+1] + f.Speed*dt
		if height > 0 {
			for y > f.Max[1] {
				y -= height
			}
		}
		f.Positions[i*3+1] = y

		angle := float64(f.time + f.phase[i])
		f.Positions[i*3] = f.base[i*2] + f.Sway*float32(gomath.Sin(angle))
		f.Positions[i*3+2] = f.base[i*2+1] + f.Sway*float32(gomath.Cos(angle))
	}
}
