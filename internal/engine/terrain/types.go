// Package terrain builds the closed, colored terrain mesh for a contribution grid.
package terrain

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned when build parameters cannot produce a mesh.
var ErrInvalidParams = errors.New("invalid terrain parameters")

// Params controls mesh construction.
type Params struct {
	// CellSize is the world size of one grid cell and the height of one level.
	CellSize float32
	// Supersample subdivides each cell into an S×S vertex sub-grid.
	Supersample int
	// BaseHeight is the floor of the closed volume; it must lie below every surface height.
	BaseHeight float32
	// ColorFloor and ColorRange map a normalized level to the green channel.
	ColorFloor float32
	ColorRange float32
}

// DefaultParams returns the parameters the viewer ships with.
func DefaultParams() Params {
	return Params{
		CellSize:    1,
		Supersample: 4,
		BaseHeight:  -1,
		ColorFloor:  0.3,
		ColorRange:  0.7,
	}
}

// Validate checks that p can build a mesh whose floor sits below minHeight.
func (p Params) Validate(minHeight float32) error {
	if p.CellSize <= 0 {
		return fmt.Errorf("cell size %v must be positive: %w", p.CellSize, ErrInvalidParams)
	}
	if p.Supersample < 1 {
		return fmt.Errorf("supersample %d must be at least 1: %w", p.Supersample, ErrInvalidParams)
	}
	if p.BaseHeight >= minHeight {
		return fmt.Errorf("base height %v must be below surface height %v: %w", p.BaseHeight, minHeight, ErrInvalidParams)
	}
	return nil
}

// BottomColor tints the bottom-center vertex of the floor cap.
var BottomColor = [3]float32{0, 0.12, 0.02}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Mesh is a single indexed triangle mesh held in flat buffers ready for GPU
// upload. Positions, Colors and Normals hold 3 floats per vertex.
//
// Vertex layout: the (Cols×Rows) top grid in row-major order, then one base
// vertex per perimeter vertex, then the bottom-center vertex.
type Mesh struct {
	Positions []float32
	Colors    []float32
	Normals   []float32
	Indices   []uint32

	Cols, Rows     int // top grid vertex dimensions
	TopVertexCount int
	PerimeterCount int
	Perimeter      []uint32 // top grid indices of the outer ring, in skirt order

	// Origin is the world position of the grid corner at week 0, day 0 on the
	// base plane; subtracting it yields grid-local coordinates.
	Origin   [3]float32
	CellSize float32
	Bounds   Bounds
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Position returns vertex i's position.
func (m *Mesh) Position(i uint32) [3]float32 {
	return [3]float32{m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]}
}

// Color returns vertex i's color.
func (m *Mesh) Color(i uint32) [3]float32 {
	return [3]float32{m.Colors[i*3], m.Colors[i*3+1], m.Colors[i*3+2]}
}

// Triangle returns the three corner positions of triangle t.
func (m *Mesh) Triangle(t int) (a, b, c [3]float32) {
	return m.Position(m.Indices[t*3]), m.Position(m.Indices[t*3+1]), m.Position(m.Indices[t*3+2])
}

// BottomCenter returns the index of the floor cap's center vertex.
func (m *Mesh) BottomCenter() uint32 {
	return uint32(m.VertexCount() - 1)
}
