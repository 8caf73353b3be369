package picking

import (
	"github.com/Faultbox/contribscape/internal/contrib"
	"github.com/Faultbox/contribscape/internal/engine/terrain"
)

// MarkerVertexCount is the number of vertices in a marker wireframe (12 edges × 2).
const MarkerVertexCount = 24

// DefaultMarkerScale sizes the marker relative to one cell.
const DefaultMarkerScale = 1.05

// Marker is the wireframe box drawn over the hovered cell.
type Marker struct {
	Cell     contrib.Key
	Center   [3]float32
	Size     float32
	Vertices []float32 // line list, 3 floats per vertex
}

// HighlightLayer owns the GPU side of the marker. Replace discards any
// previous marker before showing m.
type HighlightLayer interface {
	Replace(m *Marker)
	Clear()
}

// NewMarker builds a cube of side scale·cellSize centered on the cell's
// top surface in world space.
func NewMarker(mesh *terrain.Mesh, cell contrib.Cell, scale float32) *Marker {
	cs := mesh.CellSize
	center := [3]float32{
		mesh.Origin[0] + (float32(cell.Week)+0.5)*cs,
		mesh.Origin[1] + float32(cell.Level)*cs,
		mesh.Origin[2] + (float32(cell.Day)+0.5)*cs,
	}
	half := cs * scale / 2

	return &Marker{
		Cell:   cell.Key(),
		Center: center,
		Size:   cs * scale,
		Vertices: WireframeBox(
			center[0]-half, center[1]-half, center[2]-half,
			center[0]+half, center[1]+half, center[2]+half,
		),
	}
}

// WireframeBox creates line vertices for a box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func WireframeBox(minX, minY, minZ, maxX, maxY, maxZ float32) []float32 {
	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}
