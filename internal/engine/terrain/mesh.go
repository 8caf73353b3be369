package terrain

import (
	"fmt"

	"github.com/Faultbox/contribscape/internal/contrib"
)

// BuildMesh creates the closed terrain mesh for grid.
//
// The top surface is a (W·S+1)×(H·S+1) vertex grid spanning
// x ∈ [-W·cs/2, W·cs/2], z ∈ [-H·cs/2, H·cs/2]. Each vertex is a bilinear blend
// of up to four coarse cells. The top perimeter is extruded down to
// BaseHeight as a skirt and the floor is closed with a fan.
func BuildMesh(grid *contrib.Grid, p Params) (*Mesh, error) {
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("building terrain: %w", err)
	}

	weeks, days := grid.Weeks(), grid.Days()
	heights, greens, minHeight := coarseField(grid, p)
	if err := p.Validate(minHeight); err != nil {
		return nil, err
	}

	s := p.Supersample
	cols := weeks*s + 1
	rows := days*s + 1
	top := cols * rows
	perimeter := 2*(cols+rows) - 4
	total := top + perimeter + 1

	m := &Mesh{
		Positions:      make([]float32, 0, total*3),
		Colors:         make([]float32, 0, total*3),
		Indices:        make([]uint32, 0, ((cols-1)*(rows-1)*2+perimeter*3)*3),
		Cols:           cols,
		Rows:           rows,
		TopVertexCount: top,
		PerimeterCount: perimeter,
		CellSize:       p.CellSize,
		Bounds: Bounds{
			Min: [3]float32{1e30, 1e30, 1e30},
			Max: [3]float32{-1e30, -1e30, -1e30},
		},
	}

	halfW := float32(weeks) * p.CellSize / 2
	halfH := float32(days) * p.CellSize / 2
	step := p.CellSize / float32(s)
	m.Origin = [3]float32{-halfW, 0, -halfH}

	// Top surface
	for j := range rows {
		for i := range cols {
			h, g := sample(heights, greens, i, j, s)
			m.addVertex([3]float32{-halfW + float32(i)*step, h, -halfH + float32(j)*step}, [3]float32{0, g, 0})
		}
	}

	for j := range rows - 1 {
		for i := range cols - 1 {
			a := uint32(j*cols + i)         // top-left
			b := uint32((j+1)*cols + i)     // bottom-left
			c := uint32((j+1)*cols + i + 1) // bottom-right
			d := uint32(j*cols + i + 1)     // top-right
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}

	// Skirt
	m.Perimeter = perimeterIndices(cols, rows)
	baseStart := uint32(m.VertexCount())
	for _, idx := range m.Perimeter {
		pos := m.Position(idx)
		col := m.Color(idx)
		m.addVertex(
			[3]float32{pos[0], p.BaseHeight, pos[2]},
			[3]float32{col[0] * 0.5, col[1] * 0.5, col[2] * 0.5},
		)
	}

	n := uint32(len(m.Perimeter))
	for k := range n {
		next := (k + 1) % n
		t0, t1 := m.Perimeter[k], m.Perimeter[next]
		b0, b1 := baseStart+k, baseStart+next
		m.Indices = append(m.Indices, t0, t1, b0, t1, b1, b0)
	}

	// Floor cap
	center := uint32(m.VertexCount())
	m.addVertex([3]float32{0, p.BaseHeight, 0}, BottomColor)
	for k := range n {
		next := (k + 1) % n
		m.Indices = append(m.Indices, center, baseStart+k, baseStart+next)
	}

	m.Normals = ComputeNormals(m.Positions, m.Indices)
	return m, nil
}

// coarseField computes per-cell heights and green intensities. The green
// channel is normalized by the maximum level of the same week, floored at 1.
func coarseField(grid *contrib.Grid, p Params) (heights, greens [][]float32, minHeight float32) {
	weeks, days := grid.Weeks(), grid.Days()
	heights = make([][]float32, weeks)
	greens = make([][]float32, weeks)
	minHeight = float32(1e30)

	for w := range weeks {
		heights[w] = make([]float32, days)
		greens[w] = make([]float32, days)
		denom := float32(max(1, grid.MaxLevelInWeek(w)))
		for d := range days {
			lvl := float32(grid.Level(w, d))
			heights[w][d] = lvl * p.CellSize
			greens[w][d] = p.ColorFloor + (lvl/denom)*p.ColorRange
			minHeight = min(minHeight, heights[w][d])
		}
	}
	return heights, greens, minHeight
}

// sample blends height and green at fine vertex (i, j). The owning cell is
// clamped to the last valid index; neighbors contribute only when the vertex
// lies strictly inside the cell along that axis.
func sample(heights, greens [][]float32, i, j, s int) (float32, float32) {
	weeks, days := len(heights), len(heights[0])

	cx := min(i/s, weeks-1)
	cy := min(j/s, days-1)
	fx := float32(i%s) / float32(s)
	fy := float32(j%s) / float32(s)
	nx := min(cx+1, weeks-1)
	ny := min(cy+1, days-1)

	w := (1 - fx) * (1 - fy)
	sumW := w
	h := w * heights[cx][cy]
	g := w * greens[cx][cy]

	if fx > 0 {
		w = fx * (1 - fy)
		sumW += w
		h += w * heights[nx][cy]
		g += w * greens[nx][cy]
	}
	if fy > 0 {
		w = (1 - fx) * fy
		sumW += w
		h += w * heights[cx][ny]
		g += w * greens[cx][ny]
	}
	if fx > 0 && fy > 0 {
		w = fx * fy
		sumW += w
		h += w * heights[nx][ny]
		g += w * greens[nx][ny]
	}

	return h / sumW, g / sumW
}

// perimeterIndices walks the outer ring of a cols×rows grid: top edge left to
// right, right edge downward, bottom edge right to left, left edge upward.
// Corners appear once.
func perimeterIndices(cols, rows int) []uint32 {
	ring := make([]uint32, 0, 2*(cols+rows)-4)
	idx := func(i, j int) uint32 { return uint32(j*cols + i) }

	for i := 0; i < cols; i++ {
		ring = append(ring, idx(i, 0))
	}
	for j := 1; j < rows; j++ {
		ring = append(ring, idx(cols-1, j))
	}
	for i := cols - 2; i >= 0; i-- {
		ring = append(ring, idx(i, rows-1))
	}
	for j := rows - 2; j >= 1; j-- {
		ring = append(ring, idx(0, j))
	}
	return ring
}

func (m *Mesh) addVertex(pos, color [3]float32) {
	m.Positions = append(m.Positions, pos[0], pos[1], pos[2])
	m.Colors = append(m.Colors, color[0], color[1], color[2])
	updateBounds(&m.Bounds, pos)
}

func updateBounds(b *Bounds, p [3]float32) {
	for k := range 3 {
		b.Min[k] = min(b.Min[k], p[k])
		b.Max[k] = max(b.Max[k], p[k])
	}
}
