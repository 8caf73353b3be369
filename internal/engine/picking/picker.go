package picking

import (
	gomath "math"
	"time"

	"github.com/Faultbox/contribscape/internal/contrib"
	"github.com/Faultbox/contribscape/internal/engine/camera"
	"github.com/Faultbox/contribscape/internal/engine/terrain"
	"github.com/Faultbox/contribscape/pkg/math"
)

// TooltipPayload describes the hovered cell to the tooltip presenter.
type TooltipPayload struct {
	Date    time.Time
	Weekday string
	Count   int
	Level   int
}

// TooltipPresenter displays a payload at screen position (x, y) in pixels.
type TooltipPresenter interface {
	Show(x, y float32, p TooltipPayload)
	Hide()
}

// Picker resolves the pointer to a cell once per frame.
//
// States: idle (nothing hovered) and hovering a cell. Only the result of
// Resolve moves between them, except PointerLeave which always returns to
// idle. Picker is not safe for concurrent use; it runs on the frame loop.
type Picker struct {
	mesh      *terrain.Mesh
	cells     map[contrib.Key]contrib.Cell
	highlight HighlightLayer
	tooltip   TooltipPresenter

	// MarkerScale sizes the highlight relative to a cell.
	MarkerScale float32
	// OnHoverChange is called whenever the hovered cell changes, including
	// transitions to idle.
	OnHoverChange func(cell *contrib.Cell)

	pointer    [2]float32
	hasPointer bool

	hovered  contrib.Key
	hovering bool
	marker   *Marker
}

// NewPicker creates a picker drawing into highlight and tooltip. Either may be nil.
func NewPicker(highlight HighlightLayer, tooltip TooltipPresenter) *Picker {
	return &Picker{
		highlight:   highlight,
		tooltip:     tooltip,
		MarkerScale: DefaultMarkerScale,
	}
}

// SetTerrain sets the mesh and cell table to pick against. Passing a nil
// mesh disables picking and clears the current hover.
func (p *Picker) SetTerrain(mesh *terrain.Mesh, cells map[contrib.Key]contrib.Cell) {
	p.mesh = mesh
	p.cells = cells
	if mesh == nil {
		p.clear()
	}
}

// UpdatePointer records the latest pointer position in normalized device
// coordinates. Nothing is computed until Resolve.
func (p *Picker) UpdatePointer(ndcX, ndcY float32) {
	p.pointer = [2]float32{ndcX, ndcY}
	p.hasPointer = true
}

// PointerLeave forgets the pointer and clears the hover immediately.
func (p *Picker) PointerLeave() {
	p.hasPointer = false
	p.clear()
}

// Resolve casts a ray through the recorded pointer and updates the hover
// state. It does nothing without a mesh or a recorded pointer.
func (p *Picker) Resolve(invViewProj math.Mat4, vp camera.Viewport) {
	if p.mesh == nil || !p.hasPointer {
		return
	}

	cell, ok := p.pick(NDCToRay(p.pointer[0], p.pointer[1], invViewProj))
	if !ok {
		p.clear()
		return
	}
	if p.hovering && p.hovered == cell.Key() {
		return
	}

	p.hovered = cell.Key()
	p.hovering = true
	p.marker = NewMarker(p.mesh, cell, p.MarkerScale)
	if p.highlight != nil {
		p.highlight.Replace(p.marker)
	}
	if p.tooltip != nil {
		x, y := vp.ToScreen(p.pointer[0], p.pointer[1])
		p.tooltip.Show(x, y, TooltipPayload{
			Date:    cell.Date,
			Weekday: cell.Weekday,
			Count:   cell.Count,
			Level:   cell.Level,
		})
	}
	if p.OnHoverChange != nil {
		p.OnHoverChange(&cell)
	}
}

// Hovered returns the hovered cell key, if any.
func (p *Picker) Hovered() (contrib.Key, bool) {
	return p.hovered, p.hovering
}

// Marker returns the current highlight marker or nil.
func (p *Picker) Marker() *Marker {
	return p.marker
}

// pick returns the cell under ray r. Hits on the skirt or floor that fall
// outside the grid are misses.
func (p *Picker) pick(r Ray) (contrib.Cell, bool) {
	hit, ok := IntersectMesh(r, p.mesh)
	if !ok {
		return contrib.Cell{}, false
	}

	localX := hit.Point[0] - p.mesh.Origin[0]
	localZ := hit.Point[2] - p.mesh.Origin[2]
	key := contrib.Key{
		Week: int(gomath.Floor(float64(localX / p.mesh.CellSize))),
		Day:  int(gomath.Floor(float64(localZ / p.mesh.CellSize))),
	}
	cell, ok := p.cells[key]
	return cell, ok
}

func (p *Picker) clear() {
	if !p.hovering && p.marker == nil {
		return
	}
	p.hovering = false
	p.hovered = contrib.Key{}
	p.marker = nil
	if p.highlight != nil {
		p.highlight.Clear()
	}
	if p.tooltip != nil {
		p.tooltip.Hide()
	}
	if p.OnHoverChange != nil {
		p.OnHoverChange(nil)
	}
}
