package viz

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/contribscape/internal/contrib"
	"github.com/Faultbox/contribscape/internal/engine/camera"
	"github.com/Faultbox/contribscape/internal/engine/input"
	"github.com/Faultbox/contribscape/internal/engine/particles"
	"github.com/Faultbox/contribscape/internal/engine/picking"
	"github.com/Faultbox/contribscape/internal/engine/terrain"
)

// instance is one live visualization: a mesh, its renderer and the
// listeners that feed it. It is created by Controller.Replace and torn down
// by dispose before the next one exists.
type instance struct {
	id    uuid.UUID
	log   *zap.Logger
	label string
	stats *contrib.Stats

	mesh      *terrain.Mesh
	renderer  Renderer
	picker    *picking.Picker
	camera    *camera.OrbitCamera
	particles *particles.Field

	unsubscribe []func()
	viewport    func() camera.Viewport

	dragging bool
	lastX    int
	lastY    int
	disposed bool
}

// attach subscribes the instance's handlers on bus. Handlers never consume
// events so overlay subscribers registered earlier keep priority.
func (in *instance) attach(bus *input.Bus) int {
	if bus == nil {
		return 0
	}
	sub := func(kind input.EventType, h input.Handler) {
		in.unsubscribe = append(in.unsubscribe, bus.Subscribe(kind, h))
	}

	sub(input.EventMouseMove, in.onMouseMove)
	sub(input.EventMouseDown, in.onMouseDown)
	sub(input.EventMouseUp, in.onMouseUp)
	sub(input.EventMouseWheel, in.onMouseWheel)
	sub(input.EventMouseLeave, in.onMouseLeave)
	return len(in.unsubscribe)
}

func (in *instance) onMouseMove(e input.Event) bool {
	if in.disposed {
		return false
	}
	if in.dragging {
		in.camera.HandleDrag(float32(e.MouseX-in.lastX), float32(e.MouseY-in.lastY))
	}
	in.lastX, in.lastY = e.MouseX, e.MouseY
	in.picker.UpdatePointer(in.viewport().ToNDC(float32(e.MouseX), float32(e.MouseY)))
	return false
}

func (in *instance) onMouseDown(e input.Event) bool {
	if in.disposed || e.Button != input.ButtonLeft {
		return false
	}
	in.dragging = true
	in.lastX, in.lastY = e.MouseX, e.MouseY
	in.camera.BeginDrag()
	return false
}

func (in *instance) onMouseUp(e input.Event) bool {
	if e.Button != input.ButtonLeft || !in.dragging {
		return false
	}
	in.dragging = false
	in.camera.EndDrag()
	return false
}

func (in *instance) onMouseWheel(e input.Event) bool {
	if in.disposed {
		return false
	}
	in.camera.HandleZoom(e.WheelY)
	return false
}

func (in *instance) onMouseLeave(input.Event) bool {
	if in.disposed {
		return false
	}
	in.picker.PointerLeave()
	return false
}

// tick runs one frame: animate, camera, intersection, draw. A disposed
// instance does nothing and reports false.
func (in *instance) tick(dt float32, vp camera.Viewport) bool {
	if in.disposed {
		return false
	}

	if in.particles != nil {
		in.particles.Update(dt)
		in.renderer.SetParticles(in.particles.Positions)
	}

	in.camera.Update(dt)
	view := in.camera.ViewMatrix()
	proj := in.camera.Projection(vp)

	in.picker.Resolve(proj.Mul(view).Inverse(), vp)

	in.renderer.Draw(view, proj, in.camera.Position().Array())
	return true
}

// dispose detaches listeners, clears the hover and releases the renderer.
// It returns the number of listeners removed; a second call returns 0.
func (in *instance) dispose() int {
	if in.disposed {
		return 0
	}
	in.disposed = true

	n := len(in.unsubscribe)
	for _, unsub := range in.unsubscribe {
		unsub()
	}
	in.unsubscribe = nil

	in.picker.SetTerrain(nil, nil)
	in.renderer.Dispose()
	in.log.Debug("scene disposed", zap.Int("listeners", n))
	return n
}
