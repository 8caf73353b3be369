// Package viz owns the lifecycle of the contribution visualization: at most
// one scene is live at a time and the previous one is torn down before the
// next is built.
package viz

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Faultbox/contribscape/internal/contrib"
	"github.com/Faultbox/contribscape/internal/engine/camera"
	"github.com/Faultbox/contribscape/internal/engine/input"
	"github.com/Faultbox/contribscape/internal/engine/particles"
	"github.com/Faultbox/contribscape/internal/engine/picking"
	"github.com/Faultbox/contribscape/internal/engine/terrain"
	"github.com/Faultbox/contribscape/internal/engine/text"
	"github.com/Faultbox/contribscape/internal/logger"
	"github.com/Faultbox/contribscape/internal/metrics"
	"github.com/Faultbox/contribscape/pkg/math"
)

// ErrNoRenderer is returned by Replace when no RendererFactory is set.
var ErrNoRenderer = errors.New("no renderer factory")

// Renderer draws one built mesh. It also receives the hover marker.
type Renderer interface {
	picking.HighlightLayer
	SetParticles(positions []float32)
	SetLabels(labels []text.Label)
	Draw(view, proj math.Mat4, eye [3]float32)
	Dispose()
}

// RendererFactory creates the renderer for a freshly built mesh.
type RendererFactory func(mesh *terrain.Mesh) (Renderer, error)

// Config holds the per-scene settings.
type Config struct {
	Terrain     terrain.Params
	MarkerScale float32

	ParticleCount int
	ParticleSpeed float32
	ParticleSway  float32
	Seed          int64

	// Camera adjusts each new scene's camera before it is fitted to the mesh.
	Camera func(c *camera.OrbitCamera)
}

// DefaultConfig returns the settings the viewer ships with.
func DefaultConfig() Config {
	return Config{
		Terrain:       terrain.DefaultParams(),
		MarkerScale:   picking.DefaultMarkerScale,
		ParticleCount: 400,
		ParticleSpeed: 0.4,
		ParticleSway:  0.3,
		Seed:          1,
	}
}

// Deps are the collaborators shared by every scene.
type Deps struct {
	Factory RendererFactory
	Bus     *input.Bus
	Tooltip picking.TooltipPresenter
	Metrics *metrics.Manager
	// Language selects number formatting for stat labels.
	Language language.Tag
}

// Controller replaces, ticks and disposes visualizations. It must only be
// used from the goroutine that owns the rendering context.
type Controller struct {
	cfg     Config
	deps    Deps
	printer *message.Printer
	log     *zap.Logger

	face     font.Face
	viewport camera.Viewport
	active   *instance
}

// NewController creates a controller with no active scene.
func NewController(cfg Config, deps Deps) *Controller {
	if deps.Language == language.Und {
		deps.Language = language.English
	}
	return &Controller{
		cfg:     cfg,
		deps:    deps,
		printer: message.NewPrinter(deps.Language),
		log:     logger.Named("viz"),
	}
}

// Replace disposes the active scene, then builds a new one for grid. On any
// failure the controller is left without a scene and the error is returned.
// stats may be nil.
func (c *Controller) Replace(grid *contrib.Grid, label string, stats *contrib.Stats) error {
	c.disposeActive()

	if c.deps.Factory == nil {
		return ErrNoRenderer
	}
	if err := grid.Validate(); err != nil {
		return fmt.Errorf("validating grid: %w", err)
	}

	start := time.Now()
	mesh, err := terrain.BuildMesh(grid, c.cfg.Terrain)
	if err != nil {
		return fmt.Errorf("building mesh: %w", err)
	}
	c.deps.Metrics.ObserveMeshBuild(time.Since(start))

	renderer, err := c.deps.Factory(mesh)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	id := uuid.New()
	in := &instance{
		id:        id,
		log:       c.log.With(zap.String("scene_id", id.String())),
		label:     label,
		stats:     stats,
		mesh:      mesh,
		renderer:  renderer,
		camera:    c.newCamera(mesh),
		particles: c.newParticles(mesh),
		viewport:  func() camera.Viewport { return c.viewport },
	}

	in.picker = picking.NewPicker(renderer, c.deps.Tooltip)
	in.picker.MarkerScale = c.cfg.MarkerScale
	in.picker.OnHoverChange = func(*contrib.Cell) { c.deps.Metrics.HoverChanged() }
	in.picker.SetTerrain(mesh, grid.Cells())

	renderer.SetLabels(buildLabels(c.face, c.printer, mesh, label, stats))

	n := in.attach(c.deps.Bus)
	c.deps.Metrics.ListenersAttached(n)
	c.deps.Metrics.SceneBuilt()
	c.active = in

	in.log.Info("scene built",
		zap.String("label", label),
		zap.Int("weeks", grid.Weeks()),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("listeners", n),
		zap.Duration("build", time.Since(start)),
	)
	return nil
}

func (c *Controller) newCamera(mesh *terrain.Mesh) *camera.OrbitCamera {
	cam := camera.NewOrbitCamera()
	if c.cfg.Camera != nil {
		c.cfg.Camera(cam)
	}
	b := mesh.Bounds
	cam.FitToBounds(b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
	return cam
}

// newParticles fills a box above the terrain three levels deep.
func (c *Controller) newParticles(mesh *terrain.Mesh) *particles.Field {
	if c.cfg.ParticleCount <= 0 {
		return nil
	}
	b := mesh.Bounds
	lo := [3]float32{b.Min[0], 0, b.Min[2]}
	hi := [3]float32{b.Max[0], b.Max[1] + 3*mesh.CellSize, b.Max[2]}
	return particles.NewField(c.cfg.ParticleCount, lo, hi, c.cfg.ParticleSpeed, c.cfg.ParticleSway, c.cfg.Seed)
}

// Resize records the viewport used to convert pointer events.
func (c *Controller) Resize(vp camera.Viewport) {
	c.viewport = vp
}

// Tick advances and draws the active scene. It reports false when there is
// nothing to draw.
func (c *Controller) Tick(dt float32, vp camera.Viewport) bool {
	c.viewport = vp
	if c.active == nil {
		return false
	}
	if !c.active.tick(dt, vp) {
		return false
	}
	c.deps.Metrics.Frame()
	return true
}

// SetFont sets the face used for labels and rebuilds them on the active
// scene. A nil face removes labels.
func (c *Controller) SetFont(face font.Face) {
	c.face = face
	if in := c.active; in != nil && !in.disposed {
		in.renderer.SetLabels(buildLabels(face, c.printer, in.mesh, in.label, in.stats))
	}
}

// Active reports whether a scene is live.
func (c *Controller) Active() bool {
	return c.active != nil
}

// SceneID returns the active scene's id.
func (c *Controller) SceneID() (uuid.UUID, bool) {
	if c.active == nil {
		return uuid.Nil, false
	}
	return c.active.id, true
}

// Label returns the active scene's label.
func (c *Controller) Label() string {
	if c.active == nil {
		return ""
	}
	return c.active.label
}

// Camera returns the active scene's camera or nil.
func (c *Controller) Camera() *camera.OrbitCamera {
	if c.active == nil {
		return nil
	}
	return c.active.camera
}

// Hovered returns the cell key under the pointer in the active scene.
func (c *Controller) Hovered() (contrib.Key, bool) {
	if c.active == nil {
		return contrib.Key{}, false
	}
	return c.active.picker.Hovered()
}

// Dispose tears down the active scene. Safe to call repeatedly.
func (c *Controller) Dispose() {
	c.disposeActive()
}

func (c *Controller) disposeActive() {
	if c.active == nil {
		return
	}
	in := c.active
	c.active = nil

	n := in.dispose()
	c.deps.Metrics.ListenersDetached(n)
	c.deps.Metrics.SceneDisposed()
}
