// Package app wires the window, renderers, overlay and visualization into
// the viewer's main loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/text/language"

	"github.com/Faultbox/contribscape/internal/config"
	"github.com/Faultbox/contribscape/internal/engine/camera"
	"github.com/Faultbox/contribscape/internal/engine/input"
	"github.com/Faultbox/contribscape/internal/engine/renderer"
	"github.com/Faultbox/contribscape/internal/engine/scene"
	"github.com/Faultbox/contribscape/internal/engine/snapshot"
	"github.com/Faultbox/contribscape/internal/engine/terrain"
	"github.com/Faultbox/contribscape/internal/engine/text"
	"github.com/Faultbox/contribscape/internal/engine/ui2d"
	"github.com/Faultbox/contribscape/internal/engine/ui2d/glrender"
	"github.com/Faultbox/contribscape/internal/engine/window"
	"github.com/Faultbox/contribscape/internal/feed"
	"github.com/Faultbox/contribscape/internal/logger"
	"github.com/Faultbox/contribscape/internal/metrics"
	"github.com/Faultbox/contribscape/internal/ui"
	"github.com/Faultbox/contribscape/internal/viz"
)

const (
	windowTitle     = "Contribscape"
	overlayFontSize = 15
)

// App is the viewer instance.
type App struct {
	cfg *config.Config

	window   *window.Window
	renderer *renderer.Renderer
	overlay  *glrender.Renderer
	ui       *ui2d.Context
	bus      *input.Bus

	tooltip *ui.Tooltip
	form    *ui.UsernameForm
	hud     *ui.HUD

	viz     *viz.Controller
	metrics *metrics.Manager
	source  *feed.Source
	capture *snapshot.Capture

	ctx    context.Context
	cancel context.CancelFunc
	data   *feed.Loader[feed.Dataset]
	fonts  *feed.Loader[font.Face]
	paths  *feed.Loader[string]

	viewport camera.Viewport
	events   []input.Event
	running  bool
	snapshot bool
}

// New creates the window and every subsystem. On failure everything
// created so far is released.
func New(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.data = feed.NewLoader[feed.Dataset](a.ctx)
	a.fonts = feed.NewLoader[font.Face](a.ctx)
	a.paths = feed.NewLoader[string](a.ctx)

	var err error
	a.window, err = window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	a.viewport = a.window.Viewport()

	// Renderer must come after the window: it initializes OpenGL
	a.renderer, err = renderer.New(renderer.Config{
		ClearColor:    scene.ClearColor,
		MaxPixelRatio: cfg.Graphics.MaxPixelRatio,
	}, a.viewport)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.overlay, err = glrender.New(a.viewport.Width, a.viewport.Height, text.DefaultFace(overlayFontSize))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create overlay: %w", err)
	}
	a.ui = ui2d.NewContext(a.overlay)

	a.metrics = metrics.NewManager(metrics.WithMetricsEnabled(cfg.Metrics.Enabled))
	a.source = feed.NewSource(cfg.Source, cfg.Source.ResolvedYear(time.Now()), a.metrics)
	a.capture = snapshot.New(cfg.Graphics.SnapshotDir, "contribscape")

	a.tooltip = ui.NewTooltip(language.English)
	a.form = ui.NewUsernameForm(cfg.Source.Username, a.submit)
	a.hud = ui.NewHUD(cfg.Camera.AutoRotate, cfg.Graphics.ShowFPS)

	// Overlay handlers subscribe before any scene so they see events first
	a.bus = input.NewBus()
	a.subscribe()

	a.viz = viz.NewController(VizConfig(cfg, a.hud), viz.Deps{
		Factory:  a.newScene,
		Bus:      a.bus,
		Tooltip:  a.tooltip,
		Metrics:  a.metrics,
		Language: language.English,
	})
	a.viz.Resize(a.viewport)

	if cfg.Labels.Enabled {
		a.loadFont(cfg.Labels.FontPath, cfg.Labels.FontSize)
	}
	return a, nil
}

// VizConfig derives the per-scene settings. The camera follows the HUD's
// auto-rotate toggle.
func VizConfig(cfg *config.Config, hud *ui.HUD) viz.Config {
	cam := cfg.Camera
	fov := cfg.Graphics.FOV
	return viz.Config{
		Terrain:       cfg.Terrain.Params(),
		MarkerScale:   cfg.Terrain.HighlightScale,
		ParticleCount: cfg.Particles.Count,
		ParticleSpeed: cfg.Particles.Speed,
		ParticleSway:  cfg.Particles.Sway,
		Seed:          cfg.Source.MockSeed,
		Camera: func(c *camera.OrbitCamera) {
			c.MinDistance = cam.MinDistance
			c.MaxDistance = cam.MaxDistance
			c.DragSensitivity = cam.DragSensitivity
			c.ZoomSensitivity = cam.ZoomSensitivity
			c.Damping = cam.Damping
			c.AutoRotateSpeed = cam.AutoRotateSpeed
			c.AutoRotate = cam.AutoRotate
			if hud != nil {
				c.AutoRotate = hud.AutoRotate
			}
			c.FOV = fov * math.Pi / 180
		},
	}
}

func (a *App) newScene(mesh *terrain.Mesh) (viz.Renderer, error) {
	return scene.New(scene.Config{
		ParticleCapacity: a.cfg.Particles.Count,
		Sun:              a.cfg.Light,
		HighlightColor:   scene.HighlightColor,
		ShadowResolution: a.cfg.Graphics.ShadowResolution,
		ShadowStrength:   a.cfg.Graphics.ShadowStrength,
	}, mesh)
}

// subscribe registers the overlay and application key handlers.
func (a *App) subscribe() {
	overPanel := func(e input.Event) bool {
		return a.ui.Contains(float32(e.MouseX), float32(e.MouseY))
	}

	a.bus.Subscribe(input.EventMouseMove, func(e input.Event) bool {
		a.ui.Input().Feed(e)
		return false
	})
	a.bus.Subscribe(input.EventMouseDown, func(e input.Event) bool {
		a.ui.Input().Feed(e)
		if overPanel(e) {
			return true
		}
		// Clicking the scene leaves the form
		a.form.Blur()
		return false
	})
	a.bus.Subscribe(input.EventMouseUp, func(e input.Event) bool {
		a.ui.Input().Feed(e)
		return false
	})
	a.bus.Subscribe(input.EventMouseWheel, func(input.Event) bool {
		x, y := a.ui.Input().MouseX, a.ui.Input().MouseY
		return a.ui.Contains(x, y)
	})

	a.bus.Subscribe(input.EventTextInput, a.form.HandleEvent)
	a.bus.Subscribe(input.EventKeyDown, a.form.HandleEvent)
	a.bus.Subscribe(input.EventKeyUp, a.form.HandleEvent)
	a.bus.Subscribe(input.EventKeyDown, a.onKey)

	a.bus.Subscribe(input.EventWindowResize, func(input.Event) bool {
		a.resize(a.window.Viewport())
		return true
	})
	a.bus.Subscribe(input.EventQuit, func(input.Event) bool {
		a.running = false
		return true
	})
}

func (a *App) onKey(e input.Event) bool {
	switch {
	case e.Key == input.KeyEscape:
		a.running = false
	case e.Key == input.KeyTab:
		a.form.Focus()
	case e.Key == input.KeyR:
		if cam := a.viz.Camera(); cam != nil {
			cam.Reset()
		}
	case e.Key == input.KeyF12:
		a.snapshot = true
	case e.Key == input.KeyO && e.Ctrl:
		a.openFile()
	default:
		return false
	}
	return true
}

// resize hands the new viewport to everything sized by it.
func (a *App) resize(vp camera.Viewport) {
	a.viewport = vp
	a.renderer.Resize(vp)
	a.overlay.Resize(vp.Width, vp.Height)
	a.viz.Resize(vp)
}

// submit starts a fetch for username; the form stays in its loading state
// until the result is shown.
func (a *App) submit(username string) {
	logger.Info("loading contributions", zap.String("user", username))
	a.data.Go(func(ctx context.Context) feed.Dataset {
		return a.source.FromUser(ctx, username)
	})
}

// openFile asks for a saved payload off the frame loop; the chosen path
// is picked up by drain.
func (a *App) openFile() {
	if a.paths.Pending() {
		return
	}
	a.paths.Go(func(context.Context) string {
		path, err := dialog.File().
			Filter("Contributions JSON", "json").
			Filter("All Files", "*").
			Title("Open contributions payload").
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				logger.Warn("file dialog failed", zap.Error(err))
			}
			return ""
		}
		return path
	})
}

func (a *App) loadFont(path string, size float64) {
	a.fonts.Go(func(context.Context) font.Face {
		if path != "" {
			face, err := text.LoadFace(path, size)
			if err == nil {
				return face
			}
			logger.Warn("label font unavailable, using built-in face", zap.String("path", path), zap.Error(err))
		}
		return text.DefaultFace(size)
	})
}

// show replaces the visualization with d.
func (a *App) show(d feed.Dataset) {
	if err := a.viz.Replace(d.Grid, d.Label, d.Stats); err != nil {
		logger.Error("failed to build visualization", zap.Stringer("dataset", d), zap.Error(err))
		a.hud.Label = ""
		a.window.SetTitle(windowTitle)
		return
	}
	a.hud.Label = d.Label
	if d.Fallback() {
		a.hud.Label += " (sample)"
	}
	a.window.SetTitle(windowTitle + " - " + d.Label)
}

// drain applies finished background work on the frame loop.
func (a *App) drain() {
	if d, ok := a.data.Poll(); ok {
		a.show(d)
		if a.form.Loading() {
			a.form.Done(formError(d.Err))
		}
	}
	if face, ok := a.fonts.Poll(); ok {
		a.viz.SetFont(face)
	}
	if path, ok := a.paths.Poll(); ok && path != "" {
		a.data.Go(func(context.Context) feed.Dataset {
			return a.source.FromFile(path)
		})
	}
}

func formError(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(feed.UserMessage(err))
}

// Run shows the startup dataset and runs the frame loop until quit.
func (a *App) Run() error {
	a.start()
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	logger.Info("starting main loop")
	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Input
		var quit bool
		a.events, quit = window.PollEvents(a.events[:0])
		a.bus.DispatchAll(a.events)
		if quit || !a.running {
			break
		}

		// 2. Background results
		a.drain()
		a.form.Update(dt)
		a.hud.Update(dt)

		// 3. Scene
		a.renderer.Begin()
		a.viz.Tick(dt, a.viewport)
		if a.snapshot {
			a.snapshot = false
			a.saveSnapshot()
		}
		a.renderer.End()

		// 4. Overlay
		a.drawOverlay()

		// 5. Present
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= 5*time.Second {
			logger.Debug("fps", zap.Int("frames", frameCount), zap.Float32("fps", a.hud.FPS()))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

// start picks the first dataset. Fetches go through the form so it shows
// the loading state.
func (a *App) start() {
	src := a.cfg.Source
	if src.GridFile == "" && !src.Mock {
		if src.Username != "" {
			a.form.SetValue(src.Username)
			a.form.Submit()
		} else {
			a.form.Focus()
		}
		return
	}
	if d, ok := a.source.Startup(a.ctx, src); ok {
		a.show(d)
	}
}

func (a *App) drawOverlay() {
	a.ui.Begin()
	a.form.Draw(a.ui)
	if a.hud.Draw(a.ui) {
		if cam := a.viz.Camera(); cam != nil {
			cam.AutoRotate = a.hud.AutoRotate
		}
	}
	if a.tooltip.Visible() {
		a.tooltip.Draw(a.ui)
	}
	a.ui.End()
}

func (a *App) saveSnapshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.capture.SavePixels(pixels, w, h, a.viz.Label())
	if err != nil {
		logger.Error("snapshot failed", zap.Error(err))
		a.hud.SetStatus("Snapshot failed")
		return
	}
	logger.Info("snapshot saved", zap.String("path", path))
	a.hud.SetStatus("Saved " + path)
}

// Close tears down in reverse order of construction.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.cancel != nil {
		a.cancel()
	}
	a.data.Close()
	a.fonts.Close()
	// paths is not waited for: an open native dialog ignores cancellation

	if a.viz != nil {
		a.viz.Dispose()
	}
	if a.metrics != nil && a.cfg.Metrics.SummaryOnExit {
		logger.Info("metrics", zap.String("summary", a.metrics.Summary()))
	}
	if a.overlay != nil {
		a.overlay.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
