// Package renderer owns the OpenGL context state for a frame: the scene is
// drawn into an offscreen target capped at a maximum pixel ratio, then
// scaled onto the window before the overlay is drawn.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/contribscape/internal/engine/camera"
	"github.com/Faultbox/contribscape/internal/engine/framebuffer"
	"github.com/Faultbox/contribscape/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	ClearColor    [4]float32
	MaxPixelRatio float32
}

// Renderer handles frame setup and presentation.
type Renderer struct {
	config Config
	target *framebuffer.Framebuffer

	// Window drawable size in device pixels
	windowWidth  int32
	windowHeight int32
}

// New initializes OpenGL and creates the scene target for vp.
// Must be called after the OpenGL context is created.
func New(cfg Config, vp camera.Viewport) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	r := &Renderer{config: cfg}
	w, h := vp.DrawableSize(cfg.MaxPixelRatio)
	target, err := framebuffer.New(int32(w), int32(h))
	if err != nil {
		return nil, fmt.Errorf("failed to create scene target: %w", err)
	}
	r.target = target
	r.Resize(vp)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	return r, nil
}

// Resize follows the window's new viewport.
func (r *Renderer) Resize(vp camera.Viewport) {
	dw, dh := vp.DrawableSize(0)
	r.windowWidth, r.windowHeight = int32(dw), int32(dh)

	w, h := vp.DrawableSize(r.config.MaxPixelRatio)
	r.target.Resize(int32(w), int32(h))

	logger.Debug("renderer resized",
		zap.Int("width", vp.Width),
		zap.Int("height", vp.Height),
		zap.Int("target_width", w),
		zap.Int("target_height", h),
	)
}

// Begin binds the scene target and clears it.
func (r *Renderer) Begin() {
	r.target.Bind()
	c := r.config.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End presents the scene target on the window framebuffer, ready for the overlay.
func (r *Renderer) End() {
	r.target.BlitToDefault(r.windowWidth, r.windowHeight)
}

// ReadPixels returns the last scene frame as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	w, h := r.target.Size()
	return r.target.ReadPixels(), int(w), int(h)
}

// Close releases the scene target.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.target != nil {
		r.target.Destroy()
		r.target = nil
	}
}
