// Package scene renders one contribution terrain with its hover marker,
// ambient particles and labels.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/contribscape/internal/engine/lighting"
	"github.com/Faultbox/contribscape/internal/engine/picking"
	"github.com/Faultbox/contribscape/internal/engine/shadow"
	"github.com/Faultbox/contribscape/internal/engine/terrain"
	"github.com/Faultbox/contribscape/internal/engine/text"
	"github.com/Faultbox/contribscape/internal/logger"
	"github.com/Faultbox/contribscape/pkg/math"
)

// ClearColor is the background behind the terrain.
var ClearColor = [4]float32{0.03, 0.05, 0.06, 1}

// Fog fades fragments between Near and Far toward Color.
type Fog struct {
	Color     [3]float32
	Near, Far float32
}

// Config contains scene configuration options.
type Config struct {
	ParticleCapacity int
	Sun              lighting.Sun
	HighlightColor   [4]float32

	// ShadowResolution is the shadow map edge in texels, 0 disables shadows.
	ShadowResolution int32
	ShadowStrength   float32
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		ParticleCapacity: 400,
		Sun:              lighting.DefaultSun(),
		HighlightColor:   HighlightColor,
		ShadowResolution: shadow.DefaultResolution,
		ShadowStrength:   0.55,
	}
}

// Scene owns every GPU resource of one visualization. It implements
// picking.HighlightLayer through its line renderer.
type Scene struct {
	terrainRenderer *TerrainRenderer
	lineRenderer    *LineRenderer
	pointRenderer   *PointRenderer
	labelRenderer   *LabelRenderer
	shadows         *Shadows

	Sun lighting.Sun
	Fog Fog

	disposed bool
}

var _ picking.HighlightLayer = (*Scene)(nil)

// New uploads mesh and creates the renderers. On failure everything created
// so far is released.
func New(cfg Config, mesh *terrain.Mesh) (*Scene, error) {
	s := &Scene{Sun: cfg.Sun, Fog: fogFor(mesh.Bounds)}

	var err error
	s.terrainRenderer, err = NewTerrainRenderer()
	if err != nil {
		s.Dispose()
		return nil, fmt.Errorf("creating terrain renderer: %w", err)
	}
	if err := s.terrainRenderer.LoadMesh(mesh); err != nil {
		s.Dispose()
		return nil, fmt.Errorf("loading terrain: %w", err)
	}

	if cfg.ShadowResolution > 0 {
		sm, err := shadow.NewMap(cfg.ShadowResolution)
		if err != nil {
			// Shadows are cosmetic
			logger.Warn("shadows disabled", zap.Error(err))
		} else {
			s.shadows = &Shadows{
				Map:           sm,
				LightViewProj: shadow.LightMatrix(cfg.Sun.Direction(), mesh.Bounds),
				Strength:      cfg.ShadowStrength,
			}
		}
	}

	s.lineRenderer, err = NewLineRenderer()
	if err != nil {
		s.Dispose()
		return nil, fmt.Errorf("creating line renderer: %w", err)
	}
	s.lineRenderer.Color = cfg.HighlightColor

	s.pointRenderer, err = NewPointRenderer(cfg.ParticleCapacity)
	if err != nil {
		s.Dispose()
		return nil, fmt.Errorf("creating point renderer: %w", err)
	}

	s.labelRenderer, err = NewLabelRenderer()
	if err != nil {
		s.Dispose()
		return nil, fmt.Errorf("creating label renderer: %w", err)
	}

	return s, nil
}

// fogFor starts the fog beyond the terrain's far edge from a fitted camera.
func fogFor(b terrain.Bounds) Fog {
	dx := b.Max[0] - b.Min[0]
	dy := b.Max[1] - b.Min[1]
	dz := b.Max[2] - b.Min[2]
	diag := math.Vec3{X: dx, Y: dy, Z: dz}.Length()
	return Fog{
		Color: [3]float32{ClearColor[0], ClearColor[1], ClearColor[2]},
		Near:  diag * 1.5,
		Far:   diag * 4,
	}
}

// Replace shows m as the hover marker.
func (s *Scene) Replace(m *picking.Marker) {
	if s.lineRenderer != nil {
		s.lineRenderer.Replace(m)
	}
}

// Clear hides the hover marker.
func (s *Scene) Clear() {
	if s.lineRenderer != nil {
		s.lineRenderer.Clear()
	}
}

// SetParticles uploads the particle positions for the next draw.
func (s *Scene) SetParticles(positions []float32) {
	if s.pointRenderer != nil {
		s.pointRenderer.Update(positions)
	}
}

// SetLabels replaces the billboarded labels.
func (s *Scene) SetLabels(labels []text.Label) {
	if s.labelRenderer != nil {
		s.labelRenderer.SetLabels(labels)
	}
}

// Draw renders the scene. The caller has cleared the frame.
func (s *Scene) Draw(view, proj math.Mat4, eye [3]float32) {
	if s.disposed {
		return
	}
	viewProj := proj.Mul(view)

	if s.shadows != nil {
		s.shadows.Map.Bind()
		s.terrainRenderer.RenderDepth(s.shadows.LightViewProj)
		s.shadows.Map.Unbind()
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	s.terrainRenderer.Render(viewProj, eye, s.Sun, s.Fog, s.shadows)
	s.lineRenderer.Render(viewProj)
	s.labelRenderer.Render(viewProj, view)
	s.pointRenderer.Render(viewProj, eye)
}

// Dispose releases every GPU resource. It is safe to call more than once
// and on a partially constructed scene.
func (s *Scene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true

	if s.labelRenderer != nil {
		s.labelRenderer.Destroy()
		s.labelRenderer = nil
	}
	if s.pointRenderer != nil {
		s.pointRenderer.Destroy()
		s.pointRenderer = nil
	}
	if s.lineRenderer != nil {
		s.lineRenderer.Destroy()
		s.lineRenderer = nil
	}
	if s.shadows != nil {
		s.shadows.Map.Destroy()
		s.shadows = nil
	}
	if s.terrainRenderer != nil {
		s.terrainRenderer.Destroy()
		s.terrainRenderer = nil
	}
}
