// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/contribscape/internal/contrib"
	"github.com/Faultbox/contribscape/internal/engine/lighting"
	"github.com/Faultbox/contribscape/internal/engine/terrain"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Camera    CameraConfig    `yaml:"camera"`
	Source    SourceConfig    `yaml:"source"`
	Labels    LabelsConfig    `yaml:"labels"`
	Particles ParticlesConfig `yaml:"particles"`
	Light     lighting.Sun    `yaml:"light"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Fullscreen    bool    `yaml:"fullscreen"`
	VSync         bool    `yaml:"vsync"`
	MaxPixelRatio float32 `yaml:"max_pixel_ratio"`
	FOV           float32 `yaml:"fov"` // vertical, degrees
	ShowFPS       bool    `yaml:"show_fps"`
	SnapshotDir   string  `yaml:"snapshot_dir"`

	// ShadowResolution is the shadow map edge in texels, 0 disables shadows.
	ShadowResolution int32   `yaml:"shadow_resolution"`
	ShadowStrength   float32 `yaml:"shadow_strength"`
}

// TerrainConfig holds mesh construction settings.
type TerrainConfig struct {
	CellSize       float32 `yaml:"cell_size"`
	Supersample    int     `yaml:"supersample"`
	BaseHeight     float32 `yaml:"base_height"`
	ColorFloor     float32 `yaml:"color_floor"`
	ColorRange     float32 `yaml:"color_range"`
	HighlightScale float32 `yaml:"highlight_scale"`
}

// CameraConfig holds orbit camera settings.
type CameraConfig struct {
	MinDistance     float32 `yaml:"min_distance"`
	MaxDistance     float32 `yaml:"max_distance"`
	DragSensitivity float32 `yaml:"drag_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
	Damping         float32 `yaml:"damping"`
	AutoRotate      bool    `yaml:"auto_rotate"`
	AutoRotateSpeed float32 `yaml:"auto_rotate_speed"`
}

// SourceConfig holds contribution data settings.
type SourceConfig struct {
	APIURL   string        `yaml:"api_url"`
	Username string        `yaml:"username"`
	Year     int           `yaml:"year"` // 0 means the current year
	Timeout  time.Duration `yaml:"timeout"`
	GridFile string        `yaml:"grid_file"`
	Mock     bool          `yaml:"mock"`
	MockSeed int64         `yaml:"mock_seed"`
}

// LabelsConfig holds nameplate and stat label settings.
type LabelsConfig struct {
	Enabled  bool    `yaml:"enabled"`
	FontPath string  `yaml:"font_path"`
	FontSize float64 `yaml:"font_size"`
}

// ParticlesConfig holds ambient particle settings.
type ParticlesConfig struct {
	Count int     `yaml:"count"`
	Speed float32 `yaml:"speed"`
	Sway  float32 `yaml:"sway"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// MetricsConfig holds metrics settings.
type MetricsConfig struct {
	Enabled       bool `yaml:"enabled"`
	SummaryOnExit bool `yaml:"summary_on_exit"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	tp := terrain.DefaultParams()
	return &Config{
		Graphics: GraphicsConfig{
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			MaxPixelRatio: 2,
			FOV:           45,
			SnapshotDir:   "snapshots",

			ShadowResolution: 2048,
			ShadowStrength:   0.55,
		},
		Terrain: TerrainConfig{
			CellSize:       tp.CellSize,
			Supersample:    tp.Supersample,
			BaseHeight:     tp.BaseHeight,
			ColorFloor:     tp.ColorFloor,
			ColorRange:     tp.ColorRange,
			HighlightScale: 1.05,
		},
		Camera: CameraConfig{
			MinDistance:     5,
			MaxDistance:     300,
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.1,
			Damping:         8,
			AutoRotate:      true,
			AutoRotateSpeed: 0.05,
		},
		Source: SourceConfig{
			APIURL:   contrib.DefaultAPIURL,
			Timeout:  10 * time.Second,
			MockSeed: 42,
		},
		Labels: LabelsConfig{
			Enabled:  true,
			FontSize: 28,
		},
		Particles: ParticlesConfig{
			Count: 400,
			Speed: 0.4,
			Sway:  0.3,
		},
		Light: lighting.DefaultSun(),
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Metrics: MetricsConfig{
			Enabled:       true,
			SummaryOnExit: true,
		},
	}
}

// Params converts the terrain section to mesh build parameters.
func (t TerrainConfig) Params() terrain.Params {
	return terrain.Params{
		CellSize:    t.CellSize,
		Supersample: t.Supersample,
		BaseHeight:  t.BaseHeight,
		ColorFloor:  t.ColorFloor,
		ColorRange:  t.ColorRange,
	}
}

// ResolvedYear returns the configured year or now's year when unset.
func (s SourceConfig) ResolvedYear(now time.Time) int {
	if s.Year > 0 {
		return s.Year
	}
	return now.Year()
}

// Validate rejects settings the viewer cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Graphics.Width <= 0 || c.Graphics.Height <= 0:
		return fmt.Errorf("window size %dx%d: %w", c.Graphics.Width, c.Graphics.Height, ErrInvalid)
	case c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180:
		return fmt.Errorf("fov %v out of range: %w", c.Graphics.FOV, ErrInvalid)
	case c.Terrain.CellSize <= 0:
		return fmt.Errorf("terrain.cell_size %v must be positive: %w", c.Terrain.CellSize, ErrInvalid)
	case c.Terrain.Supersample < 1:
		return fmt.Errorf("terrain.supersample %d must be at least 1: %w", c.Terrain.Supersample, ErrInvalid)
	case c.Terrain.BaseHeight >= 0:
		return fmt.Errorf("terrain.base_height %v must be negative: %w", c.Terrain.BaseHeight, ErrInvalid)
	case c.Terrain.HighlightScale <= 0:
		return fmt.Errorf("terrain.highlight_scale %v must be positive: %w", c.Terrain.HighlightScale, ErrInvalid)
	case c.Camera.MinDistance <= 0 || c.Camera.MinDistance > c.Camera.MaxDistance:
		return fmt.Errorf("camera distance range [%v, %v]: %w", c.Camera.MinDistance, c.Camera.MaxDistance, ErrInvalid)
	case c.Source.Year < 0:
		return fmt.Errorf("source.year %d: %w", c.Source.Year, ErrInvalid)
	case c.Source.Timeout <= 0:
		return fmt.Errorf("source.timeout %v must be positive: %w", c.Source.Timeout, ErrInvalid)
	case c.Graphics.ShadowResolution < 0 || c.Graphics.ShadowResolution > 8192:
		return fmt.Errorf("graphics.shadow_resolution %d out of range: %w", c.Graphics.ShadowResolution, ErrInvalid)
	case c.Graphics.ShadowStrength < 0 || c.Graphics.ShadowStrength > 1:
		return fmt.Errorf("graphics.shadow_strength %v out of range: %w", c.Graphics.ShadowStrength, ErrInvalid)
	case c.Particles.Count < 0:
		return fmt.Errorf("particles.count %d: %w", c.Particles.Count, ErrInvalid)
	case c.Light.Elevation < 0 || c.Light.Elevation > 90:
		return fmt.Errorf("light.elevation %v out of range: %w", c.Light.Elevation, ErrInvalid)
	case c.Light.Ambient < 0 || c.Light.Ambient > 1:
		return fmt.Errorf("light.ambient %v out of range: %w", c.Light.Ambient, ErrInvalid)
	}
	return nil
}
