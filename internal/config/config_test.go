package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/contribscape/internal/contrib"
	"github.com/Faultbox/contribscape/internal/engine/lighting"
	"github.com/Faultbox/contribscape/internal/engine/terrain"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Terrain.Params() != terrain.DefaultParams() {
		t.Errorf("terrain params %+v differ from mesh defaults", cfg.Terrain.Params())
	}
	if cfg.Source.APIURL != contrib.DefaultAPIURL {
		t.Errorf("expected api url %s, got %s", contrib.DefaultAPIURL, cfg.Source.APIURL)
	}
	if cfg.Source.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Source.Timeout)
	}

	if cfg.Light != lighting.DefaultSun() {
		t.Errorf("light %+v differs from the default sun", cfg.Light)
	}
	if cfg.Graphics.SnapshotDir == "" {
		t.Error("expected a snapshot directory")
	}
	if cfg.Graphics.ShadowResolution != 2048 {
		t.Errorf("expected shadow resolution 2048, got %d", cfg.Graphics.ShadowResolution)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

terrain:
  cell_size: 0.5
  supersample: 2
  base_height: -3

camera:
  auto_rotate: false
  damping: 0

source:
  username: "octocat"
  year: 2023
  timeout: 5s
  mock: true

labels:
  font_path: "/fonts/Inter.ttf"
  font_size: 32

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen || cfg.Graphics.VSync {
		t.Error("expected fullscreen on and vsync off")
	}
	if cfg.Terrain.CellSize != 0.5 || cfg.Terrain.Supersample != 2 || cfg.Terrain.BaseHeight != -3 {
		t.Errorf("unexpected terrain %+v", cfg.Terrain)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Terrain.ColorFloor != 0.3 {
		t.Errorf("expected default color floor, got %v", cfg.Terrain.ColorFloor)
	}
	if cfg.Camera.AutoRotate || cfg.Camera.Damping != 0 {
		t.Errorf("unexpected camera %+v", cfg.Camera)
	}
	if cfg.Source.Username != "octocat" || cfg.Source.Year != 2023 || cfg.Source.Timeout != 5*time.Second || !cfg.Source.Mock {
		t.Errorf("unexpected source %+v", cfg.Source)
	}
	if cfg.Labels.FontPath != "/fonts/Inter.ttf" || cfg.Labels.FontSize != 32 {
		t.Errorf("unexpected labels %+v", cfg.Labels)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestReadEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "CONTRIBSCAPE_USER=from-file\nCONTRIBSCAPE_YEAR=2022\nUNRELATED=1\n"
	if err := os.WriteFile(envPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Setenv(EnvUser, "from-env")

	vars, err := readEnv(envPath)
	if err != nil {
		t.Fatalf("readEnv() error: %v", err)
	}
	if vars[EnvUser] != "from-env" {
		t.Errorf("process env should win, got %q", vars[EnvUser])
	}
	if vars[EnvYear] != "2022" {
		t.Errorf("expected year from file, got %q", vars[EnvYear])
	}
	if _, ok := vars["UNRELATED"]; ok {
		t.Error("unrelated keys should be ignored")
	}

	if _, err := readEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := applyEnv(cfg, map[string]string{
		EnvUser:     "torvalds",
		EnvAPIURL:   "http://localhost:8080/v4/",
		EnvYear:     "2021",
		EnvLogLevel: "warn",
		EnvFont:     "/tmp/font.ttf",
	})
	if err != nil {
		t.Fatalf("applyEnv() error: %v", err)
	}
	if cfg.Source.Username != "torvalds" || cfg.Source.APIURL != "http://localhost:8080/v4/" || cfg.Source.Year != 2021 {
		t.Errorf("unexpected source %+v", cfg.Source)
	}
	if cfg.Logging.Level != "warn" || cfg.Labels.FontPath != "/tmp/font.ttf" {
		t.Error("log level or font not applied")
	}

	if err := applyEnv(Default(), map[string]string{EnvYear: "soon"}); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for bad year, got %v", err)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Graphics.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "source flags",
			setup: func() {
				*flagUser = "octocat"
				*flagYear = 2020
				*flagGrid = "saved.json"
				*flagMock = true
			},
			verify: func(t *testing.T, cfg *Config) {
				s := cfg.Source
				if s.Username != "octocat" || s.Year != 2020 || s.GridFile != "saved.json" || !s.Mock {
					t.Errorf("unexpected source %+v", s)
				}
			},
			teardown: func() {
				*flagUser = ""
				*flagYear = 0
				*flagGrid = ""
				*flagMock = false
			},
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "size and supersample flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
				*flagSupersample = 6
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
				if cfg.Terrain.Supersample != 6 {
					t.Errorf("expected supersample 6, got %d", cfg.Terrain.Supersample)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
				*flagSupersample = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"fov", func(c *Config) { c.Graphics.FOV = 180 }},
		{"cell size", func(c *Config) { c.Terrain.CellSize = 0 }},
		{"supersample", func(c *Config) { c.Terrain.Supersample = 0 }},
		{"base height", func(c *Config) { c.Terrain.BaseHeight = 0 }},
		{"highlight", func(c *Config) { c.Terrain.HighlightScale = -1 }},
		{"distance range", func(c *Config) { c.Camera.MinDistance = 500 }},
		{"year", func(c *Config) { c.Source.Year = -1 }},
		{"timeout", func(c *Config) { c.Source.Timeout = 0 }},
		{"particles", func(c *Config) { c.Particles.Count = -5 }},
		{"shadow resolution", func(c *Config) { c.Graphics.ShadowResolution = -1 }},
		{"shadow strength", func(c *Config) { c.Graphics.ShadowStrength = 1.5 }},
		{"light elevation", func(c *Config) { c.Light.Elevation = 95 }},
		{"light ambient", func(c *Config) { c.Light.Ambient = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestResolvedYear(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := (SourceConfig{}).ResolvedYear(now); got != 2025 {
		t.Errorf("unset year = %d, want 2025", got)
	}
	if got := (SourceConfig{Year: 2019}).ResolvedYear(now); got != 2019 {
		t.Errorf("year = %d, want 2019", got)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Source.Username = "octocat"
	cfg.Terrain.Supersample = 3

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile() error: %v", err)
	}
	if loaded.Source.Username != "octocat" || loaded.Terrain.Supersample != 3 {
		t.Errorf("round trip lost values: %+v %+v", loaded.Source, loaded.Terrain)
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
source:
  username: from-file
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)
	os.Chdir(tmpDir)

	t.Setenv(EnvUser, "from-env")
	t.Setenv(EnvLogLevel, "warn")

	*flagConfig = configPath
	*flagWidth = 1920
	*flagUser = "from-flag"
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
		*flagUser = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Source.Username != "from-flag" {
		t.Errorf("expected username from flag, got %s", cfg.Source.Username)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level from env, got %s", cfg.Logging.Level)
	}
}
