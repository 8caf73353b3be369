package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagUser        = flag.String("user", "", "GitHub username to visualize")
	flagYear        = flag.Int("year", 0, "Calendar year (default: current year)")
	flagGrid        = flag.String("grid", "", "Load a saved contributions payload instead of fetching")
	flagMock        = flag.Bool("mock", false, "Use a generated placeholder grid")
	flagWindowed    = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagSupersample = flag.Int("supersample", 0, "Terrain vertices per cell edge")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Graphics.ShowFPS = true
	}
	if *flagUser != "" {
		cfg.Source.Username = *flagUser
	}
	if *flagYear > 0 {
		cfg.Source.Year = *flagYear
	}
	if *flagGrid != "" {
		cfg.Source.GridFile = *flagGrid
	}
	if *flagMock {
		cfg.Source.Mock = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagSupersample > 0 {
		cfg.Terrain.Supersample = *flagSupersample
	}
}
