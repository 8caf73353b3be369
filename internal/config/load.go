package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment keys read by Load. A .env file in the working directory
// supplies defaults for them; the process environment wins.
const (
	EnvUser     = "CONTRIBSCAPE_USER"
	EnvAPIURL   = "CONTRIBSCAPE_API_URL"
	EnvYear     = "CONTRIBSCAPE_YEAR"
	EnvLogLevel = "CONTRIBSCAPE_LOG_LEVEL"
	EnvFont     = "CONTRIBSCAPE_FONT"
)

var envKeys = []string{EnvUser, EnvAPIURL, EnvYear, EnvLogLevel, EnvFont}

// Load loads configuration with priority: defaults < file < env < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	vars, err := readEnv(".env")
	if err != nil {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	if err := applyEnv(cfg, vars); err != nil {
		return nil, err
	}

	// CLI flags have the highest priority
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Contribscape")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Contribscape")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "contribscape")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "contribscape")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// readEnv collects the viewer's environment keys: values from the dotenv
// file at path (if it exists) overlaid by the process environment.
func readEnv(path string) (map[string]string, error) {
	vars := make(map[string]string)

	file, err := godotenv.Read(path)
	switch {
	case err == nil:
		for _, k := range envKeys {
			if v, ok := file[k]; ok {
				vars[k] = v
			}
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	for _, k := range envKeys {
		if v, ok := os.LookupEnv(k); ok {
			vars[k] = v
		}
	}
	return vars, nil
}

// applyEnv applies environment overrides to the config.
func applyEnv(cfg *Config, vars map[string]string) error {
	if v := vars[EnvUser]; v != "" {
		cfg.Source.Username = v
	}
	if v := vars[EnvAPIURL]; v != "" {
		cfg.Source.APIURL = v
	}
	if v := vars[EnvYear]; v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvYear, v, ErrInvalid)
		}
		cfg.Source.Year = year
	}
	if v := vars[EnvLogLevel]; v != "" {
		cfg.Logging.Level = v
	}
	if v := vars[EnvFont]; v != "" {
		cfg.Labels.FontPath = v
	}
	return nil
}
