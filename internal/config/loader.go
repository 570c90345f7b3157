// Package config loads application configuration from an optional YAML
// file with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures the configuration values for the calendar application.
type Config struct {
	// DatabasePath is the SQLite database file location.
	DatabasePath string `yaml:"database_path"`
	// Timezone is the IANA name occurrences are projected in, for
	// example "Europe/Berlin". Empty means the system timezone.
	Timezone string `yaml:"timezone"`
	// DefaultWindow is the agenda span used when no explicit range is
	// given.
	DefaultWindow time.Duration `yaml:"default_window"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DatabasePath:  "calendar.db",
		DefaultWindow: 30 * 24 * time.Hour,
		LogLevel:      "info",
	}
}

// Load reads configuration from the given YAML file, then applies
// environment overrides. A missing file is not an error; defaults are
// used. An empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Fall through to defaults plus environment.
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(&cfg)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("CALENDAR_DATABASE_PATH")); v != "" {
		cfg.DatabasePath = v
	}
	if v := strings.TrimSpace(os.Getenv("CALENDAR_TIMEZONE")); v != "" {
		cfg.Timezone = v
	}
	if v := strings.TrimSpace(os.Getenv("CALENDAR_DEFAULT_WINDOW")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.DefaultWindow = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("CALENDAR_LOG_LEVEL")); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
}

func validate(cfg Config) error {
	invalid := make([]string, 0, 2)

	if strings.TrimSpace(cfg.DatabasePath) == "" {
		invalid = append(invalid, "database_path")
	}
	if cfg.DefaultWindow <= 0 {
		invalid = append(invalid, "default_window")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		invalid = append(invalid, "log_level")
	}
	if cfg.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Timezone); err != nil {
			invalid = append(invalid, "timezone")
		}
	}

	if len(invalid) > 0 {
		return fmt.Errorf("invalid configuration values: %s", strings.Join(invalid, ", "))
	}
	return nil
}

// Location resolves the configured timezone, falling back to the system
// local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
