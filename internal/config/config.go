// Package config resolves the FRAME_* environment variables into a validated
// configuration struct.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	TVAddr      string `env:"FRAME_TV_IP,required"`        // Frame TV host or host:port
	ContentFile string `env:"FRAME_CONTENT_FILE,required"` // Markdown file to render
	Theme       string `env:"FRAME_THEME" envDefault:"default"`
	ThemesDir   string `env:"FRAME_THEMES_DIR" envDefault:"./themes"`
	LogLevel    string `env:"FRAME_LOG_LEVEL" envDefault:"info"`
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if _, err := os.Stat(cfg.ContentFile); err != nil {
		return nil, fmt.Errorf("FRAME_CONTENT_FILE: content file not found: %s", cfg.ContentFile)
	}

	return cfg, nil
}

// SlogLevel maps the configured log level name onto a slog level,
// defaulting to info for unknown values.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
