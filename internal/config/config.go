// Package config reads plantcare settings from the environment.
// Command-line flags override these values.
package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Formats lists the accepted output formats.
var Formats = []string{"text", "json"}

// Config holds the environment-backed settings shared by all commands.
type Config struct {
	DBPath   string `env:"PLANTCARE_DB"        envDefault:"plantcare.db"`
	UserID   int64  `env:"PLANTCARE_USER"      envDefault:"1"`
	Workers  int    `env:"PLANTCARE_WORKERS"   envDefault:"4"`
	Catalog  string `env:"PLANTCARE_CATALOG"`
	Format   string `env:"PLANTCARE_FORMAT"    envDefault:"text"`
	LogLevel string `env:"PLANTCARE_LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config. Only type errors are
// reported here; call Validate once flags have been applied.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks values the environment parser cannot.
func (c Config) Validate() error {
	if c.UserID <= 0 {
		return fmt.Errorf("invalid user %d: must be positive", c.UserID)
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid workers %d: must be at least 1", c.Workers)
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", c.Format, Formats)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level. Unknown values fall back to info.
func (c Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: must be debug, info, warn or error", s)
	}
	return level, nil
}
