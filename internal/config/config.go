// Package config reads counterline settings from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config holds environment settings. Command-line flags override them.
type Config struct {
	DBPath      string     `env:"COUNTERLINE_DB"`
	ScenarioDir string     `env:"COUNTERLINE_SCENARIOS"`
	LogLevel    slog.Level `env:"COUNTERLINE_LOG_LEVEL" envDefault:"INFO"`
	LogFormat   string     `env:"COUNTERLINE_LOG_FORMAT" envDefault:"text"`
	LogFile     string     `env:"COUNTERLINE_LOG_FILE"`
}

// Load parses the process environment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFrom parses settings from the given variables instead of the process
// environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: vars})
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	switch c.LogFormat {
	case "text", "json":
		return nil
	}
	return fmt.Errorf("COUNTERLINE_LOG_FORMAT: unsupported format %q (want text or json)", c.LogFormat)
}
