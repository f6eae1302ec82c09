// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `env:"HEARTH_ADDR" envDefault:":8080"`
	// DBPath is the SQLite database file.
	DBPath string `env:"HEARTH_DB_PATH" envDefault:"hearth.db"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"HEARTH_LOG_LEVEL" envDefault:"info"`
	// ShutdownTimeout bounds graceful shutdown, e.g. "10s".
	ShutdownTimeout string `env:"HEARTH_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
