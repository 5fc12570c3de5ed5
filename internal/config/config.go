// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultFileName is the store file created under $HOME.
const DefaultFileName = ".tore"

// ErrNoStorePath is returned by StorePath when neither TORE_PATH nor HOME is set.
var ErrNoStorePath = errors.New("no store path: set TORE_PATH or HOME")

// TraceEnv turns migration tracing on whenever it is set, whatever its value.
const TraceEnv = "TORE_TRACE_MIGRATION_QUERIES"

// Presence is true when its variable is set at all. Values are never parsed
// as booleans, so "yes", "0" and "" all mean on.
type Presence bool

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Presence) UnmarshalText([]byte) error {
	*p = true
	return nil
}

// Config holds all configuration for the process.
type Config struct {
	Home                  string   `env:"HOME"`
	Path                  string   `env:"TORE_PATH"`
	TraceMigrationQueries Presence `env:"TORE_TRACE_MIGRATION_QUERIES"`
	LogLevel              string   `env:"TORE_LOG_LEVEL" envDefault:"info"`
	Addr                  string   `env:"TORE_ADDR" envDefault:"127.0.0.1:6969"`
	FireSpec              string   `env:"TORE_FIRE_SPEC"`
}

// Load reads configuration from environment variables and a .env file in
// the working directory, if present. The .env file never overrides variables
// that are already set.
func Load() (Config, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	// env skips empty values, so a set but empty variable is checked here.
	if _, ok := os.LookupEnv(TraceEnv); ok {
		cfg.TraceMigrationQueries = true
	}
	return cfg, nil
}

// StorePath resolves the database file: TORE_PATH wins, then $HOME/.tore.
func (c Config) StorePath() (string, error) {
	if c.Path != "" {
		return c.Path, nil
	}
	if c.Home == "" {
		return "", ErrNoStorePath
	}
	return filepath.Join(c.Home, DefaultFileName), nil
}
