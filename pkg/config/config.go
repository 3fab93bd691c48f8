// Package config provides configuration management for purr.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write warnings via slog.
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with a warning - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Depot: the export directory for asset JSON files
//   - Serve: host, port
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Collect.RecipesPath, Collect.BatchSize (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use PURR_ prefix with underscores for nesting:
//
//	PURR_DEPOT=/data/exports
//	PURR_SERVE_PORT=8070
//	PURR_LOG_LEVEL=info
//	PURR_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete purr configuration.
type Config struct {
	// Depot is the directory asset export files are written to. When
	// empty, the store's file depot setting (or the current directory)
	// is used instead.
	Depot string `mapstructure:"depot" yaml:"depot"`

	// Serve contains HTTP API settings.
	Serve ServeConfig `mapstructure:"serve" yaml:"serve"`

	// Collect contains settings specific to the collect command.
	Collect CollectConfig `mapstructure:"collect" yaml:"collect"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel
	// operations such as repo recon. Defaults to the number of
	// available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, store and logs directories
	// reside. It must be set by CLI during init, there is no default
	// value for it.
	HomeDir string
}

// ServeConfig contains HTTP API parameters.
type ServeConfig struct {
	// Host is the interface the API binds to.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the API port number.
	Port int `mapstructure:"port" yaml:"port"`
}

// CollectConfig contains settings specific to the collect command.
type CollectConfig struct {
	// BatchSize overrides every recipe's identifier batch size when
	// positive. Zero keeps each recipe's own size.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// RecipesPath points at a user recipes.yaml replacing the embedded
	// registry. Runtime-only, set per command invocation.
	RecipesPath string
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Serve: ServeConfig{
			Host: "localhost",
			Port: 8070,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
