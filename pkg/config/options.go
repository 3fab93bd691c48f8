package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDepot sets the export directory for asset JSON files.
func OptDepot(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Depot", s) {
			c.Depot = s
		}
	}
}

// OptServeHost sets the interface the HTTP API binds to.
func OptServeHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Serve Host", s) {
			c.Serve.Host = s
		}
	}
}

// OptServePort sets the HTTP API port number.
func OptServePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Serve Port", i) {
			c.Serve.Port = i
		}
	}
}

// OptCollectBatchSize overrides every recipe's identifier batch size.
// Runtime-only field - not in ToOptions().
func OptCollectBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Collect.BatchSize = i
		}
	}
}

// OptCollectRecipesPath points at a user recipes.yaml replacing the
// embedded registry.
// Runtime-only field - not in ToOptions().
func OptCollectRecipesPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Recipes Path", s) {
			c.Collect.RecipesPath = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel
// operations. Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, store, and log
// locations. Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
