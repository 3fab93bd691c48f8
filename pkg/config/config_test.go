package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rbhughes/purr-petra/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "purr"),
		},
		{
			msg: "store dir",
			fn:  config.StoreDir,
			res: filepath.Join(tempHome, ".local", "share", "purr"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "purr", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "purr", "config.yaml"),
		},
		{
			msg: "store file",
			fn:  config.StoreFilePath,
			res: filepath.Join(tempHome, ".local", "share", "purr", "purr.db"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Empty(t, cfg.Depot)

		// Serve defaults
		assert.Equal(t, "localhost", cfg.Serve.Host)
		assert.Equal(t, 8070, cfg.Serve.Port)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		// JobsNumber defaults to CPU count
		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	})
}

func TestOptionDepot(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid path",
			input:    "/data/exports",
			expected: "/data/exports",
		},
		{
			name:     "trims whitespace",
			input:    "  /data/exports  ",
			expected: "/data/exports",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDepot(tt.input)})
			assert.Equal(t, tt.expected, cfg.Depot)
		})
	}
}

func TestOptionServePort(t *testing.T) {
	cfg := config.New()

	cfg.Update([]config.Option{config.OptServePort(9000)})
	assert.Equal(t, 9000, cfg.Serve.Port)

	cfg.Update([]config.Option{config.OptServePort(0)})
	assert.Equal(t, 9000, cfg.Serve.Port, "invalid port is ignored")

	cfg.Update([]config.Option{config.OptServePort(-1)})
	assert.Equal(t, 9000, cfg.Serve.Port, "negative port is ignored")
}

func TestOptionLogEnums(t *testing.T) {
	cfg := config.New()

	cfg.Update([]config.Option{
		config.OptLogLevel("DEBUG"),
		config.OptLogFormat(" text "),
		config.OptLogDestination("stdout"),
	})
	assert.Equal(t, "debug", cfg.Log.Level, "level is lowercased")
	assert.Equal(t, "text", cfg.Log.Format, "format is trimmed")
	assert.Equal(t, "stdout", cfg.Log.Destination)

	cfg.Update([]config.Option{
		config.OptLogLevel("verbose"),
		config.OptLogFormat("xml"),
		config.OptLogDestination("syslog"),
	})
	assert.Equal(t, "debug", cfg.Log.Level, "unknown level is ignored")
	assert.Equal(t, "text", cfg.Log.Format, "unknown format is ignored")
	assert.Equal(t, "stdout", cfg.Log.Destination, "unknown destination is ignored")
}

func TestOptionCollect(t *testing.T) {
	cfg := config.New()

	cfg.Update([]config.Option{
		config.OptCollectBatchSize(100),
		config.OptCollectRecipesPath("/tmp/recipes.yaml"),
	})
	assert.Equal(t, 100, cfg.Collect.BatchSize)
	assert.Equal(t, "/tmp/recipes.yaml", cfg.Collect.RecipesPath)

	cfg.Update([]config.Option{config.OptCollectBatchSize(0)})
	assert.Equal(t, 100, cfg.Collect.BatchSize, "zero batch size is ignored")
}

func TestToOptionsRoundTrip(t *testing.T) {
	orig := config.New()
	orig.Update([]config.Option{
		config.OptDepot("/data/exports"),
		config.OptServeHost("0.0.0.0"),
		config.OptServePort(8071),
		config.OptLogLevel("warn"),
		config.OptLogFormat("text"),
		config.OptLogDestination("stderr"),
		config.OptJobsNumber(4),
	})

	clone := config.New()
	clone.Update(orig.ToOptions())

	assert.Equal(t, orig.Depot, clone.Depot)
	assert.Equal(t, orig.Serve, clone.Serve)
	assert.Equal(t, orig.Log, clone.Log)
	assert.Equal(t, orig.JobsNumber, clone.JobsNumber)
}

func TestToOptionsExcludesRuntimeFields(t *testing.T) {
	orig := config.New()
	orig.Update([]config.Option{
		config.OptHomeDir("/home/someone"),
		config.OptCollectBatchSize(25),
		config.OptCollectRecipesPath("/tmp/recipes.yaml"),
	})

	clone := config.New()
	clone.Update(orig.ToOptions())

	assert.Empty(t, clone.HomeDir)
	assert.Zero(t, clone.Collect.BatchSize)
	assert.Empty(t, clone.Collect.RecipesPath)
}
