// Package cmd implements the purr command line interface.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/rbhughes/purr-petra/internal/iofs"
	"github.com/rbhughes/purr-petra/internal/iologger"
	app "github.com/rbhughes/purr-petra/pkg"
	"github.com/rbhughes/purr-petra/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	cfg     *config.Config
)

// getRootCmd builds the base command with all subcommands attached.
// Extracted as a function to facilitate testing.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "purr",
		Short:   "Extract well-centric data from Petra projects",
		Long: `purr finds Petra projects on a network, registers them as repos
and exports their well-centric data assets as JSON documents.

Features:
  - Recon: crawl a directory tree for Petra projects and register each
    one with well counts, per-asset counts and directory stats
  - Collect: export an asset (core, dst, formation, ip, perforation,
    production, raster_log, survey, vector_log, well, zone) from a repo
    as a JSON array of well-centric documents, optionally filtered by
    UWI patterns
  - Serve: the same operations behind an HTTP API

Projects are read in place through the DBISAM ODBC driver installed
with Petra. Nothing is ever written to a project.`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "purr version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for purr")

	rootCmd.AddCommand(
		getReconCmd(),
		getReposCmd(),
		getCollectCmd(),
		getDepotCmd(),
		getServeCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	// Initialize logging with hardcoded defaults.
	// Will be reconfigured later with user's config settings.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	cfg = config.New()
	cfg.Update(cfgViper.ToOptions())
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings, appending to the file
	// started above.
	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	slog.Info("configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, &iofs.ReadFileError{File: cfgPath, Err: err}
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, &iofs.ReadFileError{File: cfgPath, Err: err}
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are
	// allowed. These match the fields included in config.ToOptions(),
	// i.e. persistent configuration that can be stored in config.yaml.
	v.SetEnvPrefix("PURR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("depot", "DEPOT")

	// HTTP API configuration
	v.BindEnv("serve.host", "SERVE_HOST")
	v.BindEnv("serve.port", "SERVE_PORT")

	// Log configuration
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.destination", "LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "JOBS_NUMBER")

	v.AutomaticEnv()
}
