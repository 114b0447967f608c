package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/owlwatch/owlwatch/internal/common/config"
	"github.com/owlwatch/owlwatch/internal/common/debugfile"
	"github.com/owlwatch/owlwatch/internal/common/logger"
	"github.com/owlwatch/owlwatch/internal/common/output"
	"github.com/owlwatch/owlwatch/internal/common/state"
	"github.com/owlwatch/owlwatch/internal/livecheck"
	"github.com/owlwatch/owlwatch/internal/updatecheck"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	quiet      bool
	noColor    bool
	debugMode  bool
	configPath string
)

// app is shared by every subcommand once the root pre-run has finished
var app struct {
	state     *state.State
	endpoints config.Endpoints
	debug     *debugfile.Writer
}

var rootCmd = &cobra.Command{
	Use:   "owlwatch",
	Short: "Watch esports channels for live broadcasts",
	Long:  `Detects when the followed league channels go live, checks for new owlwatch releases and manages the owlwatch configuration.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetVerbose(true)
		}
		if quiet {
			logger.SetQuiet(true)
		}
		if noColor {
			output.NoColor()
		}

		// A .env file in the working directory may seed OWLWATCH_DEBUG
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("ignoring .env: %v", err)
		}

		app.state = state.FromEnv()
		if debugMode {
			app.state.SetDebug(true)
		}

		if configPath == "" {
			path, err := config.FindConfigPath()
			if err != nil {
				logger.Error("locating config: %v", err)
				os.Exit(1)
			}
			configPath = path
		}

		ep, err := config.LoadEndpoints(filepath.Dir(configPath))
		if err != nil {
			logger.Warn("using default endpoints: %v", err)
		}
		app.endpoints = ep

		debugDir, err := debugfile.DefaultDir()
		if err != nil {
			logger.Error("locating debug directory: %v", err)
			os.Exit(1)
		}
		app.debug = debugfile.NewWriter(debugDir, app.state)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Default().Close()
	},
}

// loadConfig reads the config file and lets its debug key switch debug mode on
func loadConfig() *config.Config {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}
	if cfg.Debug {
		app.state.SetDebug(true)
	}
	if app.state.Debug() {
		logger.SetVerbose(true)
		if err := logger.Default().EnableFileLogging(); err != nil {
			logger.Warn("file logging disabled: %v", err)
		}
	}
	return cfg
}

func newProber() *livecheck.Prober {
	return livecheck.NewProber(
		livecheck.WithEndpoints(app.endpoints),
		livecheck.WithDebugWriter(app.debug),
	)
}

func newChecker() *updatecheck.Checker {
	return updatecheck.NewChecker(app.state,
		updatecheck.WithURL(app.endpoints.VersionURL),
		updatecheck.WithDebugWriter(app.debug),
	)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Save debug files for every probe")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
