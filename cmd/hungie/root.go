package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/yeschef/hungie/internal/api"
	"github.com/yeschef/hungie/internal/config"
	"github.com/yeschef/hungie/internal/home"
	"github.com/yeschef/hungie/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "hungie",
	Short: "Recipe extraction and search backend for cookbook PDFs",
	Long: `Hungie pulls recipes out of cookbook PDFs and makes them searchable.

The extraction pipeline includes:
  - Page classification (recipe, table of contents, narrative, ...)
  - Marker-based splitting of recipes into ingredients and instructions
  - Table of contents mapping with fuzzy title matching
  - Multi-page recipe continuation tracking`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.hungie/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "hungie home directory (default: ~/.hungie)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// getHome returns the home directory manager.
func getHome() (*home.Dir, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, err
	}
	return h, nil
}

// getConfig loads configuration, preferring --config, then the home
// directory's config.yaml if one exists.
func getConfig(h *home.Dir) (*config.Manager, error) {
	path := cfgFile
	if path == "" && h.ConfigExists() {
		path = h.ConfigPath()
	}
	return config.NewManager(path)
}

// newLogger builds the process logger at the configured level.
func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
}
