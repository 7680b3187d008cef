package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/KaramelBytes/sectorlens/internal/app"
	cfgpkg "github.com/KaramelBytes/sectorlens/internal/config"
	"github.com/KaramelBytes/sectorlens/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Source flags (override config if set)
	flagSource string
	flagSheet  string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "sectorlens",
	Short: "Sectorlens: subsector breakdown of a spreadsheet, filtered by group",
	Long: `Sectorlens reads a spreadsheet of records, finds its group and subsector
columns by name, and shows how records split across subsectors for all
records or for a single group. Results are served as a web page, printed
as a terminal report, or exported as static files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.sectorlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagSource, "source", "", "spreadsheet path or http(s) URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagSheet, "sheet", "", "worksheet name (overrides config; default first sheet)")
}

func loadConfig() {
	logging.Configure(os.Stderr, debug)
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("source") && flagSource != "" {
		cfg.Source = flagSource
	}
	if f.Changed("sheet") {
		cfg.Sheet = flagSheet
	}
}

// requireConfig returns the loaded configuration, loading it on demand when
// OnInitialize failed or was skipped.
func requireConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}

// loadController builds a controller from the configuration and loads its
// source. A failed load is returned as an error; serve keeps running with
// the status message instead, so it calls load itself.
func loadController(ctx context.Context) (*app.Controller, error) {
	c, err := requireConfig()
	if err != nil {
		return nil, err
	}
	ctrl := app.New(app.OptionsFromConfig(c))
	if err := ctrl.Load(ctx); err != nil {
		return nil, fmt.Errorf("%s (%w)", app.StatusMessage(err), err)
	}
	return ctrl, nil
}
