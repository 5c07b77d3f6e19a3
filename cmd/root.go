package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/iksnae/routine-assistant/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configFile string
	statePath  string
	dataDir    string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "routine-assistant",
	Short: "Build beauty routines from a product catalogue",
	Long: `A CLI assistant that builds skincare, haircare and makeup routines
using only products from a known catalogue.

Select the products you own, ask questions, and request a step-by-step
routine. Replies are checked against the catalogue and missing steps are
suggested from it.

Quick Start:
  routine-assistant catalog list --category skincare   # Browse the catalogue
  routine-assistant select 1 5                         # Select products
  routine-assistant routine                            # Request a routine
  routine-assistant chat "Can I use this every day?"   # Ask a follow-up

The relay endpoint is read from relay.url in config.yaml or ROUTINE_RELAY_URL.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		internal.PrintError(fmt.Sprintf("Error: %v", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default <data dir>/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "Session state file (overrides state.path)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory for config, state and catalogue snapshots")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// session bundles everything a command needs to act on the persisted session
type session struct {
	cfg       *internal.Config
	store     internal.StateStore
	assistant *internal.Assistant
}

func loadConfig() (*internal.Config, error) {
	cfg, err := internal.LoadConfig(internal.ConfigOptions{
		DataDir:    dataDir,
		ConfigFile: configFile,
	})
	if err != nil {
		return nil, err
	}
	if statePath != "" {
		cfg.State.Path = statePath
	}
	return cfg, nil
}

func newCatalog(cfg *internal.Config) *internal.Catalog {
	var cache *internal.CatalogCache
	if cfg.Catalog.Snapshot {
		cache = internal.NewCatalogCache(cfg.CacheDir())
	}
	return internal.NewCatalog(internal.NewSource(cfg.Catalog.Source), cache)
}

// openSession loads config, opens the state store and restores the session
func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := internal.OpenStateStore(cfg.State.Driver, cfg.State.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	internal.LogDebug("Using %s state store at %s", cfg.State.Driver, cfg.State.Path)

	relay := internal.NewHTTPRelay(cfg.Relay.URL, cfg.Relay.Timeout)
	assistant := internal.NewAssistant(newCatalog(cfg), store, relay, cfg.Relay.Model)
	assistant.Restore(ctx)

	return &session{cfg: cfg, store: store, assistant: assistant}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		internal.LogWarn("Failed to close state store: %v", err)
	}
}
