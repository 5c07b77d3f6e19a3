package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/routine-assistant/internal"
	"github.com/spf13/cobra"
)

var (
	doctorVerbose    bool
	doctorClearCache bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the assistant is set up correctly",
	Long: `Check the setup of routine-assistant by verifying:
  • Configuration loading
  • Session state storage
  • Catalogue availability and snapshot
  • Relay endpoint configuration

Missing relay configuration is reported as a warning; an unreadable state
store or catalogue fails the check.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		problems := 0

		fmt.Fprintln(out, sectionStyle.Render("Routine Assistant Health Check"))
		fmt.Fprintln(out)

		// Step 1: Configuration
		fmt.Fprintln(out, infoStyle.Render("Step 1: Loading configuration..."))
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("✗ Failed to load configuration:"), err)
			return err
		}
		if cfg.ConfigFile != "" {
			fmt.Fprintln(out, successStyle.Render("✓ Config file loaded"))
		} else {
			fmt.Fprintln(out, successStyle.Render("✓ Using defaults (no config file)"))
		}
		if doctorVerbose {
			paths := internal.DataPathsAt(cfg.DataDir)
			fmt.Fprintf(out, "   Data dir: %s\n", paths.BasePath)
			fmt.Fprintf(out, "   Config file: %s\n", orNone(cfg.ConfigFile))
			fmt.Fprintf(out, "   Expected config: %s\n", paths.ConfigFilePath())
		}
		fmt.Fprintln(out)

		// Step 2: State store
		fmt.Fprintln(out, infoStyle.Render("Step 2: Opening session state..."))
		if !checkStateStore(out, cfg) {
			problems++
		}
		fmt.Fprintln(out)

		// Step 3: Catalogue
		fmt.Fprintln(out, infoStyle.Render("Step 3: Loading catalogue..."))
		if !checkCatalog(cmd, out, cfg) {
			problems++
		}
		fmt.Fprintln(out)

		// Step 4: Relay
		fmt.Fprintln(out, infoStyle.Render("Step 4: Checking relay endpoint..."))
		if cfg.RelayConfigured() {
			fmt.Fprintln(out, successStyle.Render("✓ Relay endpoint configured"))
			if doctorVerbose {
				fmt.Fprintf(out, "   URL: %s\n", cfg.Relay.URL)
				fmt.Fprintf(out, "   Model: %s\n", cfg.Relay.Model)
				fmt.Fprintf(out, "   Timeout: %s\n", cfg.Relay.Timeout)
			}
		} else {
			fmt.Fprintln(out, warningStyle.Render("⚠ Relay endpoint not configured"))
			fmt.Fprintln(out, "   Set relay.url in config.yaml or ROUTINE_RELAY_URL to enable chat and routines")
		}
		fmt.Fprintln(out)

		if problems > 0 {
			fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("✗ %d check(s) failed", problems)))
			return fmt.Errorf("health check failed with %d problem(s)", problems)
		}
		fmt.Fprintln(out, successStyle.Render("✓ All checks passed"))
		return nil
	},
}

func checkStateStore(out io.Writer, cfg *internal.Config) bool {
	paths := internal.DataPathsAt(cfg.DataDir)
	if cfg.State.Path == paths.StatePath && !paths.StateExists() {
		fmt.Fprintln(out, "   No saved session yet, a new state file will be created")
	}

	store, err := internal.OpenStateStore(cfg.State.Driver, cfg.State.Path)
	if err != nil {
		fmt.Fprintln(out, errorStyle.Render("✗ Failed to open state store:"), err)
		return false
	}
	defer store.Close()

	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ %s state store opened", cfg.State.Driver)))
	if doctorVerbose {
		fmt.Fprintf(out, "   Path: %s\n", cfg.State.Path)
	}
	if sqlite, ok := store.(*internal.SQLiteStore); ok && doctorVerbose {
		if pairs, err := sqlite.Pairs(); err == nil {
			for _, pair := range pairs {
				fmt.Fprintf(out, "   Row %s: %d bytes\n", pair.Key, len(pair.Value))
			}
		}
	}
	for _, key := range []string{internal.SelectedStorageKey, internal.ChatHistoryKey} {
		_, ok, err := store.Get(key)
		switch {
		case err != nil:
			fmt.Fprintln(out, warningStyle.Render("⚠ Failed to read "+key+":"), err)
		case ok && doctorVerbose:
			fmt.Fprintf(out, "   %s: present\n", key)
		case doctorVerbose:
			fmt.Fprintf(out, "   %s: empty\n", key)
		}
	}
	return true
}

func checkCatalog(cmd *cobra.Command, out io.Writer, cfg *internal.Config) bool {
	if doctorClearCache {
		cache := internal.NewCatalogCache(cfg.CacheDir())
		if err := cache.ClearCache(); err != nil {
			fmt.Fprintln(out, warningStyle.Render("⚠ Failed to clear catalogue snapshot:"), err)
		} else {
			fmt.Fprintln(out, successStyle.Render("✓ Catalogue snapshot cleared"))
		}
	}

	products, err := newCatalog(cfg).Load(cmd.Context())
	if err != nil {
		fmt.Fprintln(out, errorStyle.Render("✗ Catalogue unavailable:"), err)
		fmt.Fprintf(out, "   Source: %s\n", cfg.Catalog.Source)
		return false
	}

	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ %d product(s) in %d categories",
		len(products), len(internal.Categories(products)))))
	if doctorVerbose {
		fmt.Fprintf(out, "   Source: %s\n", cfg.Catalog.Source)
		if cfg.Catalog.Snapshot {
			cache := internal.NewCatalogCache(cfg.CacheDir())
			if meta, err := cache.LoadMetadata(); err == nil {
				fmt.Fprintf(out, "   Snapshot: %d product(s) from %s\n",
					meta.ProductCount, meta.FetchedAt.Format("2006-01-02 15:04"))
			} else {
				fmt.Fprintln(out, "   Snapshot: none")
			}
		}
	}
	return true
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func init() {
	doctorCmd.Flags().BoolVarP(&doctorVerbose, "details", "d", false, "Show detailed information")
	doctorCmd.Flags().BoolVar(&doctorClearCache, "clear-cache", false, "Remove the catalogue snapshot before checking")
	rootCmd.AddCommand(doctorCmd)
}
