package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/revisify/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the draft store, the local web server, the viewer and
the renderers.

Use subcommands to configure specific settings or run the interactive wizard.
Changes take effect the next time revisify starts.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsStoreCmd = &cobra.Command{
	Use:   "store <backend>",
	Short: "Set the draft store backend",
	Long: `Set where drafts and published notes are kept.

Available backends:
  sqlite - SQLite database (default)
  file   - TOML file; viewers in other processes update immediately
  memory - Nothing is persisted`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"sqlite", "file", "memory"},
	RunE:      runSettingsStore,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsStoreCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Store]")
	cmd.Printf("  Backend: %s\n", settings.Store.Backend.Description())
	path := settings.Store.Path
	if path == "" {
		path = "(default)"
	}
	cmd.Printf("  Path: %s\n", path)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	if settings.Server.RateLimit > 0 {
		cmd.Printf("  Rate limit: %d requests/s\n", settings.Server.RateLimit)
	} else {
		cmd.Println("  Rate limit: off")
	}
	cmd.Println()

	cmd.Println("[Viewer]")
	cmd.Printf("  Poll interval: %s\n", settings.Viewer.PollInterval)
	cmd.Println()

	cmd.Println("[Render]")
	cmd.Printf("  Highlight style: %s\n", settings.Render.HighlightStyle)
	cmd.Printf("  Terminal style: %s\n", settings.Render.TerminalStyle)

	return nil
}

func runSettingsStore(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	backend := domain.StoreBackend(strings.ToLower(args[0]))
	if !backend.IsValid() {
		return fmt.Errorf("%w: unknown store backend %q", domain.ErrInvalidInput, args[0])
	}
	if err := settingsService.SetStoreBackend(backend); err != nil {
		return fmt.Errorf("failed to set store backend: %w", err)
	}

	cmd.Printf("Store backend set to: %s\n", backend.Description())
	return nil
}

//nolint:funlen // linear wizard flow
func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Revisify Settings Wizard")
	cmd.Println("========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Store backend
	cmd.Println("Step 1: Select Draft Store")
	cmd.Println("--------------------------")
	backends := []domain.StoreBackend{
		domain.StoreBackendSQLite, domain.StoreBackendFile, domain.StoreBackendMemory,
	}
	current := 1
	for i, b := range backends {
		cmd.Printf("  %d. %s\n", i+1, b.Description())
		if b == settings.Store.Backend {
			current = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	settings.Store.Backend = backends[parseChoice(readLine(reader), len(backends), current)-1]
	cmd.Println()

	// Step 2: Web server
	cmd.Println("Step 2: Web Server")
	cmd.Println("------------------")
	cmd.Printf("Listen address [%s]: ", settings.Server.Addr)
	if input := readLine(reader); input != "" {
		settings.Server.Addr = input
	}
	cmd.Printf("Rate limit in requests/s, 0 for none [%d]: ", settings.Server.RateLimit)
	if input := readLine(reader); input != "" {
		n, err := strconv.Atoi(input)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: rate limit %q", domain.ErrInvalidInput, input)
		}
		settings.Server.RateLimit = n
	}
	cmd.Println()

	// Step 3: Viewer
	cmd.Println("Step 3: Viewer")
	cmd.Println("--------------")
	cmd.Printf("Poll interval [%s]: ", settings.Viewer.PollInterval)
	if input := readLine(reader); input != "" {
		d, err := time.ParseDuration(input)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: poll interval %q", domain.ErrInvalidInput, input)
		}
		settings.Viewer.PollInterval = d
	}
	cmd.Println()

	// Step 4: Rendering
	cmd.Println("Step 4: Rendering")
	cmd.Println("-----------------")
	cmd.Printf("Code highlight style [%s]: ", settings.Render.HighlightStyle)
	if input := readLine(reader); input != "" {
		settings.Render.HighlightStyle = input
	}
	cmd.Printf("Terminal style (auto, dark, light, notty) [%s]: ", settings.Render.TerminalStyle)
	if input := readLine(reader); input != "" {
		settings.Render.TerminalStyle = input
	}
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Settings saved.")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
