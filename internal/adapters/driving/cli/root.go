// Package cli provides the revisify command line interface.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/revisify/internal/core/ports/driven"
	"github.com/custodia-labs/revisify/internal/core/ports/driving"
	"github.com/custodia-labs/revisify/internal/logger"
)

// version is set at build time.
var version = "dev"

var verbose bool

// Services used by commands. They are injected by main before Execute.
var (
	editService     driving.EditService
	publishService  driving.PublishService
	viewService     driving.ViewService
	settingsService driving.SettingsService
	configStore     driven.ConfigStore
	htmlRenderer    driven.Renderer
)

var (
	errEditNotConfigured     = errors.New("edit service not configured")
	errPublishNotConfigured  = errors.New("publish service not configured")
	errViewNotConfigured     = errors.New("view service not configured")
	errSettingsNotConfigured = errors.New("settings service not configured")
	errConfigNotConfigured   = errors.New("config store not configured")
	errRendererNotConfigured = errors.New("renderer not configured")
)

var rootCmd = &cobra.Command{
	Use:   "revisify",
	Short: "Markdown notes with a live preview and a companion viewer",
	Long: `Revisify is a markdown note editor with live preview, math, syntax
highlighting and styled study blocks (definition, theory, note, formula,
warning). Publish a note and read it in the viewer, in the terminal or in
the browser.

Run 'revisify edit' for the terminal editor or 'revisify serve' for the
browser editor.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetServices sets the note services used by commands.
func SetServices(edit driving.EditService, publish driving.PublishService, view driving.ViewService) {
	editService = edit
	publishService = publish
	viewService = view
}

// SetSettingsService sets the settings service.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetConfigStore sets the raw configuration store used by the config command.
func SetConfigStore(s driven.ConfigStore) {
	configStore = s
}

// SetRenderer sets the HTML renderer used by the render and view commands.
func SetRenderer(r driven.Renderer) {
	htmlRenderer = r
}

// Execute runs the root command. Cancelling ctx stops long-running commands.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
