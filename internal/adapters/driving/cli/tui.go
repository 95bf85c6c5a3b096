package cli

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/revisify/internal/adapters/driving/tui"
	"github.com/custodia-labs/revisify/internal/core/ports/driving"
	"github.com/custodia-labs/revisify/internal/logger"
)

// TUIConfig holds configuration for the edit command.
// The terminal editor uses its own services so the preview can be rendered
// for the terminal instead of the browser.
type TUIConfig struct {
	EditService    driving.EditService
	PublishService driving.PublishService
	ViewService    driving.ViewService

	// PreviewResizer and ViewerResizer are told the pane widths. Optional.
	PreviewResizer tui.Resizer
	ViewerResizer  tui.Resizer

	// PollInterval is the viewer's fallback poll interval.
	PollInterval time.Duration

	// LogFile receives log output while the editor owns the terminal.
	// Empty discards it.
	LogFile string
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// tuiCmd represents the edit command.
var tuiCmd = &cobra.Command{
	Use:     "edit",
	Aliases: []string{"tui"},
	Short:   "Open the terminal editor",
	Long: `Open the terminal editor with a live preview.

Every keystroke is saved. Press ctrl+s to publish and ctrl+r to open the
viewer.

Controls:
  ctrl+b / ctrl+e / ctrl+k / ctrl+f  Bold / italic / code / math
  ctrl+d / ctrl+t                    Definition / theory block
  alt+n / alt+f / alt+w              Note / formula / warning block
  ctrl+g / ctrl+o                    Table / image
  ctrl+l                             Clear
  f1                                 Help
  ctrl+q                             Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the edit command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{}
	var (
		interval time.Duration
		logFile  string
	)
	if tuiConfig != nil {
		ports.Edit = tuiConfig.EditService
		ports.Publish = tuiConfig.PublishService
		ports.View = tuiConfig.ViewService
		ports.Preview = tuiConfig.PreviewResizer
		ports.Viewer = tuiConfig.ViewerResizer
		interval = tuiConfig.PollInterval
		logFile = tuiConfig.LogFile
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context()).WithPollInterval(interval)

	restore, err := redirectLogs(logFile)
	if err != nil {
		return err
	}
	defer restore() //nolint:errcheck // best effort on exit

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// redirectLogs keeps log lines off the screen while the editor runs.
func redirectLogs(path string) (func() error, error) {
	if path == "" {
		logger.SetOutput(io.Discard)
		return func() error {
			logger.SetOutput(os.Stderr)
			return nil
		}, nil
	}
	restore, err := logger.RedirectToFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return restore, nil
}
