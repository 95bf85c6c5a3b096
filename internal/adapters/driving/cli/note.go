package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/revisify/internal/adapters/driven/prompt"
	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/core/services"
)

var (
	viewWatch    bool
	viewRaw      bool
	viewHTML     bool
	viewInterval time.Duration
	exportOutput string
	clearYes     bool
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the saved draft to the viewer",
	Long: `Snapshot the saved draft as the published note. Open viewers pick up
the new revision on their next update.`,
	Args: cobra.NoArgs,
	RunE: runPublish,
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the published note",
	Long: `Show the published note rendered for the terminal.

Use --raw for the markdown source or --html for the sanitized HTML fragment.
With --watch the command keeps running and prints every new revision.`,
	Args: cobra.NoArgs,
	RunE: runView,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the draft as a markdown file",
	Long: `Write the saved draft to revisify-note-YYYY-MM-DD.md in the current
directory, or to the path given with --output. Use --output - for stdout.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the draft",
	Long:  `Empty the editor and remove the saved draft. Asks for confirmation unless --yes is given.`,
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	viewCmd.Flags().BoolVarP(&viewWatch, "watch", "w", false, "keep running and print new revisions")
	viewCmd.Flags().BoolVar(&viewRaw, "raw", false, "print the markdown source")
	viewCmd.Flags().BoolVar(&viewHTML, "html", false, "print the sanitized HTML")
	viewCmd.Flags().DurationVar(&viewInterval, "interval", 0, "poll interval when the store cannot push updates")
	viewCmd.MarkFlagsMutuallyExclusive("raw", "html")

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output path, - for stdout")
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip the confirmation")

	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(clearCmd)
}

// startEditor loads the saved draft into the edit session.
func startEditor(ctx context.Context) error {
	if editService == nil {
		return errEditNotConfigured
	}
	if _, err := editService.Start(ctx); err != nil {
		return fmt.Errorf("failed to load draft: %w", err)
	}
	return nil
}

func runPublish(cmd *cobra.Command, _ []string) error {
	if publishService == nil {
		return errPublishNotConfigured
	}
	ctx := cmd.Context()
	if err := startEditor(ctx); err != nil {
		return err
	}

	note, err := publishService.Publish(ctx)
	if err != nil {
		return fmt.Errorf("failed to publish: %w", err)
	}

	cmd.Println("Sent!")
	cmd.Printf("  Revision: %s\n", note.Revision)
	cmd.Printf("  Published: %s\n", note.PublishedAt.Local().Format(time.RFC1123))
	cmd.Printf("  Characters: %d\n", domain.CountText(note.Text).Chars)
	return nil
}

func runView(cmd *cobra.Command, _ []string) error {
	if viewService == nil {
		return errViewNotConfigured
	}
	if viewHTML && htmlRenderer == nil {
		return errRendererNotConfigured
	}
	ctx := cmd.Context()

	if !viewWatch {
		note, err := viewService.Load(ctx)
		if err != nil {
			return fmt.Errorf("failed to load note: %w", err)
		}
		return printNote(cmd, note)
	}

	updates, err := viewService.Watch(ctx, viewInterval)
	if err != nil {
		return fmt.Errorf("failed to watch note: %w", err)
	}
	for note := range updates {
		if err := printNote(cmd, &note); err != nil {
			return err
		}
	}
	return nil
}

// printNote writes one note in the selected format.
func printNote(cmd *cobra.Command, note *domain.ViewedNote) error {
	if viewWatch {
		if note.IsPlaceholder() {
			cmd.Println("--- nothing published yet ---")
		} else {
			cmd.Printf("--- revision %s, %s ---\n",
				note.Revision(), note.Note.PublishedAt.Local().Format(time.RFC1123))
		}
	}

	switch {
	case viewRaw:
		cmd.Println(note.Source)
	case viewHTML:
		html, err := htmlRenderer.Render(cmd.Context(), note.Source)
		if err != nil {
			return fmt.Errorf("failed to render note: %w", err)
		}
		cmd.Println(html)
	default:
		cmd.Print(note.HTML)
	}
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := startEditor(ctx); err != nil {
		return err
	}

	export := editService.Export(ctx)
	if exportOutput == "-" {
		cmd.Print(string(export.Content))
		return nil
	}

	path := exportOutput
	if path == "" {
		path = export.Filename
	}
	if err := os.WriteFile(path, export.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	cmd.Printf("Exported draft to %s\n", abs)
	return nil
}

func runClear(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := startEditor(ctx); err != nil {
		return err
	}

	if clearYes {
		ctx = services.WithPrompter(ctx, prompt.Confirmed())
	} else {
		ctx = services.WithPrompter(ctx, prompt.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout()))
	}

	cleared, err := editService.Clear(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	if cleared {
		cmd.Println("Draft cleared.")
	} else {
		cmd.Println("Draft kept.")
	}
	return nil
}
