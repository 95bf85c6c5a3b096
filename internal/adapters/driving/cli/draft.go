package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/revisify/internal/adapters/driven/prompt"
	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/core/services"
)

// Selection flags shared by the editing subcommands. -1 means unset.
var (
	draftStart int
	draftEnd   int
)

var (
	draftCounts   bool
	insertBefore  string
	insertAfter   string
	imageURL      string
	imageAlt      string
	imageFile     string
	imageNoPrompt bool
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Read and edit the saved draft",
	Long: `Edit the saved draft without opening an editor. Every change is saved
immediately, exactly as if it had been typed in the editor.

Positions given with --start and --end count characters (Unicode code points)
from the beginning of the draft. Without them the caret is at the end.`,
	RunE: runDraftShow,
}

var draftShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the draft",
	Args:  cobra.NoArgs,
	RunE:  runDraftShow,
}

var draftSetCmd = &cobra.Command{
	Use:   "set [text]",
	Short: "Replace the draft",
	Long:  `Replace the draft with text, or with standard input when text is - or omitted.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDraftSet,
}

var draftInsertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Insert text around the selection",
	Args:  cobra.NoArgs,
	RunE:  runDraftInsert,
}

var draftWrapCmd = &cobra.Command{
	Use:   "wrap <label>",
	Short: "Wrap the selection in a styled block",
	Long: `Wrap the selection in a styled block. With an empty selection an empty
block with placeholder content is inserted.

Labels: definition, theory, note, formula, warning`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: blockLabelNames(),
	RunE:      runDraftWrap,
}

var draftTableCmd = &cobra.Command{
	Use:   "table",
	Short: "Insert the table template",
	Args:  cobra.NoArgs,
	RunE:  runDraftTable,
}

var draftImageCmd = &cobra.Command{
	Use:   "image",
	Short: "Insert an image",
	Long: `Insert an image reference. With --file the image is embedded as a data
URL and the alt text is the file name. With --url and --alt the reference is
inserted directly. Otherwise the URL and alt text are asked for.`,
	Args: cobra.NoArgs,
	RunE: runDraftImage,
}

func init() {
	for _, c := range []*cobra.Command{draftInsertCmd, draftWrapCmd, draftTableCmd, draftImageCmd} {
		c.Flags().IntVar(&draftStart, "start", -1, "selection start")
		c.Flags().IntVar(&draftEnd, "end", -1, "selection end (defaults to start)")
	}

	draftShowCmd.Flags().BoolVar(&draftCounts, "counts", false, "print word, character and line counts")

	draftInsertCmd.Flags().StringVar(&insertBefore, "before", "", "text inserted before the selection")
	draftInsertCmd.Flags().StringVar(&insertAfter, "after", "", "text inserted after the selection")

	draftImageCmd.Flags().StringVar(&imageURL, "url", "", "image URL")
	draftImageCmd.Flags().StringVar(&imageAlt, "alt", "", "alt text")
	draftImageCmd.Flags().StringVar(&imageFile, "file", "", "embed a local image file")
	draftImageCmd.Flags().BoolVar(&imageNoPrompt, "no-prompt", false, "use defaults instead of asking")
	draftImageCmd.MarkFlagsMutuallyExclusive("file", "url")

	draftCmd.AddCommand(draftShowCmd)
	draftCmd.AddCommand(draftSetCmd)
	draftCmd.AddCommand(draftInsertCmd)
	draftCmd.AddCommand(draftWrapCmd)
	draftCmd.AddCommand(draftTableCmd)
	draftCmd.AddCommand(draftImageCmd)
	rootCmd.AddCommand(draftCmd)
}

func blockLabelNames() []string {
	labels := domain.BlockLabels()
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.String())
	}
	return names
}

func runDraftShow(cmd *cobra.Command, _ []string) error {
	if err := startEditor(cmd.Context()); err != nil {
		return err
	}

	buf := editService.Buffer()
	cmd.Print(buf.Text)
	if buf.Text != "" && !strings.HasSuffix(buf.Text, "\n") {
		cmd.Println()
	}
	if draftCounts {
		cmd.Println(buf.Counts())
	}
	return nil
}

func runDraftSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := startEditor(ctx); err != nil {
		return err
	}

	var text string
	if len(args) == 1 && args[0] != "-" {
		text = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read draft: %w", err)
		}
		text = string(data)
	}

	b := domain.NewBuffer(text)
	rendered, err := editService.OnTextChanged(ctx, b.Text, b.Selection)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	printSaved(cmd, rendered)
	return nil
}

func runDraftInsert(cmd *cobra.Command, _ []string) error {
	if insertBefore == "" && insertAfter == "" {
		return fmt.Errorf("%w: --before or --after is required", domain.ErrInvalidInput)
	}
	return editAt(cmd, func(ctx context.Context) (*domain.Rendered, error) {
		return editService.Insert(ctx, insertBefore, insertAfter)
	})
}

func runDraftWrap(cmd *cobra.Command, args []string) error {
	return editAt(cmd, func(ctx context.Context) (*domain.Rendered, error) {
		return editService.WrapSelection(ctx, args[0])
	})
}

func runDraftTable(cmd *cobra.Command, _ []string) error {
	return editAt(cmd, func(ctx context.Context) (*domain.Rendered, error) {
		return editService.InsertTableTemplate(ctx)
	})
}

func runDraftImage(cmd *cobra.Command, _ []string) error {
	switch {
	case imageFile != "":
		return editAt(cmd, func(ctx context.Context) (*domain.Rendered, error) {
			return editService.InsertImageFile(ctx, imageFile)
		})
	case imageURL != "" || imageAlt != "" || imageNoPrompt:
		return editAt(cmd, func(ctx context.Context) (*domain.Rendered, error) {
			return editService.InsertImage(ctx, imageAlt, imageURL)
		})
	}

	return editAt(cmd, func(ctx context.Context) (*domain.Rendered, error) {
		ctx = services.WithPrompter(ctx, prompt.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout()))
		inserted, err := editService.PromptImage(ctx)
		if err != nil {
			return nil, err
		}
		if !inserted {
			cmd.Println("Cancelled.")
			return nil, nil
		}
		rendered := editService.Rendered()
		return &rendered, nil
	})
}

// editAt loads the draft, applies the selection flags and runs op.
func editAt(cmd *cobra.Command, op func(context.Context) (*domain.Rendered, error)) error {
	ctx := cmd.Context()
	if err := startEditor(ctx); err != nil {
		return err
	}

	if draftStart >= 0 {
		end := draftEnd
		if end < 0 {
			end = draftStart
		}
		if err := editService.Select(domain.Selection{Start: draftStart, End: end}); err != nil {
			return err
		}
	}

	rendered, err := op(ctx)
	if err != nil {
		return err
	}
	if rendered != nil {
		printSaved(cmd, rendered)
	}
	return nil
}

func printSaved(cmd *cobra.Command, rendered *domain.Rendered) {
	cmd.Printf("Draft saved. %s\n", rendered.Counts)
}
