package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render markdown to sanitized HTML",
	Long: `Render a markdown file, or standard input when file is - or omitted, with
the same pipeline the preview uses: GitHub flavoured markdown, math, syntax
highlighting, styled blocks and HTML sanitization.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if htmlRenderer == nil {
		return errRendererNotConfigured
	}

	var (
		src []byte
		err error
	)
	if len(args) == 1 && args[0] != "-" {
		src, err = os.ReadFile(args[0])
	} else {
		src, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("failed to read markdown: %w", err)
	}

	html, err := htmlRenderer.Render(cmd.Context(), string(src))
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	cmd.Println(html)
	return nil
}
