// Package terminal renders note markdown for display in a terminal.
package terminal

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.Renderer = (*Renderer)(nil)

// AutoStyle picks a light or dark style from the terminal background.
const AutoStyle = "auto"

// defaultWidth is used until the caller reports a size.
const defaultWidth = 80

// blockPattern matches a styled block as produced by the editor.
var blockPattern = regexp.MustCompile(`(?s)<div class="([a-z]+)">\s*\n(.*?)\n?\s*</div>`)

// Renderer renders markdown with glamour. Styled blocks become labelled
// quotes because terminals cannot show raw HTML.
type Renderer struct {
	mu    sync.Mutex
	style string
	width int
	term  *glamour.TermRenderer
}

// New creates a terminal renderer using a glamour standard style name
// (e.g. "dark", "light", "notty") or AutoStyle.
func New(style string) *Renderer {
	if style == "" {
		style = AutoStyle
	}
	return &Renderer{style: style, width: defaultWidth}
}

// SetWidth sets the wrap width. The next Render rebuilds the renderer.
func (r *Renderer) SetWidth(width int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width < 20 {
		width = 20
	}
	if width != r.width {
		r.width = width
		r.term = nil
	}
}

// Render converts src to ANSI-styled text.
func (r *Renderer) Render(ctx context.Context, src string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.term == nil {
		term, err := r.build()
		if err != nil {
			return "", err
		}
		r.term = term
	}

	out, err := r.term.Render(quoteBlocks(src))
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

func (r *Renderer) build() (*glamour.TermRenderer, error) {
	styleOpt := glamour.WithStandardStyle(r.style)
	if r.style == AutoStyle {
		styleOpt = glamour.WithAutoStyle()
	}

	term, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(r.width))
	if err != nil {
		return nil, fmt.Errorf("creating terminal renderer: %w", err)
	}
	return term, nil
}

// quoteBlocks rewrites known styled blocks as blockquotes headed by their label.
func quoteBlocks(src string) string {
	return blockPattern.ReplaceAllStringFunc(src, func(m string) string {
		parts := blockPattern.FindStringSubmatch(m)
		label, err := domain.ParseBlockLabel(parts[1])
		if err != nil {
			return m
		}

		var sb strings.Builder
		sb.WriteString("> **" + label.Title() + "**\n>\n")
		for _, line := range strings.Split(parts[2], "\n") {
			sb.WriteString("> " + line + "\n")
		}
		return sb.String()
	})
}
