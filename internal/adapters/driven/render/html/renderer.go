package html

import (
	"bytes"
	"context"
	"fmt"
	"regexp"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/custodia-labs/revisify/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.Renderer = (*Renderer)(nil)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// classPattern limits class attributes to plain class lists.
var classPattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-_]+$`)

// Renderer converts markdown to sanitized HTML.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	style  string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHighlightStyle selects the chroma style used by CSS.
func WithHighlightStyle(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.style = name
		}
	}
}

// New creates a renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{style: DefaultStyle}
	for _, opt := range opts {
		opt(r)
	}

	r.md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(r.style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
			&mathExtension{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
			gmhtml.WithUnsafe(),
		),
	)
	r.policy = newPolicy()
	return r
}

// newPolicy extends the UGC policy with styled blocks, highlighting
// classes and embedded images.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(classPattern).OnElements("div", "span", "code", "pre")
	p.AllowDataURIImages()
	return p
}

// Render converts src to a sanitized HTML fragment.
func (r *Renderer) Render(ctx context.Context, src string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return r.policy.SanitizeReader(&buf).String(), nil
}

// Style returns the configured highlight style name.
func (r *Renderer) Style() string {
	return r.style
}

// CSS returns the stylesheet for highlighted code blocks.
// Unknown style names fall back to chroma's default style.
func (r *Renderer) CSS() (string, error) {
	formatter := chromahtml.New(chromahtml.WithClasses(true))

	var buf bytes.Buffer
	if err := formatter.WriteCSS(&buf, styles.Get(r.style)); err != nil {
		return "", fmt.Errorf("writing highlight css: %w", err)
	}
	return buf.String(), nil
}
