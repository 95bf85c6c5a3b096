package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/revisify/internal/adapters/driven/prompt"
	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/core/services"
)

// SelectionInput is the input schema for tools that only take a selection.
// Offsets count Unicode code points. Omitting both keeps the caret at the
// end of the draft; omitting end places a caret at start.
type SelectionInput struct {
	Start *int `json:"start,omitempty" jsonschema:"selection start offset in characters"`
	End   *int `json:"end,omitempty" jsonschema:"selection end offset in characters"`
}

// EmptyInput is the input schema for tools without arguments.
type EmptyInput struct{}

// DraftOutput describes the draft after a tool call.
type DraftOutput struct {
	Text      string           `json:"text"`
	Selection domain.Selection `json:"selection"`
	Words     int              `json:"words"`
	Chars     int              `json:"chars"`
	Lines     int              `json:"lines"`
}

// UpdateDraftInput is the input schema for the update_draft tool.
type UpdateDraftInput struct {
	Text  string `json:"text" jsonschema:"the complete new draft text"`
	Start *int   `json:"start,omitempty" jsonschema:"selection start offset in characters"`
	End   *int   `json:"end,omitempty" jsonschema:"selection end offset in characters"`
}

// InsertInput is the input schema for the insert tool.
type InsertInput struct {
	Before string `json:"before" jsonschema:"text inserted before the selection"`
	After  string `json:"after,omitempty" jsonschema:"text inserted after the selection"`
	Start  *int   `json:"start,omitempty" jsonschema:"selection start offset in characters"`
	End    *int   `json:"end,omitempty" jsonschema:"selection end offset in characters"`
}

// WrapInput is the input schema for the wrap_selection tool.
type WrapInput struct {
	Label string `json:"label" jsonschema:"block style: definition, theory, note, formula or warning"`
	Start *int   `json:"start,omitempty" jsonschema:"selection start offset in characters"`
	End   *int   `json:"end,omitempty" jsonschema:"selection end offset in characters"`
}

// ImageInput is the input schema for the insert_image tool.
type ImageInput struct {
	URL   string `json:"url,omitempty" jsonschema:"image URL (default placeholder image)"`
	Alt   string `json:"alt,omitempty" jsonschema:"alt text (default Image)"`
	Start *int   `json:"start,omitempty" jsonschema:"selection start offset in characters"`
	End   *int   `json:"end,omitempty" jsonschema:"selection end offset in characters"`
}

// ClearInput is the input schema for the clear_draft tool.
type ClearInput struct {
	Confirm bool `json:"confirm" jsonschema:"must be true to clear the draft"`
}

// ClearOutput is the output schema for the clear_draft tool.
type ClearOutput struct {
	Cleared bool `json:"cleared"`
}

// PublishOutput is the output schema for the publish tool.
type PublishOutput struct {
	Revision    string    `json:"revision"`
	PublishedAt time.Time `json:"published_at"`
	Chars       int       `json:"chars"`
}

// NoteOutput is the output schema for the view_note tool.
type NoteOutput struct {
	Published   bool       `json:"published"`
	Text        string     `json:"text"`
	HTML        string     `json:"html"`
	Revision    string     `json:"revision,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// RenderInput is the input schema for the render_markdown tool.
type RenderInput struct {
	Markdown string `json:"markdown" jsonschema:"markdown to render"`
}

// RenderOutput is the output schema for the render_markdown tool.
type RenderOutput struct {
	HTML string `json:"html"`
}

// ExportOutput is the output schema for the export_draft tool.
type ExportOutput struct {
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type"`
	Content  string `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_draft",
		Description: "Read the current note draft with word, character and line counts",
	}, s.handleGetDraft)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_draft",
		Description: "Replace the whole draft text",
	}, s.handleUpdateDraft)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "insert",
		Description: "Insert text before and after the selection, e.g. ** and ** for bold",
	}, s.handleInsert)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "wrap_selection",
		Description: "Wrap the selection in a styled block; an empty selection inserts an empty block",
	}, s.handleWrap)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "insert_table",
		Description: "Insert a three column table skeleton",
	}, s.handleInsertTable)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "insert_image",
		Description: "Insert a markdown image reference",
	}, s.handleInsertImage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clear_draft",
		Description: "Empty the draft and delete the saved copy",
	}, s.handleClear)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export_draft",
		Description: "Return the draft as a downloadable markdown file",
	}, s.handleExport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "view_note",
		Description: "Read the published note as markdown and sanitized HTML",
	}, s.handleViewNote)

	if s.ports.Publish != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "publish",
			Description: "Publish the current draft so viewers show it",
		}, s.handlePublish)
	}

	if s.ports.Renderer != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "render_markdown",
			Description: "Render markdown with math and code highlighting to sanitized HTML",
		}, s.handleRender)
	}
}

// handleGetDraft reloads the draft from the store and returns it.
func (s *Server) handleGetDraft(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, DraftOutput, error) {
	if _, err := s.ports.Edit.Start(ctx); err != nil {
		return nil, DraftOutput{}, err
	}
	return nil, s.draftOutput(), nil
}

func (s *Server) handleUpdateDraft(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateDraftInput,
) (*mcp.CallToolResult, DraftOutput, error) {
	sel := domain.Caret(len([]rune(input.Text)))
	if input.Start != nil || input.End != nil {
		sel = selectionFrom(SelectionInput{Start: input.Start, End: input.End}, sel)
	}
	if _, err := s.ports.Edit.OnTextChanged(ctx, input.Text, sel); err != nil {
		return nil, DraftOutput{}, err
	}
	return nil, s.draftOutput(), nil
}

func (s *Server) handleInsert(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input InsertInput,
) (*mcp.CallToolResult, DraftOutput, error) {
	return s.edit(ctx, SelectionInput{Start: input.Start, End: input.End}, func() error {
		_, err := s.ports.Edit.Insert(ctx, input.Before, input.After)
		return err
	})
}

func (s *Server) handleWrap(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input WrapInput,
) (*mcp.CallToolResult, DraftOutput, error) {
	return s.edit(ctx, SelectionInput{Start: input.Start, End: input.End}, func() error {
		_, err := s.ports.Edit.WrapSelection(ctx, input.Label)
		return err
	})
}

func (s *Server) handleInsertTable(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SelectionInput,
) (*mcp.CallToolResult, DraftOutput, error) {
	return s.edit(ctx, input, func() error {
		_, err := s.ports.Edit.InsertTableTemplate(ctx)
		return err
	})
}

func (s *Server) handleInsertImage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ImageInput,
) (*mcp.CallToolResult, DraftOutput, error) {
	return s.edit(ctx, SelectionInput{Start: input.Start, End: input.End}, func() error {
		_, err := s.ports.Edit.InsertImage(ctx, input.Alt, input.URL)
		return err
	})
}

// handleClear clears only when the caller confirms in the request.
func (s *Server) handleClear(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClearInput,
) (*mcp.CallToolResult, ClearOutput, error) {
	answer := prompt.Declined()
	if input.Confirm {
		answer = prompt.Confirmed()
	}

	cleared, err := s.ports.Edit.Clear(services.WithPrompter(ctx, answer))
	if err != nil {
		return nil, ClearOutput{}, err
	}
	return nil, ClearOutput{Cleared: cleared}, nil
}

func (s *Server) handleExport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ExportOutput, error) {
	if _, err := s.ports.Edit.Start(ctx); err != nil {
		return nil, ExportOutput{}, err
	}
	export := s.ports.Edit.Export(ctx)
	return nil, ExportOutput{
		Filename: export.Filename,
		MIMEType: export.MIMEType,
		Content:  string(export.Content),
	}, nil
}

func (s *Server) handlePublish(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, PublishOutput, error) {
	// Publish what is saved, not what this process last saw
	if _, err := s.ports.Edit.Start(ctx); err != nil {
		return nil, PublishOutput{}, err
	}

	note, err := s.ports.Publish.Publish(ctx)
	if err != nil {
		return nil, PublishOutput{}, err
	}
	return nil, PublishOutput{
		Revision:    note.Revision,
		PublishedAt: note.PublishedAt,
		Chars:       len([]rune(note.Text)),
	}, nil
}

func (s *Server) handleViewNote(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, NoteOutput, error) {
	viewed, err := s.ports.View.Load(ctx)
	if err != nil {
		return nil, NoteOutput{}, err
	}
	return nil, noteOutput(viewed), nil
}

func (s *Server) handleRender(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RenderInput,
) (*mcp.CallToolResult, RenderOutput, error) {
	html, err := s.ports.Renderer.Render(ctx, input.Markdown)
	if err != nil {
		return nil, RenderOutput{}, fmt.Errorf("rendering markdown: %w", err)
	}
	return nil, RenderOutput{HTML: html}, nil
}

// edit reloads the draft, applies the selection, then runs fn.
func (s *Server) edit(
	ctx context.Context, sel SelectionInput, fn func() error,
) (*mcp.CallToolResult, DraftOutput, error) {
	if _, err := s.ports.Edit.Start(ctx); err != nil {
		return nil, DraftOutput{}, err
	}
	if sel.Start != nil || sel.End != nil {
		current := s.ports.Edit.Buffer().Selection
		if err := s.ports.Edit.Select(selectionFrom(sel, current)); err != nil {
			return nil, DraftOutput{}, fmt.Errorf("selecting: %w", err)
		}
	}
	if err := fn(); err != nil {
		return nil, DraftOutput{}, err
	}
	return nil, s.draftOutput(), nil
}

func (s *Server) draftOutput() DraftOutput {
	buf := s.ports.Edit.Buffer()
	counts := buf.Counts()
	return DraftOutput{
		Text:      buf.Text,
		Selection: buf.Selection,
		Words:     counts.Words,
		Chars:     counts.Chars,
		Lines:     counts.Lines,
	}
}

// selectionFrom fills missing ends from fallback; a lone start is a caret.
func selectionFrom(in SelectionInput, fallback domain.Selection) domain.Selection {
	sel := fallback
	if in.Start != nil {
		sel = domain.Caret(*in.Start)
	}
	if in.End != nil {
		sel.End = *in.End
	}
	return sel
}

func noteOutput(viewed *domain.ViewedNote) NoteOutput {
	out := NoteOutput{
		Published: !viewed.IsPlaceholder(),
		Text:      viewed.Source,
		HTML:      viewed.HTML,
		Revision:  viewed.Revision(),
	}
	if viewed.Note != nil {
		at := viewed.Note.PublishedAt
		out.PublishedAt = &at
	}
	return out
}
