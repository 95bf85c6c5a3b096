package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/revisify/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for revisify resources.
	uriScheme = "revisify://"

	mimeMarkdown = "text/markdown"
	mimeHTML     = "text/html"
	mimeJSON     = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "draft",
		Name:        "draft",
		Description: "Markdown source of the note being edited",
		MIMEType:    mimeMarkdown,
	}, s.handleDraftResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "draft/html",
		Name:        "draft-preview",
		Description: "Rendered preview of the note being edited",
		MIMEType:    mimeHTML,
	}, s.handleDraftPreviewResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "note",
		Name:        "note",
		Description: "Markdown source of the published note",
		MIMEType:    mimeMarkdown,
	}, s.handleNoteResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "note/html",
		Name:        "note-html",
		Description: "Rendered published note as shown by the viewer",
		MIMEType:    mimeHTML,
	}, s.handleNoteHTMLResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "blocks",
		Name:        "blocks",
		Description: "Styled block labels accepted by wrap_selection",
		MIMEType:    mimeJSON,
	}, s.handleBlocksResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "blocks/{label}",
		Name:        "block-markup",
		Description: "Empty markup for a styled block",
		MIMEType:    mimeMarkdown,
	}, s.handleBlockResource)
}

// handleDraftResource returns the saved draft.
func (s *Server) handleDraftResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if _, err := s.ports.Edit.Start(ctx); err != nil {
		return nil, fmt.Errorf("loading draft: %w", err)
	}
	return textResult(req, mimeMarkdown, s.ports.Edit.Buffer().Text), nil
}

// handleDraftPreviewResource returns the rendered draft.
func (s *Server) handleDraftPreviewResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	rendered, err := s.ports.Edit.Start(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading draft: %w", err)
	}
	return textResult(req, mimeHTML, rendered.HTML), nil
}

// handleNoteResource returns the published note, or the placeholder.
func (s *Server) handleNoteResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	viewed, err := s.ports.View.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading note: %w", err)
	}
	return textResult(req, mimeMarkdown, viewed.Source), nil
}

func (s *Server) handleNoteHTMLResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	viewed, err := s.ports.View.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading note: %w", err)
	}
	return textResult(req, mimeHTML, viewed.HTML), nil
}

func (s *Server) handleBlocksResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	labels := domain.BlockLabels()
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = l.String()
	}

	data, err := json.Marshal(names)
	if err != nil {
		return nil, fmt.Errorf("marshalling blocks: %w", err)
	}
	return textResult(req, mimeJSON, string(data)), nil
}

// handleBlockResource returns the empty block inserted for a label.
func (s *Server) handleBlockResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract label from URI: revisify://blocks/{label}
	label, err := domain.ParseBlockLabel(extractBlockLabel(req.Params.URI))
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return textResult(req, mimeMarkdown, domain.EmptyBlock(label)), nil
}

func textResult(req *mcp.ReadResourceRequest, mimeType, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: mimeType,
			Text:     text,
		}},
	}
}

// extractBlockLabel extracts the label from a URI like revisify://blocks/{label}.
func extractBlockLabel(uri string) string {
	const prefix = uriScheme + "blocks/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
