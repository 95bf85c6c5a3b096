package mcp

import (
	"github.com/custodia-labs/revisify/internal/core/ports/driven"
	"github.com/custodia-labs/revisify/internal/core/ports/driving"
)

// Ports aggregates the ports required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Edit owns the draft buffer.
	Edit driving.EditService

	// Publish snapshots the draft into the published note.
	Publish driving.PublishService

	// View reads the published note.
	View driving.ViewService

	// Renderer backs the render_markdown tool.
	Renderer driven.Renderer
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Edit == nil {
		return ErrMissingEditService
	}
	if p.View == nil {
		return ErrMissingViewService
	}
	// Publish and Renderer are optional; their tools are not registered
	return nil
}
