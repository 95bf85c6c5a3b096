// Package tui provides an interactive terminal editor for revisify.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/revisify/internal/core/ports/driving"
)

// Resizer is implemented by renderers that wrap output to a width.
type Resizer interface {
	SetWidth(width int)
}

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Edit owns the draft buffer.
	Edit driving.EditService

	// Publish snapshots the draft for the viewer.
	Publish driving.PublishService

	// View renders the published note.
	View driving.ViewService

	// Preview is the renderer behind Edit, told the preview pane width.
	// Optional.
	Preview Resizer

	// Viewer is the renderer behind View, told the viewer width. Optional.
	Viewer Resizer
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	edit driving.EditService,
	publish driving.PublishService,
	view driving.ViewService,
) *Ports {
	return &Ports{
		Edit:    edit,
		Publish: publish,
		View:    view,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Edit == nil {
		return ErrMissingEditService
	}
	if p.Publish == nil {
		return ErrMissingPublishService
	}
	if p.View == nil {
		return ErrMissingViewService
	}
	return nil
}
