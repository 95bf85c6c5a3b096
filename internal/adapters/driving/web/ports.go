package web

import "github.com/custodia-labs/revisify/internal/core/ports/driving"

// Ports aggregates the services the web server drives.
type Ports struct {
	Edit    driving.EditService
	Publish driving.PublishService
	View    driving.ViewService
}

// Validate ensures all required ports are set.
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
