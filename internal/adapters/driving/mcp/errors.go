// Package mcp provides an MCP (Model Context Protocol) server adapter for revisify.
// It lets AI assistants read and edit the draft, publish it and read the
// published note, using the same sessions as the editor.
package mcp

import "errors"

// ErrMissingEditService is returned when the edit service is not provided.
var ErrMissingEditService = errors.New("mcp: edit service is required")

// ErrMissingViewService is returned when the view service is not provided.
var ErrMissingViewService = errors.New("mcp: view service is required")
