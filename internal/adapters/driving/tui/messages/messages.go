// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/revisify/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewEditor is the editor with its live preview.
	ViewEditor ViewType = iota
	// ViewViewer shows the published note.
	ViewViewer
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewEditor:
		return "editor"
	case ViewViewer:
		return "viewer"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// DraftLoaded carries the initial render of the draft.
type DraftLoaded struct {
	Rendered *domain.Rendered
	Err      error
}

// NotePublished signals a publish finished.
type NotePublished struct {
	Note *domain.PublishedNote
	Err  error
}

// NoteLoaded carries the published note for the viewer.
// Stream identifies the watch that produced it; Closed is set when that
// watch ended and no more notes will follow.
type NoteLoaded struct {
	Viewed *domain.ViewedNote
	Err    error
	Stream int
	Closed bool
}

// FlashExpired clears a transient status message. ID matches the flash
// that scheduled it so a newer flash is not cleared early.
type FlashExpired struct {
	ID int
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
