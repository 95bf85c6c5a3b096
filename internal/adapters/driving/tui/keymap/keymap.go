// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
//
// Terminals report ctrl+i as Tab, so italic is bound to ctrl+e.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view or cancels a prompt.
	Back key.Binding

	// Publish sends the draft to the viewer.
	Publish key.Binding

	// Viewer opens the published note.
	Viewer key.Binding

	// Bold wraps the selection in **.
	Bold key.Binding

	// Italic wraps the selection in *.
	Italic key.Binding

	// Code wraps the selection in backticks.
	Code key.Binding

	// Math wraps the selection in $.
	Math key.Binding

	// Definition wraps the selection in a definition block.
	Definition key.Binding

	// Theory wraps the selection in a theory block.
	Theory key.Binding

	// Note wraps the selection in a note block.
	Note key.Binding

	// Formula wraps the selection in a formula block.
	Formula key.Binding

	// Warning wraps the selection in a warning block.
	Warning key.Binding

	// Table inserts the table template.
	Table key.Binding

	// Image prompts for an image reference.
	Image key.Binding

	// Clear empties the editor after confirmation.
	Clear key.Binding

	// SelectAll selects the whole draft.
	SelectAll key.Binding

	// Up scrolls up in the viewer.
	Up key.Binding

	// Down scrolls down in the viewer.
	Down key.Binding

	// Confirm accepts a prompt.
	Confirm key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Publish: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "publish"),
		),
		Viewer: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "view note"),
		),
		Bold: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "bold"),
		),
		Italic: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "italic"),
		),
		Code: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "code"),
		),
		Math: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "math"),
		),
		Definition: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "definition"),
		),
		Theory: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "theory"),
		),
		Note: key.NewBinding(
			key.WithKeys("alt+n"),
			key.WithHelp("alt+n", "note"),
		),
		Formula: key.NewBinding(
			key.WithKeys("alt+f"),
			key.WithHelp("alt+f", "formula"),
		),
		Warning: key.NewBinding(
			key.WithKeys("alt+w"),
			key.WithHelp("alt+w", "warning"),
		),
		Table: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "table"),
		),
		Image: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "image"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "select all"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("enter/y", "confirm"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Publish, k.Viewer, k.Help, k.Quit}
}

// ViewerHelp returns keybindings for the viewer.
func (k *KeyMap) ViewerHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Publish, k.Viewer, k.Clear, k.SelectAll},
		{k.Bold, k.Italic, k.Code, k.Math, k.Table, k.Image},
		{k.Definition, k.Theory, k.Note, k.Formula, k.Warning},
		{k.Help, k.Back, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
