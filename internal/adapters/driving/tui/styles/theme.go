// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the TUI palette. The accents follow the styled block colours of
// the browser pages so a note looks the same in both.
type Theme struct {
	// Primary accents titles and dialogs (definition blue).
	Primary lipgloss.Color

	// Secondary accents pane titles and selections (theory purple).
	Secondary lipgloss.Color

	// Background is the page colour behind selected text.
	Background lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for help and counts.
	Muted lipgloss.Color

	// Success marks acknowledgements (note green).
	Success lipgloss.Color

	// Warning marks confirmations (formula amber).
	Warning lipgloss.Color

	// Error marks failures (warning red).
	Error lipgloss.Color

	// Border outlines panes.
	Border lipgloss.Color

	// Bar is the status bar background.
	Bar lipgloss.Color
}

// DefaultTheme returns the dark theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#8AB4F8"),
		Secondary:  lipgloss.Color("#C58AF9"),
		Background: lipgloss.Color("#202124"),
		Foreground: lipgloss.Color("#E8EAED"),
		Muted:      lipgloss.Color("#9AA0A6"),
		Success:    lipgloss.Color("#81C995"),
		Warning:    lipgloss.Color("#FDD663"),
		Error:      lipgloss.Color("#F28B82"),
		Border:     lipgloss.Color("#5F6368"),
		Bar:        lipgloss.Color("#303134"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Help     lipgloss.Style

	// InputField frames the image prompt field.
	InputField lipgloss.Style

	// StatusBar is the bottom line with counts and hints.
	StatusBar lipgloss.Style

	// Pane frames the editor, preview and viewer.
	Pane lipgloss.Style

	// Cursor draws the caret.
	Cursor lipgloss.Style

	// Selection highlights selected editor text.
	Selection lipgloss.Style

	// Modal frames the clear confirmation and the image prompt.
	Modal lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	rounded := lipgloss.RoundedBorder()

	return &Styles{
		theme: theme,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Normal:   lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(theme.Error),
		Success:  lipgloss.NewStyle().Bold(true).Foreground(theme.Success),
		Warning:  lipgloss.NewStyle().Foreground(theme.Warning),
		Help:     lipgloss.NewStyle().Foreground(theme.Muted),

		InputField: lipgloss.NewStyle().
			BorderStyle(rounded).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),

		Pane: lipgloss.NewStyle().
			BorderStyle(rounded).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Cursor: lipgloss.NewStyle().Reverse(true),

		Selection: lipgloss.NewStyle().
			Foreground(theme.Background).
			Background(theme.Secondary),

		Modal: lipgloss.NewStyle().
			BorderStyle(rounded).
			BorderForeground(theme.Primary).
			Padding(1, 2),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
