package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/revisify/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/revisify/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/revisify/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/revisify/internal/adapters/driving/tui/views/editor"
	"github.com/custodia-labs/revisify/internal/adapters/driving/tui/views/viewer"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings shared by all views.
	keymap *keymap.KeyMap

	// pollInterval is how often the viewer reloads without push updates.
	pollInterval time.Duration

	// editorView is the editor with its live preview.
	editorView *editor.View

	// viewerView shows the published note.
	viewerView *viewer.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      styles.DefaultStyles(),
		keymap:      keymap.DefaultKeyMap(),
		currentView: messages.ViewEditor,
	}
	a.buildViews()
	return a, nil
}

// buildViews creates the views bound to the current context.
func (a *App) buildViews() {
	a.editorView = editor.NewView(a.ctx, a.styles, a.keymap,
		a.ports.Edit, a.ports.Publish, a.ports.Preview)
	a.editorView.Focus()
	a.viewerView = viewer.NewView(a.ctx, a.styles, a.keymap,
		a.ports.View, a.ports.Viewer, a.pollInterval)
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.buildViews()
	return a
}

// WithPollInterval sets the viewer's poll fallback interval.
func (a *App) WithPollInterval(d time.Duration) *App {
	a.pollInterval = d
	a.buildViews()
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("revisify"),
		a.editorView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keymap.Quit) {
			a.viewerView.Close()
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewEditor:
			a.editorView, cmd = a.editorView.Update(msg)
		case messages.ViewViewer:
			a.viewerView, cmd = a.viewerView.Update(msg)
		case messages.ViewHelp:
			if key.Matches(msg, a.keymap.Back) || key.Matches(msg, a.keymap.Help) {
				return a, a.switchTo(messages.ViewEditor)
			}
		}
		return a, cmd

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.DraftLoaded, messages.NotePublished, messages.FlashExpired:
		a.editorView, cmd = a.editorView.Update(msg)
		return a, cmd

	case messages.NoteLoaded:
		a.viewerView, cmd = a.viewerView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewViewer:
			a.viewerView, cmd = a.viewerView.Update(msg)
		case messages.ViewEditor, messages.ViewHelp:
			a.editorView, cmd = a.editorView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		a.viewerView.Close()
		return a, tea.Quit
	}

	// Forward other messages (cursor blink, ticks) to the active view
	switch a.currentView {
	case messages.ViewEditor:
		a.editorView, cmd = a.editorView.Update(msg)
	case messages.ViewViewer:
		a.viewerView, cmd = a.viewerView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// switchTo activates view, starting or stopping the viewer watch.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	previous := a.currentView
	a.currentView = view

	if previous == messages.ViewViewer && view != messages.ViewViewer {
		a.viewerView.Close()
	}

	switch view {
	case messages.ViewViewer:
		a.editorView.Blur()
		if previous != messages.ViewViewer {
			return a.viewerView.Open()
		}
	case messages.ViewEditor:
		a.editorView.Focus()
	case messages.ViewHelp:
		a.editorView.Blur()
	}
	return nil
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewViewer:
		return a.viewerView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewEditor:
	}
	return a.editorView.View()
}

// viewHelp renders the keybinding reference.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")

	sections := []string{"Editor", "Formatting", "Blocks", "Navigation"}
	for i, group := range a.keymap.FullHelp() {
		if i < len(sections) {
			b.WriteString(a.styles.Subtitle.Render(sections[i]))
			b.WriteString("\n")
		}
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Help.Render("[esc] back to editor"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.viewerView.Close()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Editor returns the editor view.
func (a *App) Editor() *editor.View {
	return a.editorView
}

// Viewer returns the viewer view.
func (a *App) Viewer() *viewer.View {
	return a.viewerView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.editorView.SetDimensions(width, height)
	a.viewerView.SetDimensions(width, height)
}
