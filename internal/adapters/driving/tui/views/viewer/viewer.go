// Package viewer provides the read-only view of the published note.
package viewer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/revisify/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/revisify/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/revisify/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/revisify/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/core/ports/driving"
)

// Resizer is implemented by renderers that wrap to a width.
type Resizer interface {
	SetWidth(width int)
}

// View shows the published note and follows new revisions while open.
type View struct {
	ctx      context.Context
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	service  driving.ViewService
	resizer  Resizer
	interval time.Duration

	content viewport.Model
	bar     *status.Bar

	cancel  context.CancelFunc
	updates <-chan domain.ViewedNote
	stream  int

	note   *domain.ViewedNote
	err    error
	width  int
	height int
}

// NewView creates a new viewer. interval is the poll fallback used when
// the store cannot push changes.
func NewView(
	ctx context.Context,
	s *styles.Styles,
	km *keymap.KeyMap,
	service driving.ViewService,
	resizer Resizer,
	interval time.Duration,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	bar := status.NewBar(s, km)
	bar.SetState(status.StateViewing)
	return &View{
		ctx:      ctx,
		styles:   s,
		keymap:   km,
		service:  service,
		resizer:  resizer,
		interval: interval,
		content:  viewport.New(80, 20),
		bar:      bar,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Open starts watching the published note. A previous watch is stopped.
func (v *View) Open() tea.Cmd {
	v.Close()
	v.stream++
	v.err = nil

	ctx, cancel := context.WithCancel(v.ctx)
	updates, err := v.service.Watch(ctx, v.interval)
	if err != nil {
		cancel()
		v.setError(err)
		return nil
	}
	v.cancel = cancel
	v.updates = updates
	return listen(updates, v.stream)
}

// Close stops the running watch, if any.
func (v *View) Close() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.updates = nil
}

// listen waits for the next note on updates.
func listen(updates <-chan domain.ViewedNote, stream int) tea.Cmd {
	return func() tea.Msg {
		note, ok := <-updates
		if !ok {
			return messages.NoteLoaded{Stream: stream, Closed: true}
		}
		return messages.NoteLoaded{Viewed: &note, Stream: stream}
	}
}

// Update handles messages for the viewer.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, v.keymap.Back) {
			v.Close()
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewEditor}
			}
		}
		var cmd tea.Cmd
		v.content, cmd = v.content.Update(msg)
		return v, cmd

	case messages.NoteLoaded:
		if msg.Stream != v.stream || msg.Closed {
			return v, nil
		}
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.show(msg.Viewed)
		if v.updates == nil {
			return v, nil
		}
		return v, listen(v.updates, v.stream)

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	return v, nil
}

func (v *View) show(note *domain.ViewedNote) {
	v.note = note
	v.err = nil
	v.content.SetContent(note.HTML)
	v.content.GotoTop()
	v.bar.SetState(status.StateViewing)
	v.bar.SetMessage(describe(note))
}

// describe summarises which revision is shown.
func describe(note *domain.ViewedNote) string {
	if note.IsPlaceholder() {
		return "Nothing published yet"
	}
	return fmt.Sprintf("Published %s", note.Note.PublishedAt.Local().Format("2006-01-02 15:04:05"))
}

func (v *View) setError(err error) {
	v.err = err
	v.bar.SetState(status.StateError)
	v.bar.SetMessage(err.Error())
}

// View renders the viewer.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Viewer"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(v.width, 1)))
	b.WriteString("\n")

	if v.note == nil && v.err == nil {
		b.WriteString(v.styles.Muted.Render("Loading..."))
	} else {
		b.WriteString(v.content.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, b.String(), v.bar.View())
}

// SetDimensions sizes the viewport and rewraps the note.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.bar.SetWidth(width)

	// Title, rule and status bar take three rows.
	v.content.Width = width
	v.content.Height = max(height-3, 1)

	if v.resizer == nil {
		return
	}
	v.resizer.SetWidth(width)
	if v.note == nil {
		return
	}
	note, err := v.service.Load(v.ctx)
	if err != nil {
		v.setError(err)
		return
	}
	v.show(note)
}

// Note returns the note being shown.
func (v *View) Note() *domain.ViewedNote {
	return v.note
}

// Watching reports whether a watch is running.
func (v *View) Watching() bool {
	return v.cancel != nil
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
