// Package editor provides the editor view with its live preview pane.
package editor

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/revisify/internal/adapters/driven/prompt"
	"github.com/custodia-labs/revisify/internal/adapters/driving/tui/components/editarea"
	"github.com/custodia-labs/revisify/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/revisify/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/revisify/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/revisify/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/revisify/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/core/ports/driving"
	"github.com/custodia-labs/revisify/internal/core/services"
)

// FlashDuration is how long the publish acknowledgement stays visible.
const FlashDuration = 2 * time.Second

// FlashSent is shown after a successful publish.
const FlashSent = "Sent! (ctrl+r to view)"

const (
	promptImageURL = "Image URL (empty for placeholder):"
	promptImageAlt = "Alt text:"
	confirmClear   = "Clear the editor? This cannot be undone. [y/n]"
)

// Resizer is implemented by renderers that wrap to a width.
type Resizer interface {
	SetWidth(width int)
}

// mode is what the keyboard currently drives.
type mode int

const (
	modeEdit mode = iota
	modeConfirmClear
	modeImageURL
	modeImageAlt
)

// wrapPair maps an inline formatting shortcut to its delimiters.
type wrapPair struct {
	binding       key.Binding
	before, after string
}

// View is the editor: text area, preview pane and status bar.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	edit    driving.EditService
	publish driving.PublishService
	resizer Resizer

	area    *editarea.Area
	preview viewport.Model
	bar     *status.Bar
	prompt  *input.PromptInput

	mode     mode
	imageURL string
	flashID  int
	started  bool
	err      error
	width    int
	height   int
}

// NewView creates a new editor view. publish and resizer are optional.
func NewView(
	ctx context.Context,
	s *styles.Styles,
	km *keymap.KeyMap,
	edit driving.EditService,
	publish driving.PublishService,
	resizer Resizer,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		ctx:     ctx,
		styles:  s,
		keymap:  km,
		edit:    edit,
		publish: publish,
		resizer: resizer,
		area:    editarea.New(s),
		preview: viewport.New(40, 10),
		bar:     status.NewBar(s, km),
		prompt:  input.NewPromptInput(s),
	}
}

// Init loads the draft.
func (v *View) Init() tea.Cmd {
	return v.loadDraft()
}

func (v *View) loadDraft() tea.Cmd {
	return func() tea.Msg {
		rendered, err := v.edit.Start(v.ctx)
		return messages.DraftLoaded{Rendered: rendered, Err: err}
	}
}

func (v *View) publishNote() tea.Cmd {
	if v.publish == nil {
		return nil
	}
	v.bar.SetState(status.StatePublishing)
	return func() tea.Msg {
		note, err := v.publish.Publish(v.ctx)
		return messages.NotePublished{Note: note, Err: err}
	}
}

// Update handles messages for the editor view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch v.mode {
		case modeConfirmClear:
			return v.handleConfirmKey(msg)
		case modeImageURL, modeImageAlt:
			return v.handlePromptKey(msg)
		case modeEdit:
		}
		return v.handleEditKey(msg)

	case messages.DraftLoaded:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.started = true
		v.area.SetBuffer(v.edit.Buffer())
		v.apply(msg.Rendered)
		return v, nil

	case messages.NotePublished:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		return v, v.flash(FlashSent)

	case messages.FlashExpired:
		if msg.ID == v.flashID && v.bar.State() == status.StateFlash {
			v.bar.Clear()
		}
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	if v.mode == modeImageURL || v.mode == modeImageAlt {
		var cmd tea.Cmd
		v.prompt, cmd = v.prompt.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleEditKey runs shortcuts, then passes the key to the text area.
//
//nolint:gocyclo // one branch per shortcut
func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if !v.started {
		return v, nil
	}

	km := v.keymap
	switch {
	case key.Matches(msg, km.Publish):
		return v, v.publishNote()
	case key.Matches(msg, km.Viewer):
		return v, changeView(messages.ViewViewer)
	case key.Matches(msg, km.Help):
		return v, changeView(messages.ViewHelp)
	case key.Matches(msg, km.Table):
		v.run(v.edit.InsertTableTemplate)
		return v, nil
	case key.Matches(msg, km.Image):
		v.mode = modeImageURL
		v.imageURL = ""
		return v, v.prompt.Ask(promptImageURL, domain.PlaceholderImageURL)
	case key.Matches(msg, km.Clear):
		v.mode = modeConfirmClear
		return v, nil
	case key.Matches(msg, km.SelectAll):
		v.area.SelectAll()
		v.syncSelection()
		return v, nil
	}

	for _, p := range v.inlinePairs() {
		if key.Matches(msg, p.binding) {
			before, after := p.before, p.after
			v.run(func(ctx context.Context) (*domain.Rendered, error) {
				return v.edit.Insert(ctx, before, after)
			})
			return v, nil
		}
	}

	for _, b := range v.blockBindings() {
		if key.Matches(msg, b.binding) {
			name := b.label.String()
			v.run(func(ctx context.Context) (*domain.Rendered, error) {
				return v.edit.WrapSelection(ctx, name)
			})
			return v, nil
		}
	}

	if msg.Type == tea.KeyPgUp || msg.Type == tea.KeyPgDown {
		var cmd tea.Cmd
		v.preview, cmd = v.preview.Update(msg)
		return v, cmd
	}

	edited, handled := v.area.HandleKey(msg)
	switch {
	case edited:
		buf := v.area.Buffer()
		rendered, err := v.edit.OnTextChanged(v.ctx, buf.Text, buf.Selection)
		if err != nil {
			v.setError(err)
			return v, nil
		}
		v.apply(rendered)
	case handled:
		v.syncSelection()
	}
	return v, nil
}

func (v *View) inlinePairs() []wrapPair {
	return []wrapPair{
		{v.keymap.Bold, "**", "**"},
		{v.keymap.Italic, "*", "*"},
		{v.keymap.Code, "`", "`"},
		{v.keymap.Math, "$", "$"},
	}
}

type blockBinding struct {
	binding key.Binding
	label   domain.BlockLabel
}

func (v *View) blockBindings() []blockBinding {
	return []blockBinding{
		{v.keymap.Definition, domain.BlockDefinition},
		{v.keymap.Theory, domain.BlockTheory},
		{v.keymap.Note, domain.BlockNote},
		{v.keymap.Formula, domain.BlockFormula},
		{v.keymap.Warning, domain.BlockWarning},
	}
}

// handleConfirmKey answers the clear confirmation.
func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		v.mode = modeEdit
		ctx := services.WithPrompter(v.ctx, prompt.Confirmed())
		cleared, err := v.edit.Clear(ctx)
		if err != nil {
			v.setError(err)
			return v, nil
		}
		if cleared {
			v.area.SetBuffer(v.edit.Buffer())
			rendered := v.edit.Rendered()
			v.apply(&rendered)
			return v, v.flash("Cleared")
		}
	case "n", "N", "esc":
		v.mode = modeEdit
	}
	return v, nil
}

// handlePromptKey drives the two-step image prompt.
func (v *View) handlePromptKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.mode = modeEdit
		v.prompt.Blur()
		return v, nil

	case tea.KeyEnter:
		if v.mode == modeImageURL {
			v.imageURL = strings.TrimSpace(v.prompt.Value())
			v.mode = modeImageAlt
			return v, v.prompt.Ask(promptImageAlt, domain.DefaultImageAlt)
		}
		alt := strings.TrimSpace(v.prompt.Value())
		v.mode = modeEdit
		v.prompt.Blur()
		v.syncSelection()
		ctx := services.WithPrompter(v.ctx, prompt.Answers(v.imageURL, alt))
		if _, err := v.edit.PromptImage(ctx); err != nil {
			v.setError(err)
			return v, nil
		}
		v.area.SetBuffer(v.edit.Buffer())
		rendered := v.edit.Rendered()
		v.apply(&rendered)
		return v, nil
	}

	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

// run syncs the selection, applies op and refreshes the area from the session.
func (v *View) run(op func(context.Context) (*domain.Rendered, error)) {
	v.syncSelection()
	rendered, err := op(v.ctx)
	if err != nil {
		v.setError(err)
		return
	}
	v.area.SetBuffer(v.edit.Buffer())
	v.apply(rendered)
}

func (v *View) syncSelection() {
	if err := v.edit.Select(v.area.Buffer().Selection); err != nil {
		v.setError(err)
	}
}

func (v *View) apply(rendered *domain.Rendered) {
	if rendered == nil {
		return
	}
	v.preview.SetContent(rendered.HTML)
	v.bar.SetCounts(rendered.Counts)
	if v.bar.State() == status.StateError {
		v.bar.Clear()
	}
	v.err = nil
}

func (v *View) setError(err error) {
	v.err = err
	v.bar.SetState(status.StateError)
	v.bar.SetMessage(err.Error())
}

// flash shows message until FlashDuration passes or a newer flash replaces it.
func (v *View) flash(message string) tea.Cmd {
	v.flashID++
	id := v.flashID
	v.bar.SetState(status.StateFlash)
	v.bar.SetMessage(message)
	return tea.Tick(FlashDuration, func(time.Time) tea.Msg {
		return messages.FlashExpired{ID: id}
	})
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

// View renders the editor.
func (v *View) View() string {
	editorPane := v.renderPane("Editor", v.area.View(), v.leftWidth())
	previewPane := v.renderPane("Preview", v.preview.View(), v.width-v.leftWidth())
	body := lipgloss.JoinHorizontal(lipgloss.Top, editorPane, previewPane)

	switch v.mode {
	case modeConfirmClear:
		body = v.overlay(v.styles.Warning.Render(confirmClear))
	case modeImageURL, modeImageAlt:
		body = v.overlay(v.prompt.View())
	case modeEdit:
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, v.bar.View())
}

func (v *View) renderPane(title, content string, width int) string {
	inner := lipgloss.JoinVertical(lipgloss.Left, v.styles.Subtitle.Render(title), content)
	return v.styles.Pane.
		Width(maxInt(width-2, 1)).
		Height(maxInt(v.bodyHeight()-2, 1)).
		Render(inner)
}

func (v *View) overlay(content string) string {
	return lipgloss.Place(v.width, v.bodyHeight(), lipgloss.Center, lipgloss.Center,
		v.styles.Modal.Render(content))
}

// SetDimensions sizes the panes and rewraps the preview.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.bar.SetWidth(width)
	v.prompt.SetWidth(minInt(width-8, 72))

	// Pane border, padding and title take 4 columns and 3 rows.
	innerHeight := maxInt(v.bodyHeight()-3, 1)
	v.area.SetSize(maxInt(v.leftWidth()-4, 1), innerHeight)
	previewWidth := maxInt(v.width-v.leftWidth()-4, 1)
	v.preview.Width = previewWidth
	v.preview.Height = innerHeight

	if v.resizer == nil || !v.started {
		return
	}
	v.resizer.SetWidth(previewWidth)
	buf := v.area.Buffer()
	rendered, err := v.edit.OnTextChanged(v.ctx, buf.Text, buf.Selection)
	if err != nil {
		v.setError(err)
		return
	}
	v.apply(rendered)
}

func (v *View) leftWidth() int {
	return v.width / 2
}

func (v *View) bodyHeight() int {
	return maxInt(v.height-1, 3)
}

// Focus gives the text area the caret.
func (v *View) Focus() {
	v.area.Focus()
}

// Blur hides the caret.
func (v *View) Blur() {
	v.area.Blur()
}

// Buffer returns what the text area shows.
func (v *View) Buffer() domain.Buffer {
	return v.area.Buffer()
}

// Preview returns the preview pane content.
func (v *View) Preview() string {
	return v.preview.View()
}

// Bar returns the status bar.
func (v *View) Bar() *status.Bar {
	return v.bar
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
