package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/revisify/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/revisify/internal/core/domain"
)

// newLoadedApp creates an app sized and with its draft loaded.
func newLoadedApp(t *testing.T, draft string) (*App, *testEnv) {
	t.Helper()

	env := newTestEnv(t, draft)
	app, err := NewApp(env.ports)
	require.NoError(t, err)
	app.WithPollInterval(time.Hour)
	t.Cleanup(app.Viewer().Close)

	app.SetDimensions(120, 30)
	app.Update(app.Editor().Init()())
	return app, env
}

// runCmd executes cmd, failing the test if it does not finish promptly.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("command did not finish")
		return nil
	}
}

func TestNewApp_Success(t *testing.T) {
	env := newTestEnv(t, "")

	app, err := NewApp(env.ports)

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewEditor, app.CurrentView())
	assert.False(t, app.Ready())
	assert.NotNil(t, app.Editor())
	assert.NotNil(t, app.Viewer())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.Nil(t, app)
	assert.ErrorIs(t, err, ErrMissingEditService)
}

func TestApp_WithContext(t *testing.T) {
	env := newTestEnv(t, "")
	app, err := NewApp(env.ports)
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), struct{}{}, "v")
	result := app.WithContext(ctx)

	assert.Same(t, app, result)
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	env := newTestEnv(t, "")
	app, err := NewApp(env.ports)
	require.NoError(t, err)

	assert.NotNil(t, app.Init())
}

func TestApp_View_NotReady(t *testing.T) {
	env := newTestEnv(t, "")
	app, err := NewApp(env.ports)
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, env := newLoadedApp(t, "x")

	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.True(t, app.Ready())
	assert.Equal(t, 100, app.width)
	assert.Equal(t, 40, app.height)
	assert.Equal(t, 46, env.preview.width)
	assert.Equal(t, 100, env.renderer.width)
}

func TestApp_EditorRoundTrip(t *testing.T) {
	app, env := newLoadedApp(t, "draft")

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")})

	assert.Equal(t, "draft!", app.Editor().Buffer().Text)
	text, ok, err := env.store.Get(context.Background(), domain.KeyDraft)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "draft!", text)
	assert.Contains(t, app.View(), "R:draft!")
}

func TestApp_PublishThenView(t *testing.T) {
	app, _ := newLoadedApp(t, "shared note")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	_, tick := app.Update(runCmd(t, cmd))
	assert.NotNil(t, tick)
	assert.Contains(t, app.View(), "Sent!")

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	_, open := app.Update(runCmd(t, cmd))
	assert.Equal(t, messages.ViewViewer, app.CurrentView())
	assert.True(t, app.Viewer().Watching())

	app.Update(runCmd(t, open))
	require.NotNil(t, app.Viewer().Note())
	assert.Equal(t, "shared note", app.Viewer().Note().Source)
	assert.Contains(t, app.View(), "R:shared note")
}

func TestApp_ViewerBackToEditor(t *testing.T) {
	app, _ := newLoadedApp(t, "x")
	app.Update(messages.ViewChanged{View: messages.ViewViewer})
	require.True(t, app.Viewer().Watching())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app.Update(runCmd(t, cmd))

	assert.Equal(t, messages.ViewEditor, app.CurrentView())
	assert.False(t, app.Viewer().Watching())
}

func TestApp_Help(t *testing.T) {
	app, _ := newLoadedApp(t, "x")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyF1})
	app.Update(runCmd(t, cmd))
	assert.Equal(t, messages.ViewHelp, app.CurrentView())

	view := app.View()
	assert.Contains(t, view, "Help")
	assert.Contains(t, view, "Formatting")
	assert.Contains(t, view, "definition")

	// Typing in help does not reach the editor.
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	assert.Equal(t, "x", app.Editor().Buffer().Text)

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewEditor, app.CurrentView())
}

func TestApp_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.Msg
	}{
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
		{"ctrl+q", tea.KeyMsg{Type: tea.KeyCtrlQ}},
		{"quit message", messages.Quit{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newLoadedApp(t, "x")
			app.Update(messages.ViewChanged{View: messages.ViewViewer})

			_, cmd := app.Update(tt.msg)

			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.False(t, app.Viewer().Watching())
		})
	}
}

func TestApp_ErrorOccurred(t *testing.T) {
	app, _ := newLoadedApp(t, "x")
	boom := errors.New("boom")

	app.Update(messages.ErrorOccurred{Err: boom})

	assert.ErrorIs(t, app.Err(), boom)
	assert.ErrorIs(t, app.Editor().Err(), boom)
	assert.Contains(t, app.View(), "Error: boom")
}

func TestApp_ErrorOccurred_InViewer(t *testing.T) {
	app, _ := newLoadedApp(t, "x")
	app.Update(messages.ViewChanged{View: messages.ViewViewer})
	boom := errors.New("boom")

	app.Update(messages.ErrorOccurred{Err: boom})

	assert.ErrorIs(t, app.Viewer().Err(), boom)
	assert.NoError(t, app.Editor().Err())
}

func TestApp_FlashExpiredRoutedToEditor(t *testing.T) {
	app, _ := newLoadedApp(t, "x")
	app.Update(messages.NotePublished{Note: &domain.PublishedNote{}})

	app.Update(messages.FlashExpired{ID: 1})

	assert.NotContains(t, app.View(), "Sent!")
}
