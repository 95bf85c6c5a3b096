package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/revisify/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/revisify/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/revisify/internal/core/domain"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, domain.Counts{}, bar.Counts())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_InitAndUpdate(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Nil(t, bar.Init())

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_View(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		message  string
		contains []string
		absent   []string
	}{
		{
			name:     "ready shows counts and editor hints",
			state:    StateReady,
			contains: []string{"Words: 2 | Characters: 9 | Lines: 1", "ctrl+s: publish"},
		},
		{
			name:     "publishing",
			state:    StatePublishing,
			contains: []string{"Publishing..."},
			absent:   []string{"Words:"},
		},
		{
			name:     "flash",
			state:    StateFlash,
			message:  "Sent!",
			contains: []string{"Sent!"},
		},
		{
			name:     "error with message",
			state:    StateError,
			message:  "disk full",
			contains: []string{"Error: disk full"},
		},
		{
			name:     "error without message",
			state:    StateError,
			contains: []string{"Error"},
		},
		{
			name:     "viewing shows viewer hints",
			state:    StateViewing,
			message:  "Published 09:00",
			contains: []string{"Published 09:00", "esc: back"},
			absent:   []string{"ctrl+s: publish"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(160)
			bar.SetCounts(domain.Counts{Words: 2, Chars: 9, Lines: 1})
			bar.SetState(tt.state)
			bar.SetMessage(tt.message)

			view := bar.View()
			for _, s := range tt.contains {
				assert.Contains(t, view, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, view, s)
			}
		})
	}
}

func TestStatusBar_NarrowWidth(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(10)

	assert.NotEmpty(t, bar.View())
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetCounts(domain.Counts{Words: 1, Chars: 1, Lines: 1})
	bar.SetState(StateError)
	bar.SetMessage("boom")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, domain.Counts{Words: 1, Chars: 1, Lines: 1}, bar.Counts())
}
