package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/revisify/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewEditor, "editor"},
		{ViewViewer, "viewer"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewType_EditorIsZeroValue(t *testing.T) {
	var v ViewType
	assert.Equal(t, ViewEditor, v)
}

func TestNoteLoaded(t *testing.T) {
	t.Run("placeholder", func(t *testing.T) {
		msg := NoteLoaded{Viewed: &domain.ViewedNote{Source: "nothing"}, Stream: 2}

		assert.True(t, msg.Viewed.IsPlaceholder())
		assert.Equal(t, 2, msg.Stream)
		assert.False(t, msg.Closed)
	})

	t.Run("closed", func(t *testing.T) {
		msg := NoteLoaded{Stream: 1, Closed: true}

		assert.Nil(t, msg.Viewed)
		assert.True(t, msg.Closed)
	})
}

func TestErrorMessages(t *testing.T) {
	boom := errors.New("boom")

	assert.ErrorIs(t, DraftLoaded{Err: boom}.Err, boom)
	assert.ErrorIs(t, NotePublished{Err: boom}.Err, boom)
	assert.ErrorIs(t, ErrorOccurred{Err: boom}.Err, boom)
}
