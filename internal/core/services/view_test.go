package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/revisify/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/core/ports/driven"
)

func publishText(t *testing.T, store driven.DraftStore, text string) *domain.PublishedNote {
	t.Helper()
	ctx := context.Background()
	session := NewEditSession(store, &mockRenderer{}, nil)
	_, err := session.OnTextChanged(ctx, text, domain.Caret(0))
	require.NoError(t, err)
	note, err := NewPublisher(session, store).Publish(ctx)
	require.NoError(t, err)
	return note
}

func receive(t *testing.T, ch <-chan domain.ViewedNote) domain.ViewedNote {
	t.Helper()
	select {
	case note, ok := <-ch:
		require.True(t, ok, "channel closed")
		return note
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for note")
		return domain.ViewedNote{}
	}
}

func TestViewer_Load_Placeholder(t *testing.T) {
	viewer := NewViewer(memory.NewDraftStore(), &mockRenderer{})

	viewed, err := viewer.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, viewed.IsPlaceholder())
	assert.Equal(t, domain.ViewerPlaceholder, viewed.Source)
	assert.Equal(t, "", viewed.Revision())
}

func TestViewer_Load_CustomPlaceholder(t *testing.T) {
	viewer := NewViewer(memory.NewDraftStore(), &mockRenderer{})
	viewer.SetTemplates(mockTemplates{driven.TemplateViewerPlaceholder: "Nothing yet"})

	viewed, err := viewer.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Nothing yet", viewed.Source)
}

func TestViewer_Load_PublishedNote(t *testing.T) {
	store := memory.NewDraftStore()
	note := publishText(t, store, "# Hi $x$")

	viewed, err := NewViewer(store, &mockRenderer{}).Load(context.Background())
	require.NoError(t, err)

	require.False(t, viewed.IsPlaceholder())
	assert.Equal(t, "# Hi $x$", viewed.Source)
	assert.Equal(t, "<rendered># Hi $x$</rendered>", viewed.HTML)
	assert.Equal(t, note.Revision, viewed.Revision())
	assert.True(t, note.PublishedAt.Equal(viewed.Note.PublishedAt))
}

func TestViewer_Load_IgnoresDraft(t *testing.T) {
	store := memory.NewDraftStore()
	publishText(t, store, "published")
	require.NoError(t, store.Set(context.Background(), domain.KeyDraft, "newer draft"))

	viewed, err := NewViewer(store, &mockRenderer{}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "published", viewed.Source)
}

func TestViewer_Load_NeverWrites(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDraftStore()

	_, err := NewViewer(store, &mockRenderer{}).Load(ctx)
	require.NoError(t, err)

	got, err := store.GetMany(ctx, domain.KeyDraft, domain.KeyNote, domain.KeyPublishedAt, domain.KeyRevision)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestViewer_Load_StoreError(t *testing.T) {
	_, err := NewViewer(failingStore{}, &mockRenderer{}).Load(context.Background())
	assert.ErrorIs(t, err, errMockStore)
}

func TestViewer_Watch_Subscribed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := memory.NewDraftStore()

	ch, err := NewViewer(store, &mockRenderer{}).Watch(ctx, time.Hour)
	require.NoError(t, err)

	first := receive(t, ch)
	assert.True(t, first.IsPlaceholder())

	note := publishText(t, store, "v1")
	got := receive(t, ch)
	assert.Equal(t, "v1", got.Source)
	assert.Equal(t, note.Revision, got.Revision())

	// Draft edits do not produce viewer updates
	require.NoError(t, store.Set(ctx, domain.KeyDraft, "editing"))
	select {
	case n := <-ch:
		t.Fatalf("unexpected update %q", n.Source)
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	assert.Eventually(t, func() bool {
		_, ok := <-ch
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestViewer_Watch_Polling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := pollingStore{memory.NewDraftStore()}

	ch, err := NewViewer(store, &mockRenderer{}).Watch(ctx, 20*time.Millisecond)
	require.NoError(t, err)
	receive(t, ch)

	publishText(t, store, "polled")
	got := receive(t, ch)
	assert.Equal(t, "polled", got.Source)

	// Same revision is emitted once
	select {
	case n := <-ch:
		t.Fatalf("duplicate update %q", n.Source)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestViewer_Watch_InitialLoadError(t *testing.T) {
	_, err := NewViewer(failingStore{}, &mockRenderer{}).Watch(context.Background(), time.Second)
	assert.Error(t, err)
}
