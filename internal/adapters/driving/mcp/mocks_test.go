package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/revisify/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/core/services"
)

// mockRenderer wraps the source so tests can see what was rendered.
type mockRenderer struct {
	err error
}

func (m *mockRenderer) Render(_ context.Context, src string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "<p>" + src + "</p>", nil
}

// mockViewService is a mock implementation of driving.ViewService.
type mockViewService struct {
	viewed *domain.ViewedNote
	err    error
}

func (m *mockViewService) Load(_ context.Context) (*domain.ViewedNote, error) {
	return m.viewed, m.err
}

func (m *mockViewService) Watch(_ context.Context, _ time.Duration) (<-chan domain.ViewedNote, error) {
	return nil, m.err
}

// mockPublishService is a mock implementation of driving.PublishService.
type mockPublishService struct {
	note *domain.PublishedNote
	err  error
}

func (m *mockPublishService) Publish(_ context.Context) (*domain.PublishedNote, error) {
	return m.note, m.err
}

var errBoom = errors.New("boom")

// testServer wires real sessions over an in-memory store.
type testServer struct {
	*Server
	store *memory.DraftStore
}

func newTestServer(t *testing.T, draft string) *testServer {
	t.Helper()

	store := memory.NewDraftStore()
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Set(context.Background(), domain.KeyDraft, draft))

	renderer := &mockRenderer{}
	edit := services.NewEditSession(store, renderer, nil)
	publisher := services.NewPublisher(edit, store)
	publisher.SetClock(func() time.Time {
		return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	})

	server, err := NewServer(&Ports{
		Edit:     edit,
		Publish:  publisher,
		View:     services.NewViewer(store, renderer),
		Renderer: renderer,
	})
	require.NoError(t, err)
	return &testServer{Server: server, store: store}
}

func intPtr(v int) *int {
	return &v
}
