package web

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/revisify/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/core/services"
)

// mockRenderer wraps the source so tests can see what was rendered.
type mockRenderer struct{}

func (m *mockRenderer) Render(_ context.Context, src string) (string, error) {
	return "<p>" + src + "</p>", nil
}

// mockPublishService is a mock implementation of driving.PublishService.
type mockPublishService struct {
	err error
}

func (m *mockPublishService) Publish(_ context.Context) (*domain.PublishedNote, error) {
	return nil, m.err
}

// mockViewService is a mock implementation of driving.ViewService.
type mockViewService struct {
	err error
}

func (m *mockViewService) Load(_ context.Context) (*domain.ViewedNote, error) {
	return nil, m.err
}

func (m *mockViewService) Watch(_ context.Context, _ time.Duration) (<-chan domain.ViewedNote, error) {
	return nil, m.err
}

type testEnv struct {
	server *Server
	store  *memory.DraftStore
	edit   *services.EditSession
}

// newTestEnv wires real sessions over an in-memory store.
func newTestEnv(t *testing.T, draft string, cfg Config) *testEnv {
	t.Helper()

	env := newColdEnv(t, draft, cfg)
	_, err := env.edit.Start(context.Background())
	require.NoError(t, err)
	return env
}

// newColdEnv is newTestEnv without starting the edit session, as after a
// server restart with a page still open.
func newColdEnv(t *testing.T, draft string, cfg Config) *testEnv {
	t.Helper()

	store := memory.NewDraftStore()
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Set(context.Background(), domain.KeyDraft, draft))

	renderer := &mockRenderer{}
	edit := services.NewEditSession(store, renderer, nil)
	edit.SetClock(func() time.Time { return time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC) })

	server, err := NewServer(&Ports{
		Edit:    edit,
		Publish: services.NewPublisher(edit, store),
		View:    services.NewViewer(store, renderer),
	}, cfg)
	require.NoError(t, err)

	return &testEnv{server: server, store: store, edit: edit}
}
