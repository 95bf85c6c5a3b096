package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/revisify/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/core/services"
)

// mockRenderer tags the source so tests can see what was rendered.
type mockRenderer struct {
	width int
}

func (m *mockRenderer) Render(_ context.Context, src string) (string, error) {
	return "R:" + src, nil
}

func (m *mockRenderer) SetWidth(width int) {
	m.width = width
}

type testEnv struct {
	ports    *Ports
	store    *memory.DraftStore
	preview  *mockRenderer
	renderer *mockRenderer
}

// newTestEnv wires real services over an in-memory store.
func newTestEnv(t *testing.T, draft string) *testEnv {
	t.Helper()

	store := memory.NewDraftStore()
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Set(context.Background(), domain.KeyDraft, draft))

	preview := &mockRenderer{}
	renderer := &mockRenderer{}
	edit := services.NewEditSession(store, preview, nil)

	ports := NewPorts(edit, services.NewPublisher(edit, store), services.NewViewer(store, renderer))
	ports.Preview = preview
	ports.Viewer = renderer

	return &testEnv{ports: ports, store: store, preview: preview, renderer: renderer}
}
