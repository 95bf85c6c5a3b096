package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/revisify/internal/core/ports/driven"
)

var errMockStore = errors.New("mock store failure")

// mockRenderer wraps the source so tests can see what was rendered.
type mockRenderer struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (r *mockRenderer) Render(_ context.Context, src string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, src)
	if r.err != nil {
		return "", r.err
	}
	return "<rendered>" + src + "</rendered>", nil
}

func (r *mockRenderer) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// mockPrompter replays scripted answers in order.
type mockPrompter struct {
	confirm    bool
	confirmErr error
	answers    []string
	errs       []error
	messages   []string
}

func (p *mockPrompter) Confirm(_ context.Context, message string) (bool, error) {
	p.messages = append(p.messages, message)
	return p.confirm, p.confirmErr
}

func (p *mockPrompter) Prompt(_ context.Context, message, _ string) (string, error) {
	p.messages = append(p.messages, message)
	i := len(p.messages) - 1
	if i < len(p.errs) && p.errs[i] != nil {
		return "", p.errs[i]
	}
	if i < len(p.answers) {
		return p.answers[i], nil
	}
	return "", driven.ErrPromptCancelled
}

// mockTemplates serves fixed templates.
type mockTemplates map[string]string

func (m mockTemplates) Load(name string) (string, error) {
	if t, ok := m[name]; ok {
		return t, nil
	}
	return "", errors.New("no template")
}

// failingStore fails every operation.
type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errMockStore
}
func (failingStore) Set(context.Context, string, string) error { return errMockStore }
func (failingStore) Remove(context.Context, string) error      { return errMockStore }
func (failingStore) GetMany(context.Context, ...string) (map[string]string, error) {
	return nil, errMockStore
}
func (failingStore) SetMany(context.Context, map[string]string) error { return errMockStore }
func (failingStore) Close() error                                     { return nil }

// pollingStore hides the Subscriber capability of the wrapped store.
type pollingStore struct {
	driven.DraftStore
}
