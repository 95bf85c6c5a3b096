package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/core/ports/driven"
)

// Ensure DraftStore implements the interfaces.
var (
	_ driven.DraftStore = (*DraftStore)(nil)
	_ driven.Subscriber = (*DraftStore)(nil)
)

// subscriberBuffer is how many change keys a slow subscriber may lag behind.
const subscriberBuffer = 16

// DraftStore is an in-memory implementation of driven.DraftStore.
// Sessions sharing one instance see each other's writes immediately.
type DraftStore struct {
	mu          sync.RWMutex
	values      map[string]string
	subscribers map[chan string]struct{}
	closed      bool
}

// NewDraftStore creates a new in-memory draft store.
func NewDraftStore() *DraftStore {
	return &DraftStore{
		values:      make(map[string]string),
		subscribers: make(map[chan string]struct{}),
	}
}

// Get retrieves a value.
func (s *DraftStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, domain.ErrStoreClosed
	}
	val, ok := s.values[key]
	return val, ok, nil
}

// Set stores a value.
func (s *DraftStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}
	s.values[key] = value
	s.notify(key)
	return nil
}

// Remove deletes a key.
func (s *DraftStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	s.notify(key)
	return nil
}

// GetMany reads several keys under one lock.
func (s *DraftStore) GetMany(_ context.Context, keys ...string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, domain.ErrStoreClosed
	}
	result := make(map[string]string, len(keys))
	for _, k := range keys {
		if val, ok := s.values[k]; ok {
			result[k] = val
		}
	}
	return result, nil
}

// SetMany writes several keys under one lock.
func (s *DraftStore) SetMany(_ context.Context, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}
	for k, v := range entries {
		s.values[k] = v
	}
	for k := range entries {
		s.notify(k)
	}
	return nil
}

// Subscribe returns a channel receiving the key of every change.
func (s *DraftStore) Subscribe(ctx context.Context) (<-chan string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, domain.ErrStoreClosed
	}

	ch := make(chan string, subscriberBuffer)
	s.subscribers[ch] = struct{}{}

	go func() {
		<-ctx.Done()
		s.unsubscribe(ch)
	}()
	return ch, nil
}

// Close drops all values and closes subscriber channels.
func (s *DraftStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	for ch := range s.subscribers {
		close(ch)
		delete(s.subscribers, ch)
	}
	s.values = nil
	return nil
}

func (s *DraftStore) unsubscribe(ch chan string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[ch]; !ok {
		return
	}
	delete(s.subscribers, ch)
	close(ch)
}

// notify fans a change out to subscribers (caller must hold lock).
// Full subscriber buffers drop the event.
func (s *DraftStore) notify(key string) {
	for ch := range s.subscribers {
		select {
		case ch <- key:
		default:
		}
	}
}
