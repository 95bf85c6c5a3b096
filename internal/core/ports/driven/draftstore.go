package driven

import "context"

// DraftStore is the key-value surface shared by every session of a profile.
// It holds the draft text and the published note.
//
// Get distinguishes an absent key from an empty value; Remove makes a key
// absent again. GetMany and SetMany are atomic: a reader never sees part of
// a SetMany.
type DraftStore interface {
	// Get retrieves a value. The boolean is false if the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a value, replacing any previous one.
	Set(ctx context.Context, key, value string) error

	// Remove deletes a key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// GetMany reads several keys in one consistent snapshot.
	// Absent keys are omitted from the result.
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)

	// SetMany writes several keys as a single atomic update.
	SetMany(ctx context.Context, entries map[string]string) error

	// Close releases resources held by the store.
	Close() error
}

// Subscriber is implemented by stores that can push change notifications.
type Subscriber interface {
	// Subscribe returns a channel that receives the key of every change.
	// The channel is closed when ctx is cancelled or the store is closed.
	Subscribe(ctx context.Context) (<-chan string, error)
}
