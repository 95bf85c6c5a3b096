package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/core/ports/driven"
	"github.com/custodia-labs/revisify/internal/logger"
)

// Ensure Store implements the interfaces.
var (
	_ driven.DraftStore = (*Store)(nil)
	_ driven.Subscriber = (*Store)(nil)
)

// storeFile is the file name inside the data directory.
const storeFile = "drafts.toml"

// lockRetry is how often a blocked writer retries the file lock.
const lockRetry = 10 * time.Millisecond

// document is the on-disk layout.
type document struct {
	Entries map[string]string `toml:"entries"`
}

// Store is a draft store backed by a single TOML file. Writers hold an
// exclusive lock on drafts.toml.lock for the whole read-modify-write, so
// processes sharing the file never drop each other's keys.
type Store struct {
	mu     sync.Mutex
	path   string
	lock   *flock.Flock
	closed bool

	// watchers holds the cancel funcs of active subscriptions.
	watchers map[int]context.CancelFunc
	nextID   int
	wg       sync.WaitGroup
}

// NewStore creates a file store in dataDir.
// If dataDir is empty, defaults to ~/.revisify/data/drafts.toml.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".revisify", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, storeFile)
	return &Store{
		path:     path,
		lock:     flock.New(path + ".lock"),
		watchers: make(map[int]context.CancelFunc),
	}, nil
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// Get retrieves a value.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", false, domain.ErrStoreClosed
	}

	entries, err := s.read()
	if err != nil {
		return "", false, err
	}
	val, ok := entries[key]
	return val, ok, nil
}

// Set stores a value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

// Remove deletes a key.
func (s *Store) Remove(ctx context.Context, key string) error {
	return s.update(ctx, func(entries map[string]string) bool {
		if _, ok := entries[key]; !ok {
			return false
		}
		delete(entries, key)
		return true
	})
}

// GetMany reads several keys from one read of the file.
func (s *Store) GetMany(_ context.Context, keys ...string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, domain.ErrStoreClosed
	}

	entries, err := s.read()
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(keys))
	for _, k := range keys {
		if val, ok := entries[k]; ok {
			result[k] = val
		}
	}
	return result, nil
}

// SetMany writes several keys with one file replacement.
func (s *Store) SetMany(ctx context.Context, entries map[string]string) error {
	return s.update(ctx, func(current map[string]string) bool {
		for k, v := range entries {
			current[k] = v
		}
		return true
	})
}

// update runs a read-modify-write under both locks. fn reports whether it
// changed anything; unchanged entries are not rewritten.
func (s *Store) update(ctx context.Context, fn func(map[string]string) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}

	locked, err := s.lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		return fmt.Errorf("locking %s: %w", s.lock.Path(), err)
	}
	if !locked {
		return fmt.Errorf("locking %s: not acquired", s.lock.Path())
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			logger.Warn("Unlocking %s: %v", s.lock.Path(), err)
		}
	}()

	current, err := s.read()
	if err != nil {
		return err
	}
	if !fn(current) {
		return nil
	}
	return s.write(current)
}

// Subscribe watches the store file and reports keys whose values change,
// including changes made by other processes.
func (s *Store) Subscribe(ctx context.Context) (<-chan string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, domain.ErrStoreClosed
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	// Watch the directory: atomic renames replace the file's inode.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(s.path), err)
	}

	last, err := s.read()
	if err != nil {
		watcher.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	id := s.nextID
	s.nextID++
	s.watchers[id] = cancel

	out := make(chan string, 16)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(out)
		defer watcher.Close()
		defer s.forget(id)
		s.watch(ctx, watcher, last, out)
	}()
	return out, nil
}

// Close stops all subscriptions and releases the lock file handle.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for _, cancel := range s.watchers {
		cancel()
	}
	s.mu.Unlock()

	s.wg.Wait()
	return s.lock.Close()
}

func (s *Store) forget(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.watchers[id]; ok {
		cancel()
		delete(s.watchers, id)
	}
}

func (s *Store) watch(
	ctx context.Context, watcher *fsnotify.Watcher, last map[string]string, out chan<- string,
) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}

			s.mu.Lock()
			current, err := s.read()
			s.mu.Unlock()
			if err != nil {
				logger.Warn("Reloading %s: %v", s.path, err)
				continue
			}

			for _, key := range changedKeys(last, current) {
				select {
				case out <- key:
				case <-ctx.Done():
					return
				}
			}
			last = current
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// read loads the entries (caller must hold lock). A missing file is empty.
func (s *Store) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	if doc.Entries == nil {
		doc.Entries = make(map[string]string)
	}
	return doc.Entries, nil
}

// write replaces the file atomically (caller must hold both locks).
func (s *Store) write(entries map[string]string) error {
	data, err := toml.Marshal(document{Entries: entries})
	if err != nil {
		return fmt.Errorf("encoding entries: %w", err)
	}
	return atomicWriteFile(s.path, data)
}

// atomicWriteFile writes data to a temp file in the same directory and
// renames it over path.
func atomicWriteFile(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".revisify-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Chmod(0600); err != nil {
		tmpFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// changedKeys lists keys that were added, removed or modified.
func changedKeys(before, after map[string]string) []string {
	var keys []string
	for k, v := range after {
		if old, ok := before[k]; !ok || old != v {
			keys = append(keys, k)
		}
	}
	for k := range before {
		if _, ok := after[k]; !ok {
			keys = append(keys, k)
		}
	}
	return keys
}
