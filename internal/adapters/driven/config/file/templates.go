package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/core/ports/driven"
)

// Ensure TemplateStore implements the interface.
var _ driven.TemplateStore = (*TemplateStore)(nil)

// templateExt is the file extension of template files.
const templateExt = ".md"

// TemplateStore loads note templates from user-editable files on disk,
// falling back to the built-in defaults.
//
// The store uses lazy initialisation: files are only created on the first
// Load, not in the constructor.
type TemplateStore struct {
	mu       sync.RWMutex
	dir      string
	cache    map[string]string
	initOnce sync.Once
	initErr  error
}

// defaultTemplates are written to disk on first use.
var defaultTemplates = map[string]string{
	driven.TemplateWelcome:           domain.WelcomeTemplate,
	driven.TemplateTable:             domain.TableTemplate,
	driven.TemplateViewerPlaceholder: domain.ViewerPlaceholder,
}

// NewTemplateStore creates a new file-based template store.
// If dir is empty, defaults to ~/.revisify/templates/.
func NewTemplateStore(dir string) (*TemplateStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".revisify", "templates")
	}

	return &TemplateStore{
		dir:   dir,
		cache: make(map[string]string),
	}, nil
}

// Load returns the named template.
// A missing or unreadable file falls back to the built-in default.
func (s *TemplateStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)

	s.mu.RLock()
	if tmpl, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return tmpl, nil
	}
	s.mu.RUnlock()

	tmpl, err := s.loadFromFile(name)
	if err != nil || s.initErr != nil {
		if def, ok := defaultTemplates[name]; ok {
			return def, nil
		}
		if err == nil {
			err = s.initErr
		}
		return "", fmt.Errorf("load template %q: %w", name, err)
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		tmpl = cached
	} else {
		s.cache[name] = tmpl
	}
	s.mu.Unlock()

	return tmpl, nil
}

// Reload clears the cache, forcing fresh loads from disk.
func (s *TemplateStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the template directory path.
func (s *TemplateStore) Dir() string {
	return s.dir
}

// initialise creates the directory and writes any missing default files.
func (s *TemplateStore) initialise() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.initErr = fmt.Errorf("create template directory: %w", err)
		return
	}

	for name, content := range defaultTemplates {
		path := filepath.Join(s.dir, name+templateExt)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default template %q: %w", name, err)
				return
			}
		}
	}
}

// loadFromFile reads a template verbatim; trailing newlines are significant.
func (s *TemplateStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name+templateExt))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
