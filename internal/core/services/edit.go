package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/core/ports/driven"
	"github.com/custodia-labs/revisify/internal/core/ports/driving"
	"github.com/custodia-labs/revisify/internal/logger"
)

// Ensure EditSession implements the interface.
var _ driving.EditService = (*EditSession)(nil)

// Prompt texts shown by interactive operations.
const (
	promptImageURL = "Enter image URL (or leave empty for placeholder):"
	promptImageAlt = "Enter alt text for the image:"
	promptClear    = "Clear the editor? This cannot be undone."
)

// EditSession owns the note buffer. It is the only writer of the draft.
//
// Every mutation runs the full cycle: persist the draft, render the preview,
// recompute counts. There is no batching; calls are serialised by a mutex so
// concurrent adapters observe them one at a time.
type EditSession struct {
	store     driven.DraftStore
	renderer  driven.Renderer
	prompter  driven.Prompter
	templates driven.TemplateStore
	now       func() time.Time

	mu       sync.Mutex
	started  bool
	buf      domain.Buffer
	rendered domain.Rendered
}

// NewEditSession creates a new edit session.
// The prompter is optional (can be nil); without it prompts are cancelled.
func NewEditSession(store driven.DraftStore, renderer driven.Renderer, prompter driven.Prompter) *EditSession {
	return &EditSession{
		store:    store,
		renderer: renderer,
		prompter: prompter,
		now:      time.Now,
	}
}

// SetPrompter sets the prompter used by PromptImage and Clear.
func (s *EditSession) SetPrompter(p driven.Prompter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompter = p
}

// SetTemplates sets the store used for the welcome and table templates.
// Without one the built-in templates are used.
func (s *EditSession) SetTemplates(t driven.TemplateStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = t
}

// SetClock replaces the time source used for export names.
func (s *EditSession) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Start loads the draft, falling back to the welcome template, and renders it.
func (s *EditSession) Start(ctx context.Context) (*domain.Rendered, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	rendered := s.rendered
	return &rendered, nil
}

// load restores the buffer from the store (caller must hold lock).
func (s *EditSession) load(ctx context.Context) error {
	text, ok, err := s.store.Get(ctx, domain.KeyDraft)
	if err != nil {
		return fmt.Errorf("load draft: %w", err)
	}
	if !ok {
		logger.Debug("No saved draft, starting from welcome template")
		text = loadTemplate(s.templates, driven.TemplateWelcome, domain.WelcomeTemplate)
	} else {
		logger.Debug("Restored draft (%d bytes)", len(text))
	}

	s.buf = domain.NewBuffer(text)
	if err := s.render(ctx); err != nil {
		return err
	}
	s.started = true
	return nil
}

// ensureStarted lazily loads the draft (caller must hold lock).
func (s *EditSession) ensureStarted(ctx context.Context) error {
	if s.started {
		return nil
	}
	return s.load(ctx)
}

// Buffer returns the current text and selection.
func (s *EditSession) Buffer() domain.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf
}

// Snapshot returns the buffer, starting the session on first use.
func (s *EditSession) Snapshot(ctx context.Context) (domain.Buffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureStarted(ctx); err != nil {
		return domain.Buffer{}, err
	}
	return s.buf, nil
}

// Rendered returns the most recent render.
func (s *EditSession) Rendered() domain.Rendered {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rendered
}

// Select moves the selection without changing the text.
func (s *EditSession) Select(sel domain.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := domain.Buffer{Text: s.buf.Text, Selection: sel}
	if err := next.Validate(); err != nil {
		return err
	}
	s.buf = next
	return nil
}

// OnTextChanged replaces the buffer with the host control's content.
func (s *EditSession) OnTextChanged(
	ctx context.Context, text string, sel domain.Selection,
) (*domain.Rendered, error) {
	return s.mutate(ctx, func(domain.Buffer) (domain.Buffer, error) {
		return domain.Buffer{Text: text, Selection: sel}.Normalize(), nil
	})
}

// Insert adds before and after around the selection.
func (s *EditSession) Insert(ctx context.Context, before, after string) (*domain.Rendered, error) {
	return s.mutate(ctx, func(b domain.Buffer) (domain.Buffer, error) {
		return domain.Insert(b, before, after), nil
	})
}

// WrapSelection wraps the selection in the styled block named label.
func (s *EditSession) WrapSelection(ctx context.Context, label string) (*domain.Rendered, error) {
	block, err := domain.ParseBlockLabel(label)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, func(b domain.Buffer) (domain.Buffer, error) {
		return domain.WrapBlock(b, block), nil
	})
}

// InsertTableTemplate inserts the table skeleton at the selection.
func (s *EditSession) InsertTableTemplate(ctx context.Context) (*domain.Rendered, error) {
	s.mu.Lock()
	table := loadTemplate(s.templates, driven.TemplateTable, domain.TableTemplate)
	s.mu.Unlock()
	return s.Insert(ctx, table, "")
}

// InsertImage inserts an image reference.
func (s *EditSession) InsertImage(ctx context.Context, alt, url string) (*domain.Rendered, error) {
	return s.Insert(ctx, domain.ImageMarkup(alt, url), "")
}

// InsertImageData inserts an image embedded as a data URL.
// The alt text is name without its extension.
func (s *EditSession) InsertImageData(
	ctx context.Context, name, mimeType string, data []byte,
) (*domain.Rendered, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrInvalidInput)
	}
	if mimeType == "" {
		mimeType = detectMIMEType(name, data)
	}
	alt := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return s.InsertImage(ctx, alt, domain.DataURL(mimeType, data))
}

// InsertImageFile reads a local file and inserts it as a data URL.
func (s *EditSession) InsertImageFile(ctx context.Context, path string) (*domain.Rendered, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return s.InsertImageData(ctx, path, "", data)
}

// PromptImage asks for an image URL and alt text, then inserts the image.
// Cancelling either prompt is not an error and leaves the buffer untouched.
func (s *EditSession) PromptImage(ctx context.Context) (bool, error) {
	p := prompterFrom(ctx, s.prompterSnapshot())
	if p == nil {
		return false, nil
	}

	url, err := p.Prompt(ctx, promptImageURL, domain.PlaceholderImageURL)
	if errors.Is(err, driven.ErrPromptCancelled) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("prompt image url: %w", err)
	}

	alt, err := p.Prompt(ctx, promptImageAlt, domain.DefaultImageAlt)
	if errors.Is(err, driven.ErrPromptCancelled) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("prompt image alt: %w", err)
	}

	if _, err := s.InsertImage(ctx, alt, url); err != nil {
		return false, err
	}
	return true, nil
}

// Clear asks for confirmation, then empties the buffer and removes the draft.
// Declining leaves both the buffer and the stored draft unchanged.
func (s *EditSession) Clear(ctx context.Context) (bool, error) {
	p := prompterFrom(ctx, s.prompterSnapshot())
	if p == nil {
		return false, nil
	}

	ok, err := p.Confirm(ctx, promptClear)
	if errors.Is(err, driven.ErrPromptCancelled) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("confirm clear: %w", err)
	}
	if !ok {
		logger.Debug("Clear declined")
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf = domain.Buffer{}
	s.started = true
	if err := s.render(ctx); err != nil {
		return false, err
	}
	if err := s.store.Remove(ctx, domain.KeyDraft); err != nil {
		return false, fmt.Errorf("remove draft: %w", err)
	}
	logger.Info("Editor cleared")
	return true, nil
}

// Export packages the buffer as a markdown download. Nothing is persisted.
func (s *EditSession) Export(ctx context.Context) domain.Export {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureStarted(ctx); err != nil {
		logger.Warn("Export before start: %v", err)
	}
	return domain.NewExport(s.buf.Text, s.now())
}

func (s *EditSession) prompterSnapshot() driven.Prompter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompter
}

// mutate applies fn to the buffer and runs the persist and render cycle.
func (s *EditSession) mutate(
	ctx context.Context, fn func(domain.Buffer) (domain.Buffer, error),
) (*domain.Rendered, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureStarted(ctx); err != nil {
		return nil, err
	}

	next, err := fn(s.buf)
	if err != nil {
		return nil, err
	}
	s.buf = next

	if err := s.store.Set(ctx, domain.KeyDraft, next.Text); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	if err := s.render(ctx); err != nil {
		return nil, err
	}

	rendered := s.rendered
	return &rendered, nil
}

// render refreshes the preview from the buffer (caller must hold lock).
func (s *EditSession) render(ctx context.Context) error {
	html, err := s.renderer.Render(ctx, s.buf.Text)
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	s.rendered = domain.Rendered{
		HTML:   html,
		Counts: s.buf.Counts(),
	}
	return nil
}

// loadTemplate returns the named template, or def when unavailable.
func loadTemplate(store driven.TemplateStore, name, def string) string {
	if store == nil {
		return def
	}
	tmpl, err := store.Load(name)
	if err != nil {
		logger.Warn("Template %s unavailable: %v", name, err)
		return def
	}
	return tmpl
}

// detectMIMEType guesses the content type from the extension, then the bytes.
func detectMIMEType(name string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}
