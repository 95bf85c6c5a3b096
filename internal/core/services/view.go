package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/core/ports/driven"
	"github.com/custodia-labs/revisify/internal/core/ports/driving"
	"github.com/custodia-labs/revisify/internal/logger"
)

// Ensure Viewer implements the interface.
var _ driving.ViewService = (*Viewer)(nil)

// DefaultPollInterval is used by Watch when no interval is given.
const DefaultPollInterval = 5 * time.Second

// Viewer renders the published note. It never writes to the store.
type Viewer struct {
	store     driven.DraftStore
	renderer  driven.Renderer
	templates driven.TemplateStore
}

// NewViewer creates a new viewer.
func NewViewer(store driven.DraftStore, renderer driven.Renderer) *Viewer {
	return &Viewer{
		store:    store,
		renderer: renderer,
	}
}

// SetTemplates sets the store used for the placeholder document.
func (v *Viewer) SetTemplates(t driven.TemplateStore) {
	v.templates = t
}

// Load reads the published note in one snapshot and renders it.
// When nothing has been published the placeholder document is rendered.
func (v *Viewer) Load(ctx context.Context) (*domain.ViewedNote, error) {
	entries, err := v.store.GetMany(ctx, domain.PublishedKeys()...)
	if err != nil {
		return nil, fmt.Errorf("load published note: %w", err)
	}

	note, err := domain.PublishedNoteFromEntries(entries)
	if err != nil {
		return nil, fmt.Errorf("load published note: %w", err)
	}

	src := loadTemplate(v.templates, driven.TemplateViewerPlaceholder, domain.ViewerPlaceholder)
	if note != nil {
		src = note.Text
	}

	html, err := v.renderer.Render(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("render published note: %w", err)
	}

	return &domain.ViewedNote{
		Note:   note,
		Source: src,
		HTML:   html,
	}, nil
}

// Watch emits the current note, then every newly published revision.
//
// Stores implementing driven.Subscriber push changes; otherwise the store is
// polled every interval. The returned channel is closed when ctx is done.
func (v *Viewer) Watch(ctx context.Context, interval time.Duration) (<-chan domain.ViewedNote, error) {
	first, err := v.Load(ctx)
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	var events <-chan string
	if sub, ok := v.store.(driven.Subscriber); ok {
		events, err = sub.Subscribe(ctx)
		if err != nil {
			logger.Warn("Store subscription failed, falling back to polling: %v", err)
			events = nil
		}
	}

	out := make(chan domain.ViewedNote, 1)
	out <- *first

	go v.watch(ctx, out, events, interval, first.Revision())
	return out, nil
}

func (v *Viewer) watch(
	ctx context.Context,
	out chan<- domain.ViewedNote,
	events <-chan string,
	interval time.Duration,
	lastRevision string,
) {
	defer close(out)

	var tick <-chan time.Time
	if events == nil {
		logger.Debug("Viewer polling every %s", interval)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	} else {
		logger.Debug("Viewer subscribed to store changes")
	}

	for {
		select {
		case <-ctx.Done():
			return
		case key, ok := <-events:
			if !ok {
				return
			}
			if !isPublishedKey(key) {
				continue
			}
		case <-tick:
		}

		note, err := v.Load(ctx)
		if err != nil {
			logger.Warn("Viewer reload failed: %v", err)
			continue
		}
		if note.Revision() == lastRevision {
			continue
		}
		lastRevision = note.Revision()

		select {
		case out <- *note:
		case <-ctx.Done():
			return
		}
	}
}

func isPublishedKey(key string) bool {
	for _, k := range domain.PublishedKeys() {
		if k == key {
			return true
		}
	}
	return false
}
