package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/core/ports/driven"
	"github.com/custodia-labs/revisify/internal/core/ports/driving"
	"github.com/custodia-labs/revisify/internal/logger"
)

// Ensure Publisher implements the interface.
var _ driving.PublishService = (*Publisher)(nil)

// bufferSource is the part of the edit session the publisher reads.
type bufferSource interface {
	Snapshot(ctx context.Context) (domain.Buffer, error)
}

// Publisher snapshots the edit buffer into the published note slot.
type Publisher struct {
	editor      bufferSource
	store       driven.DraftStore
	now         func() time.Time
	newRevision func() string
}

// NewPublisher creates a publisher reading from editor.
func NewPublisher(editor driving.EditService, store driven.DraftStore) *Publisher {
	return &Publisher{
		editor:      editor,
		store:       store,
		now:         time.Now,
		newRevision: uuid.NewString,
	}
}

// SetClock replaces the time source used for publish timestamps.
func (p *Publisher) SetClock(now func() time.Time) {
	p.now = now
}

// Publish writes the current buffer, its timestamp and a fresh revision id
// in one atomic store update. Empty buffers are published as-is. An unstarted
// session publishes the saved draft.
func (p *Publisher) Publish(ctx context.Context) (*domain.PublishedNote, error) {
	buf, err := p.editor.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}

	note := &domain.PublishedNote{
		Text:        buf.Text,
		PublishedAt: p.now().UTC(),
		Revision:    p.newRevision(),
	}

	if err := p.store.SetMany(ctx, note.Entries()); err != nil {
		return nil, fmt.Errorf("publish note: %w", err)
	}

	logger.Info("Published revision %s (%d bytes)", note.Revision, len(note.Text))
	return note, nil
}
