package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/revisify/internal/core/domain"
)

// ViewService renders the published note read-only.
type ViewService interface {
	// Load reads and renders the published note, or the placeholder.
	Load(ctx context.Context) (*domain.ViewedNote, error)

	// Watch emits the note whenever a new revision is published.
	// The current note is emitted first. The channel closes with ctx.
	Watch(ctx context.Context, interval time.Duration) (<-chan domain.ViewedNote, error)
}
