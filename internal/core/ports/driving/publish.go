package driving

import (
	"context"

	"github.com/custodia-labs/revisify/internal/core/domain"
)

// PublishService snapshots the edit buffer for the viewer.
type PublishService interface {
	// Publish writes the current buffer as the published note.
	Publish(ctx context.Context) (*domain.PublishedNote, error)
}
