package driving

import (
	"context"

	"github.com/custodia-labs/revisify/internal/core/domain"
)

// EditService owns the note being edited. Every mutating call re-renders the
// preview and persists the draft before it returns.
type EditService interface {
	// Start loads the saved draft, or the welcome template when there is
	// none, and renders it. Calling Start again reloads from the store.
	Start(ctx context.Context) (*domain.Rendered, error)

	// Buffer returns the current text and selection.
	Buffer() domain.Buffer

	// Snapshot returns the buffer, loading the saved draft first if the
	// session has not started. It never reloads a started session.
	Snapshot(ctx context.Context) (domain.Buffer, error)

	// Rendered returns the most recent render.
	Rendered() domain.Rendered

	// Select moves the selection without changing the text.
	Select(sel domain.Selection) error

	// OnTextChanged replaces the buffer with the host control's content.
	OnTextChanged(ctx context.Context, text string, sel domain.Selection) (*domain.Rendered, error)

	// Insert adds before and after around the selection.
	Insert(ctx context.Context, before, after string) (*domain.Rendered, error)

	// WrapSelection wraps the selection in the styled block named label.
	WrapSelection(ctx context.Context, label string) (*domain.Rendered, error)

	// InsertTableTemplate inserts the table skeleton at the selection.
	InsertTableTemplate(ctx context.Context) (*domain.Rendered, error)

	// InsertImage inserts an image reference.
	InsertImage(ctx context.Context, alt, url string) (*domain.Rendered, error)

	// InsertImageData inserts an image embedded as a data URL.
	InsertImageData(ctx context.Context, name, mimeType string, data []byte) (*domain.Rendered, error)

	// InsertImageFile reads a local file and inserts it as a data URL.
	InsertImageFile(ctx context.Context, path string) (*domain.Rendered, error)

	// PromptImage asks for an image URL and alt text, then inserts it.
	// Cancelling either prompt leaves the buffer untouched.
	PromptImage(ctx context.Context) (bool, error)

	// Clear asks for confirmation, then empties the buffer and removes the
	// draft. It reports whether the buffer was cleared.
	Clear(ctx context.Context) (bool, error)

	// Export packages the buffer as a markdown download.
	Export(ctx context.Context) domain.Export
}
