package driven

import "context"

// Renderer converts note markdown into its display form.
//
// Implementations must be deterministic for the same input and must not
// fail on malformed math or code: those segments degrade to plain text.
// An error means the output could not be produced at all.
type Renderer interface {
	// Render converts src.
	Render(ctx context.Context, src string) (string, error)
}
