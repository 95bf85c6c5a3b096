package services

import (
	"context"

	"github.com/custodia-labs/revisify/internal/core/ports/driven"
)

type prompterKey struct{}

// WithPrompter returns a context whose prompts are answered by p.
// It overrides the prompter configured on a session for a single call,
// which lets request-driven adapters pass the user's answer along.
func WithPrompter(ctx context.Context, p driven.Prompter) context.Context {
	return context.WithValue(ctx, prompterKey{}, p)
}

// prompterFrom returns the prompter carried by ctx, or fallback.
func prompterFrom(ctx context.Context, fallback driven.Prompter) driven.Prompter {
	if p, ok := ctx.Value(prompterKey{}).(driven.Prompter); ok && p != nil {
		return p
	}
	return fallback
}
