package driven

import (
	"context"
	"errors"
)

// ErrPromptCancelled is returned by a Prompter when the user dismisses a prompt.
var ErrPromptCancelled = errors.New("prompt cancelled")

// Prompter asks the user questions on behalf of core services.
type Prompter interface {
	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, message string) (bool, error)

	// Prompt asks for a line of text, offering def as the default.
	// It returns ErrPromptCancelled if the user cancels.
	Prompt(ctx context.Context, message, def string) (string, error)
}
