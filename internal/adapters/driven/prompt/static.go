package prompt

import (
	"context"
	"sync"

	"github.com/custodia-labs/revisify/internal/core/ports/driven"
)

// Ensure Static implements the interface.
var _ driven.Prompter = (*Static)(nil)

// Static answers prompts from preset values.
type Static struct {
	mu      sync.Mutex
	confirm bool
	answers []string
}

// Confirmed returns a prompter that accepts every confirmation.
func Confirmed() *Static {
	return &Static{confirm: true}
}

// Declined returns a prompter that declines every confirmation.
func Declined() *Static {
	return &Static{}
}

// Answers returns a prompter that replies to text prompts in order.
// Once the answers run out, further prompts are cancelled.
func Answers(answers ...string) *Static {
	return &Static{answers: answers}
}

// Confirm returns the preset decision.
func (s *Static) Confirm(_ context.Context, _ string) (bool, error) {
	return s.confirm, nil
}

// Prompt returns the next preset answer. An empty answer selects def.
func (s *Static) Prompt(_ context.Context, _, def string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.answers) == 0 {
		return "", driven.ErrPromptCancelled
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	if answer == "" {
		return def, nil
	}
	return answer, nil
}
