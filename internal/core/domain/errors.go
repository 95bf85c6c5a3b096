package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSelection indicates a selection that does not fit the buffer.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrUnknownBlock indicates a wrap label that is not a styled block.
	ErrUnknownBlock = errors.New("unknown block label")

	// ErrNotConfirmed indicates the user declined a destructive action.
	ErrNotConfirmed = errors.New("not confirmed")

	// ErrStoreClosed indicates the draft store has been closed.
	ErrStoreClosed = errors.New("store closed")
)
