package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service wraps exactly one of these,
// so the transport layer can map it with errors.Is.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid transition")
)

// Wrap attaches a kind to a message.
func Wrap(kind error, message string) error {
	return &kindError{kind: kind, message: message}
}

// Wrapf is Wrap with formatting.
func Wrapf(kind error, format string, args ...any) error {
	return &kindError{kind: kind, message: fmt.Sprintf(format, args...)}
}

type kindError struct {
	kind    error
	message string
}

func (e *kindError) Error() string {
	return e.message
}

func (e *kindError) Unwrap() error {
	return e.kind
}

// TransitionError reports an illegal lifecycle move.
type TransitionError struct {
	From DonationStatus
	To   DonationStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move donation from %q to %q", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
