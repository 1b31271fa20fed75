package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrAuth             = errors.New("authentication failed")
	ErrForbidden        = errors.New("forbidden")
	ErrAlreadyFollowing = errors.New("already following")
	ErrNotFollowing     = errors.New("not following")
	ErrStore            = errors.New("store failure")
)

// Error is a user-facing failure. Msg is safe to show to the client; Kind is
// one of the sentinels above so callers can branch with errors.Is.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

func validationError(msg string) error { return newError(ErrValidation, msg) }

func notFoundError(msg string) error { return newError(ErrNotFound, msg) }

// storeError wraps a persistence failure so it matches both ErrStore and the
// underlying driver error.
func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}

// Message returns the text to show for err. Store and unknown errors are not
// exposed.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "Something went wrong, please try again"
}
