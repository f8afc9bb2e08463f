package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrInvalidScope rejects a computation window before any work starts:
	// a request must carry a date cutoff or a matchday range, never both.
	ErrInvalidScope = errors.New("invalid scope")
)
