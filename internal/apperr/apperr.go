// Package apperr defines the tagged error variants shared across the
// application. Handlers and repositories return these instead of ad hoc
// errors so the terminal error handler can map them to HTTP responses by
// kind rather than by sniffing strings or driver codes.
package apperr

import "errors"

// Kind classifies a failure for response mapping.
type Kind int

const (
	// Unauthorized covers missing, malformed or invalid credentials (401).
	Unauthorized Kind = iota + 1
	// NotFound means the addressed row does not exist (404).
	NotFound
	// ConflictReferenced means a delete was blocked by a foreign key (409).
	ConflictReferenced
	// Driver is a classified storage/driver fault (500).
	Driver
	// Generic is any other unclassified failure (500).
	Generic
)

// Error is a tagged application error. Message is safe to return to the
// client; Err keeps the underlying cause for logging.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error keeping the underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
