package models

import (
	"errors"
	"strings"
)

// Error categories. Handlers map them to HTTP status codes.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrDuplicateSlug      = errors.New("duplicate slug")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBadRequest         = errors.New("bad request")
)

// Error carries a client-facing message together with its category
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NotFound builds a not-found error with the given message
func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// Forbidden builds an authorization error with the given message
func Forbidden(message string) error {
	return &Error{Kind: ErrForbidden, Message: message}
}

// Conflict builds a uniqueness violation error with the given message
func Conflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

// BadRequest builds a single-message client error
func BadRequest(message string) error {
	return &Error{Kind: ErrBadRequest, Message: message}
}

// ValidationError lists every field-level failure of a request
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// NewValidationError returns nil when there are no messages
func NewValidationError(messages ...string) error {
	if len(messages) == 0 {
		return nil
	}
	return &ValidationError{Messages: messages}
}
