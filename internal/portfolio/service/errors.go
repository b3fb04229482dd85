package service

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these to status codes; anything else is a 500.
var (
	ErrBadRequest      = errors.New("bad_request")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not_found")
	ErrConflict        = errors.New("conflict")
)

// Error is a client-facing failure. Message is safe to return verbatim.
type Error struct {
	Kind    error
	Message string
	Details []string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Message) }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string, details ...string) *Error {
	return &Error{Kind: kind, Message: msg, Details: details}
}

func badRequest(msg string, details ...string) *Error {
	return newError(ErrBadRequest, msg, details...)
}

func unauthenticated(msg string) *Error { return newError(ErrUnauthenticated, msg) }
func forbidden(msg string) *Error       { return newError(ErrForbidden, msg) }
func notFound(msg string) *Error        { return newError(ErrNotFound, msg) }
func conflict(msg string) *Error        { return newError(ErrConflict, msg) }
