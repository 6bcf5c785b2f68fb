// Package apperr defines the error kinds shared by the server and the storefront
// client. Every error surfaced to a user belongs to exactly one kind.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrFetch      = errors.New("fetch error")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("authentication failed")
	ErrStorage    = errors.New("storage error")
)

// Error carries a user-facing message, its kind and an optional cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind error, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error { return New(ErrValidation, message) }

func Conflict(message string) *Error { return New(ErrConflict, message) }

func Auth(message string) *Error { return New(ErrAuth, message) }

func Fetch(message string, err error) *Error { return Wrap(ErrFetch, message, err) }

// Storage hides the backing-store failure behind a generic message.
func Storage(err error) *Error { return Wrap(ErrStorage, "internal server error", err) }

// Message returns the user-facing part of err. Errors outside the taxonomy
// yield fallback.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}

// Status maps an error kind to the HTTP status the API responds with.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// FromStatus is the inverse of Status, used by API clients.
func FromStatus(status int, message string) *Error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return Auth(message)
	case status == http.StatusConflict:
		return Conflict(message)
	case status >= 400 && status < 500:
		return Validation(message)
	default:
		return New(ErrStorage, message)
	}
}
