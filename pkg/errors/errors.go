package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the typed failure returned by services and rendered by pkg/response.
// Code is the stable machine-readable value clients switch on.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target carries the same code, so a customised copy of a
// sentinel still satisfies errors.Is against it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// WithMessage copies e with a caller-facing message. An empty message keeps the default.
func (e *Error) WithMessage(message string) *Error {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Err = nil
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Wrap copies e with message and records cause for logs; cause is never serialised.
func (e *Error) Wrap(cause error, message string) *Error {
	clone := e.WithMessage(message)
	if clone != nil {
		clone.Err = cause
	}
	return clone
}

func define(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

var (
	// Request shape and catalog lookups.
	ErrValidation        = define("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrUnsupportedFormat = define("UNSUPPORTED_FORMAT", http.StatusBadRequest, "unsupported export format")
	ErrNotFound          = define("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict          = define("CONFLICT", http.StatusConflict, "conflict")

	// Accounts.
	ErrUnauthorized       = define("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrInvalidCredentials = define("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrForbidden          = define("FORBIDDEN", http.StatusForbidden, "forbidden")

	// A collaborator (database, bookmark store, submission queue) is down.
	ErrUnavailable = define("SERVICE_UNAVAILABLE", http.StatusServiceUnavailable, "service unavailable")
	ErrInternal    = define("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// FromError finds the typed error in err's chain. Anything untyped becomes ErrInternal
// with the original kept as the cause.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrInternal.Wrap(err, "")
}
