package api

import (
	stderrors "errors"
	"net/http"

	"github.com/studienwege/go-client/internal/errors"
)

// Error is the normalized error for every failed API call. It always carries
// an HTTP-ish status and, for validation failures, the server's field map.
type Error struct {
	Message string
	Status  int
	Errors  map[string]string

	sentinel error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the taxonomy sentinel so errors.Is works across layers.
func (e *Error) Unwrap() error { return e.sentinel }

func newSessionExpiredError() *Error {
	return &Error{
		Message:  "Session expired. Please log in again.",
		Status:   http.StatusUnauthorized,
		sentinel: errors.ErrSessionExpired,
	}
}

// NewValidationError builds a client-side validation failure carrying a
// field-level error map, shaped like the server's own validation responses.
func NewValidationError(message string, fieldErrors map[string]string) *Error {
	return newValidationError(message, http.StatusBadRequest, fieldErrors)
}

func newValidationError(message string, status int, fieldErrors map[string]string) *Error {
	if message == "" {
		message = "Validation failed"
	}
	return &Error{
		Message:  message,
		Status:   status,
		Errors:   fieldErrors,
		sentinel: errors.ErrValidation,
	}
}

func newRequestFailedError(message string, status int) *Error {
	if message == "" {
		message = "Request failed"
	}
	return &Error{
		Message:  message,
		Status:   status,
		sentinel: errors.ErrRequestFailed,
	}
}

func newNetworkError() *Error {
	return &Error{
		Message:  "Network error occurred",
		Status:   http.StatusInternalServerError,
		sentinel: errors.ErrNetwork,
	}
}

func newAuthorizationError() *Error {
	return &Error{
		Message:  "You need to log in to perform this action.",
		Status:   http.StatusUnauthorized,
		sentinel: errors.ErrAuthorization,
	}
}

// IsSessionExpired reports whether err is the distinguished 401 raised on an
// authenticated call.
func IsSessionExpired(err error) bool {
	return stderrors.Is(err, errors.ErrSessionExpired)
}

// IsValidation reports whether err carries a field-level error map.
func IsValidation(err error) bool {
	return stderrors.Is(err, errors.ErrValidation)
}

// IsNetwork reports whether err is a normalized transport failure.
func IsNetwork(err error) bool {
	return stderrors.Is(err, errors.ErrNetwork)
}

// IsAuthorization reports whether err was rewritten to the fixed
// "log in to perform this action" failure.
func IsAuthorization(err error) bool {
	return stderrors.Is(err, errors.ErrAuthorization)
}

// FieldErrors returns the server's field-level error map, or nil.
func FieldErrors(err error) map[string]string {
	var apiErr *Error
	if stderrors.As(err, &apiErr) {
		return apiErr.Errors
	}
	return nil
}
