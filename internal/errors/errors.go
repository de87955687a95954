package errors

import (
	"errors"
	"fmt"
)

// Common error types for the client SDK
var (
	// Transport errors
	ErrNetwork = errors.New("network error occurred")

	// API errors
	ErrSessionExpired = errors.New("session expired")
	ErrValidation     = errors.New("validation failed")
	ErrRequestFailed  = errors.New("request failed")
	ErrAuthorization  = errors.New("authorization required")

	// Session errors
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrOperationInFlight = errors.New("operation already in flight")
	ErrNoSnapshot        = errors.New("no session snapshot")

	// Comment errors
	ErrLoginRequired   = errors.New("login required")
	ErrLikeInFlight    = errors.New("like toggle already in flight")
	ErrDeleteCancelled = errors.New("delete cancelled")
	ErrCommentNotFound = errors.New("comment not found")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
