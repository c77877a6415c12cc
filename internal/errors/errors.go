package errors

import (
	"errors"
	"fmt"
)

// Common error types for the styleDecor gateway
var (
	// Validation errors (local, never sent to the backend)
	ErrMissingFields = errors.New("required fields are missing")
	ErrWeakPassword  = errors.New("password does not meet requirements")
	ErrInvalidEmail  = errors.New("invalid email address")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenMissing       = errors.New("login response contained no token")
	ErrNotAuthenticated   = errors.New("not authenticated")

	// Authorization errors
	ErrForbidden = errors.New("insufficient role for this destination")

	// Session errors
	ErrSessionExpired = errors.New("session expired")

	// Backend errors
	ErrBackendTimeout     = errors.New("backend request timed out")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrNotFound           = errors.New("not found")

	// General errors
	ErrInternal = errors.New("internal error")
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
