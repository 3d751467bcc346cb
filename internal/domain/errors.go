package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the repository, service and HTTP layers.
// The HTTP layer maps these onto the response taxonomy; everything else
// surfaces as an internal error.
var (
	// ErrDuplicateUsername is returned when a username is already held by
	// another account (registration or rename).
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so that login failures carry no enumeration signal.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers malformed, tampered and expired tokens alike.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUserNotFound is returned for lookups of a user id that does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrTaskNotFound is returned both when a task id does not exist and when
	// it exists but belongs to a different user. The two cases are deliberately
	// indistinguishable to the caller.
	ErrTaskNotFound = errors.New("task not found")
)

// ValidationError marks malformed or missing input. The HTTP layer turns it
// into a 400 with the message as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
