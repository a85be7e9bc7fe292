package domain

import (
	"errors"
	"fmt"
)

var (
	RefreshTokenNotFoundError = errors.New("refresh token not found for user")
)

// ValidationError reports a malformed or missing input field. It is always
// detected before any I/O happens.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field string, reason string) ValidationError {
	return ValidationError{Field: field, Reason: reason}
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func IsValidationError(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

// UnauthorizedError wraps any token verification or rotation failure.
// Callers surface it uniformly as unauthorized without exposing whether the
// token was expired, reused, or malformed.
type UnauthorizedError struct {
	cause error
}

func NewUnauthorizedError(cause error) UnauthorizedError {
	return UnauthorizedError{cause: cause}
}

func (e UnauthorizedError) Error() string {
	if e.cause == nil {
		return "unauthorized"
	}
	return "unauthorized: " + e.cause.Error()
}

func (e UnauthorizedError) Unwrap() error {
	return e.cause
}

func IsUnauthorizedError(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}
