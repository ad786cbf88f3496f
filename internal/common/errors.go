package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound         = errors.New("not found")
	ErrorAlreadyExists    = errors.New("already exists")
	ErrStorageUnavailable = errors.New("local storage unavailable")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	ErrorInvalidLoginPassword = errors.New("invalid login/password")
)

// NormalizationError reports a remote pass record that could not be turned
// into a local one. The record is skipped; the rest of the batch proceeds.
type NormalizationError struct {
	PassID string
	Reason string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("pass %q: %s", e.PassID, e.Reason)
}

// Unwrap lets callers match NormalizationError with errors.Is(err, ErrorValidation).
func (e *NormalizationError) Unwrap() error {
	return ErrorValidation
}
