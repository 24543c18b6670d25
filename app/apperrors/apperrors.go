// Package apperrors defines the error taxonomy shared by the service layer.
// Controllers translate these into JSON responses at the request boundary:
// validation → 400, authorization → 403, not found → 404.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound covers both missing records and records filtered out of the
// actor's visible set — the two are indistinguishable to the caller.
var ErrNotFound = errors.New("resource not found")

// ValidationError carries field-level messages for bad input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// Validation builds a single-field validation error.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// ValidationMap wraps a field→message map from pkg/validate.
func ValidationMap(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// AuthorizationError is returned when a role or ownership check fails.
// The message names the actor's role and the permitted roles or owners.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

// Forbidden builds an AuthorizationError with a formatted message.
func Forbidden(format string, args ...interface{}) *AuthorizationError {
	return &AuthorizationError{Message: fmt.Sprintf(format, args...)}
}

// AsValidation reports whether err is a ValidationError and returns it.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// AsAuthorization reports whether err is an AuthorizationError and returns it.
func AsAuthorization(err error) (*AuthorizationError, bool) {
	var ae *AuthorizationError
	ok := errors.As(err, &ae)
	return ae, ok
}
