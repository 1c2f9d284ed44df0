package services

import (
	"errors"
	"fmt"
)

// Core error taxonomy. Services return these verbatim; controllers translate
// them to HTTP statuses. A soft-deleted target surfaces as ErrNotFound, so
// callers cannot tell a deleted row from a missing one.
var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidState     = errors.New("invalid state")
)

// ValidationError reports caller-fixable input problems with the offending
// field named.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
