// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
)

// Precondition failures specific to order conversion. Surfaced as 4xx, never
// retried.
var (
	ErrEmptyCart      = errors.New("you do not have any positions in cart")
	ErrInvalidAddress = errors.New("you do not have shipping note with that id")
)

// ValidationError reports malformed or out-of-bounds input with field-level
// detail. Never retried automatically.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// PermissionError means the actor lacks the required role or ownership.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	return e.Message
}

func NewPermissionError(format string, args ...interface{}) *PermissionError {
	return &PermissionError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError identifies a missing resource by name.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// StorageError wraps a backing-store failure. The enclosing operation has been
// rolled back in full; the caller may retry the whole operation.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return "storage error: " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(err error) *StorageError {
	return &StorageError{Err: err}
}
