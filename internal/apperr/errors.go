// Package apperr defines the error taxonomy shared by the domain services
// and mapped to HTTP status codes at the handler layer.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals that the referenced invoice does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized signals a missing, malformed or expired identity.
	ErrUnauthorized = errors.New("unauthorized")
)

// FieldError describes a single offending field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries the per-field messages for a rejected payload.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Add records an offending field with its message.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Empty reports whether no field failed.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// Validation builds a single-field validation error.
func Validation(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

// StoreError wraps a failure of the underlying record store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store wraps err as a StoreError, or returns nil if err is nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
