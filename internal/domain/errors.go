package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrValidation        = errors.New("validation error")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrGone              = errors.New("gone")
	ErrInvalidTransition = errors.New("invalid transition")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// TransitionError reports a trigger that has no transition from the
// submission's current state.
type TransitionError struct {
	From    SubmissionState
	Trigger Trigger
	Valid   []Trigger
}

func (e *TransitionError) Error() string {
	names := make([]string, len(e.Valid))
	for i, t := range e.Valid {
		names[i] = t.String()
	}
	return fmt.Sprintf("Cannot trigger '%s' from state '%s'. Valid triggers: [%s]",
		e.Trigger, e.From, strings.Join(names, ", "))
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// PermissionError reports a principal that lacks the role a trigger requires.
type PermissionError struct {
	Trigger Trigger
	Reason  string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("cannot %s: %s", e.Trigger, e.Reason)
}

func (e *PermissionError) Unwrap() error { return ErrForbidden }
