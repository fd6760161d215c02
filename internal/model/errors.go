package model

import "fmt"

// ValidationError reports a violated entity invariant. Field names the
// offending input so callers can point the user at it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ReferenceError reports an id that does not resolve to an existing entity.
type ReferenceError struct {
	Entity string
	ID     string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func NewReferenceError(entity string, id fmt.Stringer) error {
	return &ReferenceError{Entity: entity, ID: id.String()}
}
