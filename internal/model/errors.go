package model

import "fmt"

// EmbedError represents a failure while merging the structured payload into a
// PDF. Embedding is the only fallible step of a generation call; it fails
// whole rather than producing a partially merged document.
type EmbedError struct {
	Stage   string // "read", "attach", "metadata", "write"
	Message string
	Cause   error
}

func (e *EmbedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embed failed [%s]: %s (%v)", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("embed failed [%s]: %s", e.Stage, e.Message)
}

func (e *EmbedError) Unwrap() error {
	return e.Cause
}

// NewEmbedError creates a new embed error
func NewEmbedError(stage, message string, cause error) *EmbedError {
	return &EmbedError{
		Stage:   stage,
		Message: message,
		Cause:   cause,
	}
}

// ValidationError represents a consistency-check failure on a Document
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}
