package errorwrapper

import (
	"errors"
	"fmt"
)

// Common error types used across the application
var (
	// ErrInvalidInput indicates invalid user input
	ErrInvalidInput = errors.New("invalid input")
	// ErrInputTooLarge indicates an input exceeding the configured size ceiling
	ErrInputTooLarge = errors.New("input too large")
	// ErrInvalidConfiguration indicates configuration issues
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return fmt.Errorf("%s: <nil>", message)
	}
	return fmt.Errorf("%s: %w", message, err)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// InputSide identifies which of the two diff inputs an error refers to.
type InputSide string

const (
	// SideLeft refers to the left/previous input
	SideLeft InputSide = "left"
	// SideRight refers to the right/current input
	SideRight InputSide = "right"
)

// ParseFailureError represents a fatal parse failure on one input side
type ParseFailureError struct {
	Side    InputSide
	Format  string
	Wrapped error
}

func (e *ParseFailureError) Error() string {
	return fmt.Sprintf("failed to parse %s input as %s: %v", e.Side, e.Format, e.Wrapped)
}

func (e *ParseFailureError) Unwrap() error {
	return e.Wrapped
}

// NewParseFailureError creates a new parse failure error for the given side
func NewParseFailureError(side InputSide, format string, wrapped error) *ParseFailureError {
	return &ParseFailureError{
		Side:    side,
		Format:  format,
		Wrapped: wrapped,
	}
}
