// Package stitcherrors provides structured error types for restitch.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - ValidationError: structurally invalid input combinations detected
//     before any source text is produced
//   - NotFoundError: a merge target declaration does not exist in the
//     supplied source
//   - MalformedSourceError: a merge target exists but lacks a recognizable
//     field list
//
// # Usage with errors.Is
//
//	patched, err := merger.MergeDto(src, schema)
//	if err != nil {
//	    if errors.Is(err, stitcherrors.ErrNotFound) {
//	        // Declaration missing: generate it fresh instead of merging
//	    }
//	}
package stitcherrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrValidation indicates a structurally invalid input combination.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a merge target declaration was not found.
	ErrNotFound = errors.New("declaration not found")

	// ErrMalformedSource indicates a merge target exists but is not in a
	// recognizable shape.
	ErrMalformedSource = errors.New("malformed source")
)

// ValidationError represents a structurally invalid input combination detected
// before any text is produced. Generation fails atomically: no partial output
// is returned alongside this error.
type ValidationError struct {
	// Path is the model path to the problematic element
	// (e.g., "endpoints.listPets.parameters.filter")
	Path string
	// Field is the specific field name with the issue
	Field string
	// Value is the problematic value (may be nil)
	Value any
	// Message describes the validation failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Field != "" {
		msg += "." + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError represents a merge target declaration that does not exist in
// the supplied source text.
type NotFoundError struct {
	// Declaration is the name of the declaration that was not found
	Declaration string
	// Message provides additional context about the lookup
	Message string
}

// Error returns a human-readable error message.
func (e *NotFoundError) Error() string {
	msg := "declaration not found"
	if e.Declaration != "" {
		msg += ": " + e.Declaration
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as NotFoundError has no underlying cause.
func (e *NotFoundError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// MalformedSourceError represents a merge target that exists in the supplied
// source but lacks a recognizable field list or method set.
type MalformedSourceError struct {
	// Declaration is the name of the malformed declaration
	Declaration string
	// Message describes what was expected and what was found
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *MalformedSourceError) Error() string {
	msg := "malformed source"
	if e.Declaration != "" {
		msg += ": " + e.Declaration
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *MalformedSourceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *MalformedSourceError) Is(target error) bool {
	return target == ErrMalformedSource
}

// Validationf constructs a ValidationError with a formatted message.
func Validationf(path, field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Path:    path,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}
