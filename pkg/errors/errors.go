// Package errors provides structured error types for scrollplot.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the player and the preview server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Story, dataset or flag validation failures
//   - *_NOT_FOUND: Referenced resource does not exist
//   - INTERNAL_*: Unexpected internal errors
//
// A category that a step references but the dataset lacks is a configuration
// error. It is reported by validation before anything is rendered.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeCategoryNotFound, "unknown category %q", name)
//	if errors.Is(err, errors.ErrCodeCategoryNotFound) {
//	    // Handle missing category
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidStory, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidStory   Code = "INVALID_STORY"
	ErrCodeInvalidDataset Code = "INVALID_DATASET"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeCategoryNotFound Code = "CATEGORY_NOT_FOUND"
	ErrCodeStepOutOfRange   Code = "STEP_OUT_OF_RANGE"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// Join collects validation problems into a single error.
// It returns nil when errs holds no non-nil error.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
