// Package errors provides structured error types for hypercuboid.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Geometric contract violations carry their own codes so callers can tell a
// broken precondition (NON_OVERLAPPING_INTERVAL, DIMENSION_MISMATCH,
// DEGENERATE_BOX, INVALID_AXIS) apart from bad files or flags
// (INVALID_INPUT, INVALID_FORMAT, INVALID_PATH) and from resource limits
// (CELL_LIMIT_EXCEEDED).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDegenerateBox, "box %d is empty on axis %d", i, d)
//	if errors.Is(err, errors.ErrCodeDegenerateBox) {
//	    // Handle contract violation
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Geometric contract violations
	ErrCodeNonOverlapping    Code = "NON_OVERLAPPING_INTERVAL"
	ErrCodeDimensionMismatch Code = "DIMENSION_MISMATCH"
	ErrCodeDegenerateBox     Code = "DEGENERATE_BOX"
	ErrCodeInvalidAxis       Code = "INVALID_AXIS"
	ErrCodeEmptyInput        Code = "EMPTY_INPUT"

	// Resource limits
	ErrCodeCellLimit Code = "CELL_LIMIT_EXCEEDED"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// Only the outermost *Error is consulted; wrap with the same code to keep
// a contract violation visible through additional context.
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

// IsContractViolation reports whether err signals a broken geometric
// precondition rather than an I/O or configuration problem.
func IsContractViolation(err error) bool {
	switch GetCode(err) {
	case ErrCodeNonOverlapping, ErrCodeDimensionMismatch, ErrCodeDegenerateBox,
		ErrCodeInvalidAxis, ErrCodeEmptyInput:
		return true
	}
	return false
}
