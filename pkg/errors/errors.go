// Package errors provides structured error types for depwalk.
//
// Every error that leaves the core carries a machine-readable [Code]. The
// codes fall into three families:
//
//   - Validation (INVALID_*): bad input to an entry point, e.g. a negative
//     depth bound or an empty package name. Non-recoverable.
//   - Fetch (FETCH_FAILED): a dependency source could not resolve one
//     package. The graph builder catches these per package and keeps going.
//   - Configuration (INVALID_CONFIG): malformed static repository data or
//     config files. Non-recoverable.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidDepth, "max depth must be non-negative, got %d", d)
//	if errors.IsValidation(err) {
//	    // abort the run
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFetch, origErr, "resolve %s", name)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidPackage Code = "INVALID_PACKAGE"
	ErrCodeInvalidDepth   Code = "INVALID_DEPTH"
	ErrCodeInvalidMode    Code = "INVALID_MODE"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Dependency source errors
	ErrCodeFetch Code = "FETCH_FAILED"

	// Configuration errors
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Internal errors
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
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsValidation reports whether err is a validation failure (any INVALID_*
// code except INVALID_CONFIG).
func IsValidation(err error) bool {
	c := GetCode(err)
	return c != ErrCodeInvalidConfig && strings.HasPrefix(string(c), "INVALID_")
}

// IsFetch reports whether err carries ErrCodeFetch anywhere in its chain.
func IsFetch(err error) bool {
	return Is(err, ErrCodeFetch)
}

// IsConfiguration reports whether err carries ErrCodeInvalidConfig anywhere
// in its chain.
func IsConfiguration(err error) bool {
	return Is(err, ErrCodeInvalidConfig)
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}
