// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters and configuration
//   - Data errors (200-299): Missing columns, malformed cells, bad dates
//   - Indicator errors (300-399): Technical indicator calculation errors
//   - Dataset I/O errors (400-499): Reading raw tables and exporting labeled tables
//   - Market data errors (700-799): Market data fetching and writing errors
//
// Usage:
//
//	err := errors.New(errors.ErrCodeInvalidParameter, "invalid parameter value")
//	err := errors.Newf(errors.ErrCodeMissingColumn, "missing required column %q", name)
//	err := errors.Wrap(errors.ErrCodeQueryFailed, "failed to execute query", originalErr)
//
//	if errors.HasCode(err, errors.ErrCodeMalformedNumber) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error chain.
// Returns ErrCodeUnknown if no *Error or *CellError is found.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	var cellErr *CellError
	if errors.As(err, &cellErr) {
		return cellErr.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// CellError describes a single table cell that could not be interpreted.
// Row is zero-based within the data rows of the table.
type CellError struct {
	Code   ErrorCode
	Row    int
	Column string
	Value  string
	Cause  error
}

// NewCellError creates a new CellError.
func NewCellError(code ErrorCode, row int, column, value string, cause error) *CellError {
	return &CellError{
		Code:   code,
		Row:    row,
		Column: column,
		Value:  value,
		Cause:  cause,
	}
}

// Error implements the error interface.
func (e *CellError) Error() string {
	msg := fmt.Sprintf("[%d] row %d column %q: cannot interpret %q", e.Code, e.Row, e.Column, e.Value)
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}

	return msg
}

// Unwrap returns the underlying error cause.
func (e *CellError) Unwrap() error {
	return e.Cause
}

// IsCellError checks if an error chain contains a CellError.
func IsCellError(err error) bool {
	var cellErr *CellError

	return errors.As(err, &cellErr)
}
