// Package errors defines the application error taxonomy for the survey
// pipeline. Two error types carry the pipeline's contract: DataUnavailable
// (the raw export could neither be found locally nor fetched) and
// MalformedInput (the export exists but cannot be parsed as expected). Both
// abort the run; callers must halt rather than render a partial view.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeDataUnavailable ErrorType = "DATA_UNAVAILABLE"
	ErrTypeMalformedInput  ErrorType = "MALFORMED_INPUT"
	ErrTypeConfig          ErrorType = "CONFIG"
	ErrTypeStorage         ErrorType = "STORAGE"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewDataUnavailableError creates an error for a raw export that could not be
// obtained: empty cache and a failed remote fetch.
func NewDataUnavailableError(message string, cause error) *AppError {
	return NewAppError(ErrTypeDataUnavailable, message, cause)
}

// NewMalformedInputError creates an error for a raw export that could not be
// parsed as expected (structure, consent, timestamp or numeric columns).
func NewMalformedInputError(message string, cause error) *AppError {
	return NewAppError(ErrTypeMalformedInput, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// IsDataUnavailable reports whether err is a DataUnavailable error.
func IsDataUnavailable(err error) bool {
	return IsType(err, ErrTypeDataUnavailable)
}

// IsMalformedInput reports whether err is a MalformedInput error.
func IsMalformedInput(err error) bool {
	return IsType(err, ErrTypeMalformedInput)
}
