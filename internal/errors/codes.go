package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode classifies platform errors so callers can branch on the class
// without string matching.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates a malformed request, e.g. a self-loop
	// relation or a second reply parent.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeNotFound indicates the referenced post or relation does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates a uniqueness constraint rejected a write.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	// ErrCodeIntegrityViolation indicates corrupt graph data was detected,
	// e.g. a reply cycle. It should not occur in correct operation.
	ErrCodeIntegrityViolation ErrorCode = "INTEGRITY_VIOLATION"
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// PlatformError is a structured error carrying a code and optional cause.
type PlatformError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *PlatformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *PlatformError) Unwrap() error {
	return e.Cause
}

// New creates a PlatformError with the given code.
func New(code ErrorCode, format string, args ...any) *PlatformError {
	return &PlatformError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a PlatformError wrapping a cause.
func Wrap(cause error, code ErrorCode, format string, args ...any) *PlatformError {
	return &PlatformError{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// NewValidation creates an INVALID_ARGUMENT error.
func NewValidation(format string, args ...any) *PlatformError {
	return New(ErrCodeInvalidArgument, format, args...)
}

// NewNotFound creates a NOT_FOUND error.
func NewNotFound(format string, args ...any) *PlatformError {
	return New(ErrCodeNotFound, format, args...)
}

// NewAlreadyExists creates an ALREADY_EXISTS error.
func NewAlreadyExists(format string, args ...any) *PlatformError {
	return New(ErrCodeAlreadyExists, format, args...)
}

// CodeOf extracts the error code, or ErrCodeInternal for untyped errors.
func CodeOf(err error) ErrorCode {
	var pe *PlatformError
	if stderrors.As(err, &pe) {
		return pe.Code
	}
	return ErrCodeInternal
}

// IsValidation reports whether err is an INVALID_ARGUMENT error.
func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeInvalidArgument
}

// IsNotFound reports whether err is a NOT_FOUND error.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

// IsAlreadyExists reports whether err is an ALREADY_EXISTS error.
func IsAlreadyExists(err error) bool {
	return CodeOf(err) == ErrCodeAlreadyExists
}
