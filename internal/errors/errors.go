package errors

import (
	"fmt"

	"gomca/domain/core"
)

// AppError represents a structured application error. Taxonomy
// constructors set Cause to the matching domain/core sentinel, so the
// public classification helpers (core.IsConfigurationError and friends)
// see through AppError via Unwrap.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid  = "CONFIG_INVALID"
	CodeNumericalError = "NUMERICAL_ERROR"
	CodeInternalError  = "INTERNAL_ERROR"
)

// Common error constructors

// ConfigInvalid builds a configuration error classified under
// core.ErrConfiguration.
func ConfigInvalid(message string) *AppError {
	err := New(CodeConfigInvalid, message)
	err.Cause = core.ErrConfiguration
	return err
}

// Numerical builds a numerical error classified under core.ErrNumerical
func Numerical(message string) *AppError {
	err := New(CodeNumericalError, message)
	err.Cause = core.ErrNumerical
	return err
}
