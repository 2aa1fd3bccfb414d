package errors

import (
	"errors"
	"fmt"

	"ixscreen/domain/core"
)

// AppError represents a structured application error for the
// transport layers (API/UI); the domain itself uses sentinel errors.
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
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{Code: appErr.Code, Message: message, Cause: appErr}
	}
	return &AppError{Code: CodeInternalError, Message: message, Cause: err}
}

// Predefined error codes
const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeMissingInput    = "MISSING_INPUT"
	CodeShapeMismatch   = "SHAPE_MISMATCH"
	CodeInvalidValue    = "INVALID_VALUE"
	CodeMissingArtifact = "MISSING_ARTIFACT"
	CodeConsistency     = "CONSISTENCY_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeDatabaseError   = "DATABASE_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"
)

// ConfigInvalid builds a configuration error
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// FromDomain maps the domain error taxonomy onto transport codes
func FromDomain(err error) *AppError {
	switch {
	case errors.Is(err, core.ErrMissingInput):
		return &AppError{Code: CodeMissingInput, Message: err.Error(), Cause: err}
	case errors.Is(err, core.ErrShapeMismatch):
		return &AppError{Code: CodeShapeMismatch, Message: err.Error(), Cause: err}
	case errors.Is(err, core.ErrInvalidValue), errors.Is(err, core.ErrUnknownHeredity):
		return &AppError{Code: CodeInvalidValue, Message: err.Error(), Cause: err}
	case errors.Is(err, core.ErrMissingTable):
		return &AppError{Code: CodeMissingArtifact, Message: err.Error(), Cause: err}
	case errors.Is(err, core.ErrInconsistentPair):
		return &AppError{Code: CodeConsistency, Message: err.Error(), Cause: err}
	case errors.Is(err, core.ErrRunNotFound):
		return &AppError{Code: CodeNotFound, Message: err.Error(), Cause: err}
	}
	return &AppError{Code: CodeInternalError, Message: err.Error(), Cause: err}
}
