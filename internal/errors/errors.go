// Package errors provides structured application errors with stable codes the
// presentation layers can map to HTTP statuses.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"tabview/domain/core"
)

// Error codes used across the application
const (
	CodeInternal    = "INTERNAL_ERROR"
	CodeConfig      = "CONFIG_INVALID"
	CodeParse       = "PARSE_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodeBadRequest  = "BAD_REQUEST"
	CodeUnsupported = "UNSUPPORTED"
)

// AppError represents a structured application error
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

// Wrap wraps an error with additional context, preserving an existing code
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{Code: appErr.Code, Message: message, Cause: appErr}
	}
	return &AppError{Code: codeFor(err), Message: message, Cause: err}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// ConfigInvalid builds a configuration error
func ConfigInvalid(message string) *AppError {
	return New(CodeConfig, message)
}

// codeFor maps domain sentinel errors to application codes
func codeFor(err error) string {
	switch {
	case core.IsParseError(err), stderrors.Is(err, core.ErrEmptyInput):
		return CodeParse
	case core.IsNotFoundError(err):
		return CodeNotFound
	case stderrors.Is(err, core.ErrUnsupported):
		return CodeUnsupported
	case stderrors.Is(err, core.ErrNotNumeric), stderrors.Is(err, core.ErrEmptyView):
		return CodeBadRequest
	default:
		return CodeInternal
	}
}

// HTTPStatus maps an error to the status the handlers should respond with.
// Parse failures and aggregation precondition violations are the caller's
// fault; everything uncoded is a 500.
func HTTPStatus(err error) int {
	code := CodeInternal
	if appErr, ok := err.(*AppError); ok {
		code = appErr.Code
	} else {
		code = codeFor(err)
	}

	switch code {
	case CodeParse, CodeBadRequest, CodeUnsupported:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConfig:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
