package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrSessionNotFound = fmt.Errorf("%w: session", ErrNotFound)
	ErrColumnNotFound  = fmt.Errorf("%w: column", ErrNotFound)

	// Ingestion errors
	ErrParse       = errors.New("input is not parseable as delimited text")
	ErrEmptyInput  = errors.New("input contains no data")
	ErrUnsupported = errors.New("unsupported file type")

	// Aggregation preconditions
	ErrNotNumeric = errors.New("column is not numeric")
	ErrEmptyView  = errors.New("view contains no rows")
)

// NewParseError wraps a parser failure so callers can match it with errors.Is.
func NewParseError(err error) error {
	if err == nil {
		return ErrParse
	}
	return fmt.Errorf("%w: %v", ErrParse, err)
}

// NewNotFoundError builds a not-found error with resource context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// IsNotFoundError checks if an error is a not-found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsParseError checks if an error came from schema inference
func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}
