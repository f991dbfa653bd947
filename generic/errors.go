/*
errors.go - Centralized error types for the service engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The calculation core (timeline, pay) never returns errors; these are
  for input parsing, validation and persistence around it.

ERROR CATEGORIES:
  1. Validation errors - Malformed dates, periods, amounts
  2. Store errors - Missing rows

USAGE:
  Callers classify with the helpers:

    if generic.IsNotFound(err) {
        // 404
    }

SEE ALSO:
  - api/handlers.go: Maps these errors to HTTP status codes
  - store/sqlite/sqlite.go: Returns ErrNotFound
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrInvalidAmount is returned for unparseable, zero or negative money input.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidInput is the parent of every ValidationError.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when a referenced row doesn't exist.
	ErrNotFound = errors.New("not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NotFoundError provides details about a missing row.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidAmount)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
