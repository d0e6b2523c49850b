// Package errors provides the error taxonomy for the reading-calendar tools.
//
// Per-item failures of a batch run are one of DecodeError, ParseError,
// ResolveError or PersistError. Each unwraps to a sentinel as well as to its
// cause, so callers can classify them with errors.Is without caring about the
// concrete type.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a record or key was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates malformed input or a validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable indicates an external service could not serve a request
	ErrUnavailable = errors.New("service unavailable")
	// ErrPersist indicates a storage write failed
	ErrPersist = errors.New("persist failed")
)

// NotFoundError represents a missing record with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "day", "abbreviation")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Value that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// ParseError reports a scripture reference that does not match the
// reference grammar. Text is the offending reference as given.
type ParseError struct {
	Text    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("cannot parse reference %q: %s", e.Text, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("cannot parse reference %q: %v", e.Text, e.Err)
	}
	return fmt.Sprintf("cannot parse reference %q", e.Text)
}

// Unwrap returns ErrInvalidInput and, when set, the cause.
func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidInput, e.Err}
	}
	return []error{ErrInvalidInput}
}

// ResolveError reports a failed passage lookup. StatusCode and Status are
// set when the service answered with a non-success HTTP status.
type ResolveError struct {
	Reference  string
	StatusCode int
	Status     string
	Err        error
}

func (e *ResolveError) Error() string {
	switch {
	case e.Status != "":
		return fmt.Sprintf("resolving %q: lookup failed: %s", e.Reference, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("resolving %q: %v", e.Reference, e.Err)
	default:
		return fmt.Sprintf("resolving %q: lookup failed", e.Reference)
	}
}

// Unwrap returns ErrUnavailable and, when set, the cause.
func (e *ResolveError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrUnavailable, e.Err}
	}
	return []error{ErrUnavailable}
}

// DecodeError reports a stored day whose reading list could not be decoded.
type DecodeError struct {
	Month int
	Day   int
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding readings for %d/%d: %v", e.Day, e.Month, e.Err)
}

// Unwrap returns ErrInvalidInput and the cause.
func (e *DecodeError) Unwrap() []error {
	return []error{ErrInvalidInput, e.Err}
}

// PersistError reports a failed write of the reading list for a day.
type PersistError struct {
	Month int
	Day   int
	Err   error
}

func (e *PersistError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("persisting %d/%d: %v", e.Day, e.Month, e.Err)
	}
	return fmt.Sprintf("persisting %d/%d failed", e.Day, e.Month)
}

// Unwrap returns both the sentinel and the cause so errors.Is matches
// ErrPersist as well as whatever the store reported.
func (e *PersistError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrPersist, e.Err}
	}
	return []error{ErrPersist}
}

// Helper functions for creating common errors

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewValidation creates a ValidationError
func NewValidation(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewParse creates a ParseError
func NewParse(text, message string) *ParseError {
	return &ParseError{
		Text:    text,
		Message: message,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
