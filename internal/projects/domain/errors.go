package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every "record absent" error via errors.Is.
	ErrNotFound = errors.New("not found")

	ErrProjectNotFound = fmt.Errorf("project %w", ErrNotFound)
	ErrPersonNotFound  = fmt.Errorf("person %w", ErrNotFound)
)

// Validation codes.
const (
	CodeRequired      = "REQUIRED"
	CodeTooLong       = "TOO_LONG"
	CodeInvalidFormat = "INVALID_FORMAT"
	CodeOutOfRange    = "OUT_OF_RANGE"
	CodeInvalidEnum   = "INVALID_ENUM"
	CodeUnknownField  = "UNKNOWN_FIELD"
)

// ValidationError rejects a value before it reaches a change-set or the repository.
// Callers extract Field/Code with errors.As.
type ValidationError struct {
	Field         string
	Code          string
	Reason        string
	RejectedValue *string
	cause         error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Field, e.Code)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.RejectedValue != nil {
		msg += fmt.Sprintf(" (rejected: %q)", *e.RejectedValue)
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.cause }

// NewValidationError builds a ValidationError without a rejected value.
func NewValidationError(field, code, reason string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Reason: reason}
}

func newRejected(field, code, reason, rejected string, cause error) *ValidationError {
	return &ValidationError{
		Field:         field,
		Code:          code,
		Reason:        reason,
		RejectedValue: &rejected,
		cause:         cause,
	}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PersistenceError wraps a failed repository call. It is never retried by the core.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// WrapPersistence converts a repository error into a PersistenceError.
// nil, not-found and validation errors pass through unchanged so callers can
// still tell an absent record from a storage failure.
func WrapPersistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || IsValidation(err) {
		return err
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsPersistence reports whether err is (or wraps) a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
