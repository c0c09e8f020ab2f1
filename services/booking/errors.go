package booking

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// ValidationError reports malformed or unresolvable input, including an
// unknown doctor or appointment. Code distinguishes the handler mapping.
type ValidationError struct {
	Code    string // "bad_input", "not_found", "forbidden", "invalid_state"
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ConflictError reports a lost slot race: the slot was reserved by another
// request between listing and booking. Expected, user-visible outcome.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Message
}

// UnavailableError reports a doctor that is not accepting bookings.
type UnavailableError struct {
	Message string
}

func (e *UnavailableError) Error() string {
	return "unavailable: " + e.Message
}

// IntegrityError reports a violated post-condition: the reservation reported
// success but the booked-slot set and the appointment record disagree.
// Never retried; writes for the affected doctor/day are suspended.
type IntegrityError struct {
	Message string
}

func (e *IntegrityError) Error() string {
	return "integrity: " + e.Message
}

// TransientError wraps a storage or network blip that is safe to retry.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func NewValidationError(code, format string, args ...interface{}) error {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// classifyStorageErr wraps retriable driver failures as TransientError and
// passes everything else through.
func classifyStorageErr(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, context.DeadlineExceeded) {
		return &TransientError{Err: err}
	}
	return err
}
