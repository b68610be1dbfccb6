// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors shared across all modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConfigUnavailable indicates no configuration tier produced a usable
	// remote capability descriptor. This is the normal disabled state of the
	// integration, not a failure.
	ErrConfigUnavailable = errors.New("remote configuration unavailable")

	// ErrRemoteTimeout indicates a remote call exceeded its deadline and was
	// cancelled.
	ErrRemoteTimeout = errors.New("remote timeout")

	// ErrRemoteNetwork indicates a remote call failed below the HTTP layer
	// (DNS, connect, reset).
	ErrRemoteNetwork = errors.New("remote network error")

	// ErrRemoteRejected indicates the remote system answered with a non-2xx
	// status. Distinguishable from network-level failures.
	ErrRemoteRejected = errors.New("remote rejected request")

	// ErrLookupExhausted indicates amount resolution fell through every source
	// and a placeholder value was used.
	ErrLookupExhausted = errors.New("lookup exhausted")

	// ErrReconciliationPartial indicates the payment was applied upstream but
	// the remote system-of-record was not updated. Manual reconciliation is
	// required; this condition is reported through outcome events, never
	// raised to the payment caller.
	ErrReconciliationPartial = errors.New("reconciliation partial")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
