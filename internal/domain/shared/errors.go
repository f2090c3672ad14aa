// Package shared contains common domain types and the error taxonomy used
// across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation   = errors.New("validation error")
	ErrInvalidID    = errors.New("invalid ID")
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyValue   = errors.New("value cannot be empty")

	// Identity errors: no usable session identity is available locally.
	// Not recoverable without re-authenticating.
	ErrNoIdentity     = errors.New("no session identity")
	ErrSessionExpired = errors.New("session expired")

	// Connectivity errors: the remote gateway cannot be reached.
	ErrConnectivity = errors.New("cannot connect to server")

	// Server-rejected operation: the gateway acknowledged with success=false.
	ErrServerRejected = errors.New("operation rejected by server")

	// Captcha mismatch: user-correctable input error, never a security fault.
	ErrCaptchaMismatch = errors.New("captcha mismatch")

	// State errors
	ErrInvalidState    = errors.New("invalid state")
	ErrStateTransition = errors.New("invalid state transition")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g. "roster", "payment", "session"
	Op      string // operation that failed, e.g. "Load", "Submit"
	Kind    error  // base error type for errors.Is() checking
	Message string // human-readable message
	Err     error  // underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// FieldError is a validation error attached to a single form field.
// Field errors are surfaced next to the offending input and are never sent
// to the server.
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors maps field names to their validation messages.
type FieldErrors map[string]string

// Error implements the error interface.
func (e FieldErrors) Error() string {
	return fmt.Sprintf("%d invalid field(s)", len(e))
}

// Is marks every FieldErrors value as a validation error.
func (e FieldErrors) Is(target error) bool {
	return target == ErrValidation
}

// IsIdentity checks whether the error means the local session identity is
// missing or unusable.
func IsIdentity(err error) bool {
	return errors.Is(err, ErrNoIdentity) || errors.Is(err, ErrSessionExpired)
}

// IsConnectivity checks whether the error is a gateway connectivity failure.
func IsConnectivity(err error) bool {
	return errors.Is(err, ErrConnectivity)
}

// IsValidation checks if the error is a locally detected validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue)
}

// IsServerRejected checks if the error is a success=false acknowledgement.
func IsServerRejected(err error) bool {
	return errors.Is(err, ErrServerRejected)
}
