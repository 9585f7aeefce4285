package service

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is; the typed errors below carry detail.
var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidState      = errors.New("invalid state")
	ErrRequestNotFound   = errors.New("credential request not found")
	ErrRequestNotPending = errors.New("credential request is not pending")
	ErrMint              = errors.New("mint failed")
	ErrPersistence       = errors.New("persistence failure")
	ErrForbidden         = errors.New("forbidden")
)

// ValidationError reports bad caller input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// InvalidStateError means the request does not exist (ErrRequestNotFound)
// or has already left pending (ErrRequestNotPending).
type InvalidStateError struct {
	RequestID string
	Err       error
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("request %s: %v", e.RequestID, e.Err)
}

func (e *InvalidStateError) Unwrap() []error { return []error{ErrInvalidState, e.Err} }

func notFound(id string) error   { return &InvalidStateError{RequestID: id, Err: ErrRequestNotFound} }
func notPending(id string) error { return &InvalidStateError{RequestID: id, Err: ErrRequestNotPending} }

// MintError wraps an issuer failure. The request is still pending.
type MintError struct {
	RequestID string
	Cause     error
}

func (e *MintError) Error() string {
	return fmt.Sprintf("mint for request %s: %v", e.RequestID, e.Cause)
}

func (e *MintError) Unwrap() []error { return []error{ErrMint, e.Cause} }

// PersistenceError wraps a store failure during Op.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Cause} }

func persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Cause: err}
}
