package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors used with errors.Is across the service layer.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("concurrent update conflict")
)

// FieldError is one field-level validation failure. A request is validated
// in full, so callers receive every failing field at once.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationError aggregates all field errors for one request.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// NotFoundError identifies a missing entity by kind and key.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// AuthorizationError reports a refused action with enough detail for the
// audit log, without leaking internals to the caller.
type AuthorizationError struct {
	ActorID string
	Action  string
	Reason  string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("actor %s may not %s: %s", e.ActorID, e.Action, e.Reason)
}

func (e *AuthorizationError) Unwrap() error { return ErrUnauthorized }

// StateError reports an invalid lifecycle transition, naming both the
// current and the attempted state.
type StateError struct {
	TransactionID string
	Current       string
	Attempted     string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("payment %s: cannot %s from state %s", e.TransactionID, e.Attempted, e.Current)
}

// DependencyError wraps a persistence or identity-store failure. Retryable
// marks whether the caller may safely retry (idempotent reads yes,
// state-changing writes no).
type DependencyError struct {
	Op        string
	Retryable bool
	Err       error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency failure in %s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }
