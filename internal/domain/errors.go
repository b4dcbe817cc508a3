package domain

import "fmt"

// Error types for consistent error handling across the BFV.

// ErrValidation indicates a caller-side contract violation (bad input).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrMissingEntity indicates a required slot (date, city, amount) could not
// be extracted from the command. Always recoverable by rephrasing.
type ErrMissingEntity struct {
	Entity  string
	Message string
}

func (e *ErrMissingEntity) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("missing required entity: %s", e.Entity)
}

// ErrNoIntent indicates the classifier found no (module, action) pair.
// Informational, not a failure: free-form input is allowed to be anything.
type ErrNoIntent struct{}

func (e *ErrNoIntent) Error() string {
	return "Não foi possível identificar a solicitação."
}

// ErrExternalService indicates a failure in a collaborator call.
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("external service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrTimeout indicates an operation exceeded its deadline.
type ErrTimeout struct {
	Operation string
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("operation timed out: %s", e.Operation)
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}

// ErrUnauthorized indicates an invalid or missing token.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrAIUnavailable indicates the completion endpoint is disabled,
// unauthenticated or erroring. Never surfaced to the end user: the finance
// handler falls back to the rule-based path and only logs it.
type ErrAIUnavailable struct {
	Reason string
	Err    error
}

func (e *ErrAIUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ai unavailable (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("ai unavailable (%s)", e.Reason)
}

func (e *ErrAIUnavailable) Unwrap() error {
	return e.Err
}
