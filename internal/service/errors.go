package service

import (
	"errors"
	"fmt"

	"github.com/mindcredit/mindcredit-api/internal/domain"
	"github.com/mindcredit/mindcredit-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in ServiceError
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrUserNotFound indicates the referenced user does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrUserNotFound = errors.New("user not found")

	// ErrCreditLimitNotFound indicates the referenced credit limit does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrCreditLimitNotFound = errors.New("credit limit not found")

	// ErrCreditLimitNotOwned indicates a deployment referenced a credit limit
	// computed for a different user.
	// API layer should map this to HTTP 400 Bad Request.
	ErrCreditLimitNotOwned = fmt.Errorf("%w: credit limit belongs to another user", domain.ErrInvalidValue)

	// ErrServiceUnavailable indicates the risk scorer is short-circuited by
	// its circuit breaker.
	// API layer should map this to HTTP 503 Service Unavailable.
	ErrServiceUnavailable = errors.New("risk scoring temporarily unavailable")
)

// ServiceError wraps unexpected errors from a service operation with context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "calculate", "deploy")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError maps err for return from a service method. Known store
// sentinels become their service equivalents, domain rule violations are
// returned unchanged, and anything else is wrapped in a ServiceError.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, store.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, ErrCreditLimitNotFound), errors.Is(err, store.ErrCreditLimitNotFound):
		return ErrCreditLimitNotFound
	case errors.Is(err, ErrServiceUnavailable),
		errors.Is(err, domain.ErrInvalidValue),
		errors.Is(err, domain.ErrValidation):
		return err
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
