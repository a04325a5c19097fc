package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tickler/internal/store"
)

// Common service errors. Callers check for them with errors.Is; the API layer
// maps them to HTTP status codes.
var (
	// ErrTaskNotFound indicates that no task item has the requested id.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")
)

// ServiceError wraps errors from a service with context.
type ServiceError struct {
	// Service is the service that failed (e.g. "reminder")
	Service string
	// Operation is the operation that failed (e.g. "add_task", "update_task")
	Operation string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Operation, e.Err)
	}
	return fmt.Sprintf("%s service %s operation failed", e.Service, e.Operation)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewReminderServiceError wraps err for the given reminder service operation.
// Store not-found errors are returned as ErrTaskNotFound without wrapping.
func NewReminderServiceError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrTaskNotFound) || store.IsNotFoundError(err) {
		return ErrTaskNotFound
	}
	return &ServiceError{
		Service:   "reminder",
		Operation: operation,
		Err:       err,
	}
}
