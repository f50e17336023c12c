package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check these with errors.Is; the API layer maps them to HTTP status
// codes.
var (
	// ErrValidation indicates the input failed a business rule check.
	// API layer should map this to HTTP 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyUpdate indicates an update request carried no fields to change.
	// API layer should map this to HTTP 400 Bad Request.
	ErrEmptyUpdate = errors.New("no fields to update")
)

// TaskServiceError wraps unexpected errors from the task service with the
// failed operation for logging. Sentinel errors pass through unwrapped.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task")
	Operation string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	return fmt.Sprintf("task service %s failed: %v", e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}
