package service

import (
	"errors"
	"fmt"
)

var (
	// ErrTaskNotFound indicates no active task matched the requested id.
	// The API layer maps this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found or already completed")
)

// TaskServiceError is a custom error type for task service errors.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// Sentinel errors are returned as-is so callers can compare them directly.
func NewTaskServiceError(operation, message string, err error) error {
	if errors.Is(err, ErrTaskNotFound) {
		return ErrTaskNotFound
	}
	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
