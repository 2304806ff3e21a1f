package store

import (
	"context"

	"github.com/phrazzld/tasktracker/internal/domain"
)

// TaskFilter narrows a task listing.
type TaskFilter struct {
	// ActiveOnly restricts the result to tasks that are not completed.
	ActiveOnly bool
}

// Matches reports whether the task passes the filter.
func (f TaskFilter) Matches(task *domain.Task) bool {
	return !f.ActiveOnly || task.IsActive()
}

// TaskStore defines the interface for task persistence.
// Every implementation returns listings in insertion order.
type TaskStore interface {
	// Create inserts a new task and sets task.ID to the identifier the
	// store assigned. Returns validation errors if the task is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// List returns the tasks matching filter. Returns an empty, non-nil
	// slice when nothing matches.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// MarkCompleted sets the completed flag of the task with the given id.
	// Returns ErrTaskNotFound if no task matched or the task was already
	// completed, and an error wrapping domain.ErrInvalidID if id cannot be
	// parsed by this store.
	MarkCompleted(ctx context.Context, id string) error

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the connection held by the store.
	Close(ctx context.Context) error
}
