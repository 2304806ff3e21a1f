package domain

import "errors"

// Validation errors for Task. Both wrap ErrValidation.
var (
	ErrEmptyTaskTitle    = NewValidationError("title", "cannot be empty", ErrValidation)
	ErrEmptyTaskDeadline = NewValidationError("deadline", "cannot be empty", ErrValidation)
)

// Task is a single tracked item with a title, a deadline and a completion
// flag. The deadline is kept exactly as the client supplied it.
//
// ID is assigned by the store on creation and is empty until then.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Deadline  string `json:"deadline"`
	Completed bool   `json:"completed"`
}

// NewTask creates an active task with the given title and deadline.
// Returns a validation error if either field is empty.
func NewTask(title, deadline string) (*Task, error) {
	task := &Task{
		Title:     title,
		Deadline:  deadline,
		Completed: false,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the fields a task must carry before it is stored.
func (t *Task) Validate() error {
	var errs []error
	if t.Title == "" {
		errs = append(errs, ErrEmptyTaskTitle)
	}
	if t.Deadline == "" {
		errs = append(errs, ErrEmptyTaskDeadline)
	}
	return errors.Join(errs...)
}

// IsActive reports whether the task still has to be completed.
func (t *Task) IsActive() bool {
	return !t.Completed
}
