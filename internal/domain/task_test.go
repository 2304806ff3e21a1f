package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	task, err := NewTask("Pay rent", "2025-01-01")
	require.NoError(t, err)
	require.NotNil(t, task)

	assert.Empty(t, task.ID, "ID is assigned by the store")
	assert.Equal(t, "Pay rent", task.Title)
	assert.Equal(t, "2025-01-01", task.Deadline)
	assert.False(t, task.Completed)
	assert.True(t, task.IsActive())
}

func TestNewTask_KeepsDeadlineVerbatim(t *testing.T) {
	t.Parallel()

	task, err := NewTask("Call mom", "next tuesday, maybe")
	require.NoError(t, err)
	assert.Equal(t, "next tuesday, maybe", task.Deadline)
}

func TestNewTask_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		title      string
		deadline   string
		wantErrors []error
	}{
		{
			name:       "missing title",
			title:      "",
			deadline:   "2025-01-01",
			wantErrors: []error{ErrEmptyTaskTitle},
		},
		{
			name:       "missing deadline",
			title:      "Pay rent",
			deadline:   "",
			wantErrors: []error{ErrEmptyTaskDeadline},
		},
		{
			name:       "missing both",
			title:      "",
			deadline:   "",
			wantErrors: []error{ErrEmptyTaskTitle, ErrEmptyTaskDeadline},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			task, err := NewTask(tc.title, tc.deadline)
			require.Error(t, err)
			assert.Nil(t, task)
			assert.True(t, errors.Is(err, ErrValidation), "error should wrap ErrValidation")
			for _, want := range tc.wantErrors {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestTask_IsActive(t *testing.T) {
	t.Parallel()

	task := Task{ID: "1", Title: "t", Deadline: "d"}
	assert.True(t, task.IsActive())

	task.Completed = true
	assert.False(t, task.IsActive())
}
