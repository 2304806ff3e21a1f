package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("title", "cannot be empty", nil)
	assert.Equal(t, "title cannot be empty", err.Error())
	assert.True(t, errors.Is(err, ErrValidation), "nil wrapped error defaults to ErrValidation")

	idErr := NewValidationError("task_id", "has invalid format", ErrInvalidID)
	assert.True(t, errors.Is(idErr, ErrInvalidID))
	assert.False(t, errors.Is(idErr, ErrValidation))

	var ve *ValidationError
	assert.True(t, errors.As(idErr, &ve))
	assert.Equal(t, "task_id", ve.Field)

	noField := NewValidationError("", "request is invalid", nil)
	assert.Equal(t, "request is invalid", noField.Error())
}
