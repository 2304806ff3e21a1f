package mongo

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tasktracker/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
)

// MapError maps a MongoDB driver error to an appropriate store error.
// The original error stays in the chain.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}

	var decodeErr *decodeError
	if errors.As(err, &decodeErr) {
		return fmt.Errorf("%w: %w", store.ErrMalformedRecord, err)
	}

	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: duplicate key: %w", store.ErrInvalidEntity, err)
	}

	return err
}

// decodeError reports a stored document that does not have the task shape.
type decodeError struct {
	field string
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("task document is missing field %q", e.field)
}
