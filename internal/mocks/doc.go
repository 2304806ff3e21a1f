// Package mocks provides centralized mock implementations for testing.
//
// Mocks expose one function field per interface method. A nil field falls
// back to a simple default so tests only configure the calls they care about:
//
//	taskStore := &mocks.MockTaskStore{
//	    MarkCompletedFn: func(ctx context.Context, id string) error {
//	        return store.ErrTaskNotFound
//	    },
//	}
//
// When adding a new mock to this package, name the file after the interface
// being mocked and give every method a function field.
package mocks
