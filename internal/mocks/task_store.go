package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/tasktracker/internal/domain"
	"github.com/phrazzld/tasktracker/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, task *domain.Task) error
	ListFn          func(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error)
	MarkCompletedFn func(ctx context.Context, id string) error
	PingFn          func(ctx context.Context) error
	CloseFn         func(ctx context.Context) error

	mu    sync.Mutex
	calls []string
}

var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, method)
}

// Calls returns the names of the methods invoked so far, in order.
func (m *MockTaskStore) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	task.ID = "mock-task-id"
	return nil
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return []*domain.Task{}, nil
}

// MarkCompleted implements the TaskStore interface
func (m *MockTaskStore) MarkCompleted(ctx context.Context, id string) error {
	m.record("MarkCompleted")
	if m.MarkCompletedFn != nil {
		return m.MarkCompletedFn(ctx, id)
	}
	return nil
}

// Ping implements the TaskStore interface
func (m *MockTaskStore) Ping(ctx context.Context) error {
	m.record("Ping")
	if m.PingFn != nil {
		return m.PingFn(ctx)
	}
	return nil
}

// Close implements the TaskStore interface
func (m *MockTaskStore) Close(ctx context.Context) error {
	m.record("Close")
	if m.CloseFn != nil {
		return m.CloseFn(ctx)
	}
	return nil
}
