package mocks

import (
	"context"

	"github.com/phrazzld/tasktracker/internal/domain"
	"github.com/phrazzld/tasktracker/internal/service"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	AddTaskFn         func(ctx context.Context, title, deadline string) (*domain.Task, error)
	ListActiveTasksFn func(ctx context.Context) ([]*domain.Task, error)
	ListAllTasksFn    func(ctx context.Context) ([]*domain.Task, error)
	CompleteTaskFn    func(ctx context.Context, id string) error
	PingFn            func(ctx context.Context) error
}

var _ service.TaskService = (*MockTaskService)(nil)

// AddTask implements the TaskService interface
func (m *MockTaskService) AddTask(ctx context.Context, title, deadline string) (*domain.Task, error) {
	if m.AddTaskFn != nil {
		return m.AddTaskFn(ctx, title, deadline)
	}
	return &domain.Task{ID: "mock-task-id", Title: title, Deadline: deadline}, nil
}

// ListActiveTasks implements the TaskService interface
func (m *MockTaskService) ListActiveTasks(ctx context.Context) ([]*domain.Task, error) {
	if m.ListActiveTasksFn != nil {
		return m.ListActiveTasksFn(ctx)
	}
	return []*domain.Task{}, nil
}

// ListAllTasks implements the TaskService interface
func (m *MockTaskService) ListAllTasks(ctx context.Context) ([]*domain.Task, error) {
	if m.ListAllTasksFn != nil {
		return m.ListAllTasksFn(ctx)
	}
	return []*domain.Task{}, nil
}

// CompleteTask implements the TaskService interface
func (m *MockTaskService) CompleteTask(ctx context.Context, id string) error {
	if m.CompleteTaskFn != nil {
		return m.CompleteTaskFn(ctx, id)
	}
	return nil
}

// Ping implements the TaskService interface
func (m *MockTaskService) Ping(ctx context.Context) error {
	if m.PingFn != nil {
		return m.PingFn(ctx)
	}
	return nil
}
