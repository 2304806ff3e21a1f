package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/tasktracker/internal/domain"
	"github.com/phrazzld/tasktracker/internal/platform/logger"
	"github.com/phrazzld/tasktracker/internal/store"
)

// TaskService provides task-related operations
type TaskService interface {
	// AddTask validates and persists a new task, returning it with its id set
	AddTask(ctx context.Context, title, deadline string) (*domain.Task, error)

	// ListActiveTasks returns every task that is not completed, in insertion order
	ListActiveTasks(ctx context.Context) ([]*domain.Task, error)

	// ListAllTasks returns every task, in insertion order
	ListAllTasks(ctx context.Context) ([]*domain.Task, error)

	// CompleteTask marks an active task as completed.
	// Returns ErrTaskNotFound if the id is unknown, malformed or already completed.
	CompleteTask(ctx context.Context, id string) error

	// Ping reports whether the backing store is reachable
	Ping(ctx context.Context) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a new TaskService
// It returns an error if the task store is nil.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// AddTask implements TaskService.AddTask
func (s *taskServiceImpl) AddTask(ctx context.Context, title, deadline string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(title, deadline)
	if err != nil {
		log.Debug("rejected invalid task", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		log.Error("failed to save task", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("add_task", "failed to save task", err)
	}

	log.Debug("task added", slog.String("task_id", task.ID))
	return task, nil
}

// ListActiveTasks implements TaskService.ListActiveTasks
func (s *taskServiceImpl) ListActiveTasks(ctx context.Context) ([]*domain.Task, error) {
	return s.list(ctx, "list_active_tasks", store.TaskFilter{ActiveOnly: true})
}

// ListAllTasks implements TaskService.ListAllTasks
func (s *taskServiceImpl) ListAllTasks(ctx context.Context) ([]*domain.Task, error) {
	return s.list(ctx, "list_all_tasks", store.TaskFilter{})
}

func (s *taskServiceImpl) list(ctx context.Context, operation string, filter store.TaskFilter) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError(operation, "failed to list tasks", err)
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// CompleteTask implements TaskService.CompleteTask
func (s *taskServiceImpl) CompleteTask(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.tasks.MarkCompleted(ctx, id)
	switch {
	case err == nil:
		log.Debug("task completed", slog.String("task_id", id))
		return nil
	case store.IsNotFoundError(err), errors.Is(err, domain.ErrInvalidID):
		log.Debug("task not completable", slog.String("task_id", id))
		return ErrTaskNotFound
	default:
		log.Error("failed to complete task",
			slog.String("task_id", id),
			slog.String("error", err.Error()))
		return NewTaskServiceError("complete_task", "failed to complete task", err)
	}
}

// Ping implements TaskService.Ping
func (s *taskServiceImpl) Ping(ctx context.Context) error {
	return s.tasks.Ping(ctx)
}
