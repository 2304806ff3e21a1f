package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktracker/internal/domain"
	"github.com/phrazzld/tasktracker/internal/platform/logger"
	"github.com/phrazzld/tasktracker/internal/store"
)

// TaskStore implements store.TaskStore with a map guarded by a RWMutex.
// Identifiers are random UUIDs; ids keeps insertion order.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[uuid.UUID]domain.Task
	ids    []uuid.UUID
	logger *slog.Logger
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty in-memory task store.
// If logger is nil, a default logger will be used.
func NewTaskStore(logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		tasks:  make(map[uuid.UUID]domain.Task),
		ids:    make([]uuid.UUID, 0),
		logger: logger.With(slog.String("component", "memory_task_store")),
	}
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	id := uuid.New()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *task
	stored.ID = id.String()
	stored.Completed = false
	s.tasks[id] = stored
	s.ids = append(s.ids, id)

	task.ID = stored.ID
	task.Completed = false
	log.Debug("task created", slog.String("task_id", task.ID))
	return nil
}

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Task, 0, len(s.ids))
	for _, id := range s.ids {
		task := s.tasks[id]
		if !filter.Matches(&task) {
			continue
		}
		result = append(result, &task)
	}

	log.Debug("tasks listed",
		slog.Bool("active_only", filter.ActiveOnly),
		slog.Int("count", len(result)))
	return result, nil
}

// MarkCompleted implements store.TaskStore.MarkCompleted
func (s *TaskStore) MarkCompleted(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	taskID, err := uuid.Parse(id)
	if err != nil {
		log.Debug("invalid task id", slog.String("task_id", id))
		return fmt.Errorf("%w: %q is not a task id", domain.ErrInvalidID, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok || task.Completed {
		log.Debug("no active task matched", slog.String("task_id", id))
		return store.ErrTaskNotFound
	}

	task.Completed = true
	s.tasks[taskID] = task

	log.Debug("task marked completed", slog.String("task_id", id))
	return nil
}

// Ping implements store.TaskStore.Ping. The memory store is always reachable.
func (s *TaskStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close implements store.TaskStore.Close.
func (s *TaskStore) Close(context.Context) error {
	return nil
}

// Len returns the number of stored tasks.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}
