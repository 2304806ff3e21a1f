package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/phrazzld/tasktracker/internal/domain"
	"github.com/phrazzld/tasktracker/internal/platform/logger"
	"github.com/phrazzld/tasktracker/internal/store"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// URLScheme is the database URL prefix handled by this package.
const URLScheme = "sqlite://"

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// TaskStore implements the store.TaskStore interface using SQLite.
type TaskStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// PathFromURL extracts the database file path from a sqlite:// URL.
// "sqlite://tasks.db" is relative to the working directory,
// "sqlite:///var/lib/tasks.db" is absolute and "sqlite://:memory:" is an
// in-memory database.
func PathFromURL(rawURL string) (string, error) {
	if !strings.HasPrefix(rawURL, URLScheme) {
		return "", fmt.Errorf("%w: expected %s prefix", store.ErrUnsupportedURL, URLScheme)
	}
	path := strings.TrimPrefix(rawURL, URLScheme)
	if path == "" {
		return "", fmt.Errorf("%w: sqlite url has no path", store.ErrUnsupportedURL)
	}
	return path, nil
}

// Open opens the SQLite database at path and verifies the connection.
// The caller is responsible for applying migrations.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// A single connection serializes writers and keeps :memory: databases
	// alive for the lifetime of the pool.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	return db, nil
}

// NewTaskStore creates a SQLite task store on top of an open database.
// If logger is nil, a default logger will be used.
func NewTaskStore(db *sql.DB, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_task_store")),
	}
}

// DB returns the underlying database handle.
func (s *TaskStore) DB() *sql.DB {
	return s.db
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (title, deadline, completed) VALUES (?, ?, 0)`,
		task.Title,
		task.Deadline,
	)
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return MapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return store.NewStoreError("task", "create", "no id returned", err)
	}

	task.ID = strconv.FormatInt(id, 10)
	task.Completed = false
	log.Debug("task created", slog.String("task_id", task.ID))
	return nil
}

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, title, deadline, completed FROM tasks`
	if filter.ActiveOnly {
		query += ` WHERE completed = 0`
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		var (
			id   int64
			task domain.Task
		)
		if err := rows.Scan(&id, &task.Title, &task.Deadline, &task.Completed); err != nil {
			return nil, fmt.Errorf("%w: %v", store.ErrMalformedRecord, err)
		}
		task.ID = strconv.FormatInt(id, 10)
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.Debug("tasks listed",
		slog.Bool("active_only", filter.ActiveOnly),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// MarkCompleted implements store.TaskStore.MarkCompleted
func (s *TaskStore) MarkCompleted(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Only the canonical decimal form names a task; "01" and "+1" do not.
	taskID, err := strconv.ParseInt(id, 10, 64)
	if err != nil || strconv.FormatInt(taskID, 10) != id {
		log.Debug("invalid task id", slog.String("task_id", id))
		return fmt.Errorf("%w: %q is not a task id", domain.ErrInvalidID, id)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET completed = 1 WHERE id = ? AND completed = 0`,
		taskID,
	)
	if err != nil {
		log.Error("failed to complete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return MapError(err)
	}

	if err := checkRowsAffected(result); err != nil {
		log.Debug("no active task matched", slog.String("task_id", id))
		return err
	}

	log.Debug("task marked completed", slog.String("task_id", id))
	return nil
}

// Ping implements store.TaskStore.Ping
func (s *TaskStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close implements store.TaskStore.Close
func (s *TaskStore) Close(context.Context) error {
	return s.db.Close()
}
