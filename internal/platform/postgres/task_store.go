package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/tasktracker/internal/domain"
	"github.com/phrazzld/tasktracker/internal/platform/logger"
	"github.com/phrazzld/tasktracker/internal/store"
)

// DriverName is the database/sql driver registered by pgx.
const DriverName = "pgx"

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Open establishes a connection pool to the database at url and verifies it
// within timeout. The caller is responsible for applying migrations.
func Open(ctx context.Context, url string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open(DriverName, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool with reasonable defaults
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection that should be initialized by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db *sql.DB, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// DB returns the underlying database handle.
func (s *PostgresTaskStore) DB() *sql.DB {
	return s.db
}

// Create implements store.TaskStore.Create
// The database generates the task ID.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (title, deadline, completed)
		VALUES ($1, $2, FALSE)
		RETURNING id
	`

	var id uuid.UUID
	if err := s.db.QueryRowContext(ctx, query, task.Title, task.Deadline).Scan(&id); err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return MapError(err)
	}

	task.ID = id.String()
	task.Completed = false

	log.Info("task created successfully", slog.String("task_id", task.ID))
	return nil
}

// List implements store.TaskStore.List
// Tasks are returned in insertion order.
func (s *PostgresTaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, title, deadline, completed FROM tasks`
	if filter.ActiveOnly {
		query += ` WHERE completed = FALSE`
	}
	query += ` ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.Bool("active_only", filter.ActiveOnly))
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
			id   uuid.UUID
			task domain.Task
		)
		if err := rows.Scan(&id, &task.Title, &task.Deadline, &task.Completed); err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: %v", store.ErrMalformedRecord, err)
		}
		task.ID = id.String()
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("tasks listed",
		slog.Bool("active_only", filter.ActiveOnly),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// MarkCompleted implements store.TaskStore.MarkCompleted
// Returns store.ErrTaskNotFound if no active task has the given ID.
func (s *PostgresTaskStore) MarkCompleted(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	taskID, err := uuid.Parse(id)
	if err != nil {
		log.Debug("invalid task id", slog.String("task_id", id))
		return fmt.Errorf("%w: %q is not a task id", domain.ErrInvalidID, id)
	}

	query := `
		UPDATE tasks
		SET completed = TRUE
		WHERE id = $1 AND completed = FALSE
	`

	result, err := s.db.ExecContext(ctx, query, taskID)
	if err != nil {
		log.Error("failed to complete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result); err != nil {
		log.Debug("no active task matched", slog.String("task_id", id))
		return err
	}

	log.Info("task marked completed", slog.String("task_id", id))
	return nil
}

// Ping implements store.TaskStore.Ping
func (s *PostgresTaskStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close implements store.TaskStore.Close
func (s *PostgresTaskStore) Close(context.Context) error {
	return s.db.Close()
}
