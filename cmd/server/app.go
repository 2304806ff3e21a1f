package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/phrazzld/tasktracker/internal/config"
	"github.com/phrazzld/tasktracker/internal/service"
	"github.com/phrazzld/tasktracker/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	taskStore   store.TaskStore
	taskService service.TaskService
}

// newApplication opens the task store named by the configuration and wires
// the services on top of it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	taskStore, err := openTaskStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open task store: %w", err)
	}

	return newApplicationWithStore(cfg, logger, taskStore)
}

// newApplicationWithStore wires the services on top of an open task store.
// The application takes ownership of taskStore.
func newApplicationWithStore(cfg *config.Config, logger *slog.Logger, taskStore store.TaskStore) (*application, error) {
	taskService, err := service.NewTaskService(taskStore, logger)
	if err != nil {
		_ = taskStore.Close(context.Background())
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("application initialized")
	return &application{
		config:      cfg,
		logger:      logger,
		taskStore:   taskStore,
		taskService: taskService,
	}, nil
}

// Run starts the HTTP server on the configured port and blocks until ctx is
// canceled or the server fails.
func (app *application) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", app.config.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		app.cleanup()
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	if err := app.serveHTTP(ctx, ln, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
	defer cancel()

	if err := app.taskStore.Close(ctx); err != nil {
		app.logger.Error("error closing task store", slog.String("error", err.Error()))
	}

	app.logger.Info("application shutdown completed")
}
