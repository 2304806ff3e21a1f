package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/tasktracker/internal/config"
	"github.com/phrazzld/tasktracker/internal/platform/memory"
	"github.com/phrazzld/tasktracker/internal/platform/migrations"
	taskmongo "github.com/phrazzld/tasktracker/internal/platform/mongo"
	"github.com/phrazzld/tasktracker/internal/platform/postgres"
	"github.com/phrazzld/tasktracker/internal/platform/sqlite"
	"github.com/phrazzld/tasktracker/internal/store"
)

// Store kinds selected by the database URL scheme.
const (
	storeMongo    = "mongo"
	storePostgres = "postgres"
	storeSQLite   = "sqlite"
	storeMemory   = "memory"
	storeUnknown  = "unknown"
)

const memoryURLScheme = "memory://"

// storeKind maps a database URL to the store implementation serving it.
func storeKind(url string) string {
	switch {
	case taskmongo.IsURL(url):
		return storeMongo
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return storePostgres
	case strings.HasPrefix(url, sqlite.URLScheme):
		return storeSQLite
	case strings.HasPrefix(url, memoryURLScheme):
		return storeMemory
	default:
		return storeUnknown
	}
}

// openTaskStore connects to the store named by cfg.URL. Relational stores
// are migrated to the latest schema before use.
func openTaskStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (store.TaskStore, error) {
	switch storeKind(cfg.URL) {
	case storeMongo:
		client, err := taskmongo.Connect(ctx, cfg.URL, cfg.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to mongodb",
			slog.String("database", cfg.Name),
			slog.String("collection", cfg.Collection))
		return taskmongo.NewTaskStore(client, cfg.Name, cfg.Collection, logger), nil

	case storePostgres, storeSQLite:
		db, dialect, err := openSQLDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := migrations.Up(ctx, db, dialect, logger); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate task store: %w", err)
		}
		if dialect == migrations.DialectPostgres {
			return postgres.NewPostgresTaskStore(db, logger), nil
		}
		return sqlite.NewTaskStore(db, logger), nil

	case storeMemory:
		logger.Warn("using in-memory task store; tasks are lost on shutdown")
		return memory.NewTaskStore(logger), nil

	default:
		return nil, fmt.Errorf("%w: unrecognized scheme", store.ErrUnsupportedURL)
	}
}

// openSQLDatabase opens the relational database named by cfg.URL.
func openSQLDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, migrations.Dialect, error) {
	switch storeKind(cfg.URL) {
	case storePostgres:
		db, err := postgres.Open(ctx, cfg.URL, cfg.ConnectTimeout)
		return db, migrations.DialectPostgres, err
	case storeSQLite:
		path, err := sqlite.PathFromURL(cfg.URL)
		if err != nil {
			return nil, "", err
		}
		db, err := sqlite.Open(ctx, path)
		return db, migrations.DialectSQLite, err
	default:
		return nil, "", fmt.Errorf("%w: not a relational store", store.ErrUnsupportedURL)
	}
}

// migrateStore runs a goose command against a relational store. Document and
// memory stores have no schema, so the command is skipped for them.
func migrateStore(ctx context.Context, cfg config.DatabaseConfig, command string, logger *slog.Logger) error {
	kind := storeKind(cfg.URL)
	switch kind {
	case storeMongo, storeMemory:
		logger.Info("store has no schema to migrate", slog.String("store", kind))
		return nil
	case storeUnknown:
		return fmt.Errorf("%w: unrecognized scheme", store.ErrUnsupportedURL)
	}

	db, dialect, err := openSQLDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	return migrations.Run(ctx, db, dialect, command, logger)
}
