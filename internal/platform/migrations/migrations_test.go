package migrations_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/phrazzld/tasktracker/internal/platform/logger"
	"github.com/phrazzld/tasktracker/internal/platform/migrations"
	"github.com/phrazzld/tasktracker/internal/platform/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_SQLiteUpDown(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	defer db.Close()

	buf, log := logger.NewTestLogger(t)

	require.NoError(t, migrations.Run(ctx, db, migrations.DialectSQLite, migrations.CommandUp, log))

	var count int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'tasks'`).Scan(&count))
	assert.Equal(t, 1, count, "tasks table should exist after up")

	// Applying again is a no-op.
	require.NoError(t, migrations.Up(ctx, db, migrations.DialectSQLite, log))
	require.NoError(t, migrations.Run(ctx, db, migrations.DialectSQLite, migrations.CommandStatus, log))
	require.NoError(t, migrations.Run(ctx, db, migrations.DialectSQLite, migrations.CommandVersion, log))

	require.NoError(t, migrations.Run(ctx, db, migrations.DialectSQLite, migrations.CommandDown, log))
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'tasks'`).Scan(&count))
	assert.Equal(t, 0, count, "tasks table should be gone after down")

	logger.AssertLogContains(t, buf, "migrations finished")
	logger.AssertLogContains(t, buf, `"component":"migrations"`)
}

func TestRun_UnknownCommand(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	err = migrations.Run(ctx, db, migrations.DialectSQLite, "sideways", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration command")
}

func TestRun_UnknownDialect(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	err = migrations.Run(ctx, db, migrations.Dialect("oracle"), migrations.CommandUp, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported migration dialect")
}
