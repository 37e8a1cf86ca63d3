package migration

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cookbook/internal/database"
)

func TestEnsureMigratedSQLite(t *testing.T) {
	db, err := database.NewSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	var logs bytes.Buffer
	log := zerolog.New(&logs)
	ctx := context.Background()

	require.NoError(t, EnsureMigrated(ctx, db, SQLite, log))
	assert.Contains(t, logs.String(), "db_migration_success")

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	assert.Zero(t, n)

	logs.Reset()
	require.NoError(t, EnsureMigrated(ctx, db, SQLite, log))
	assert.Contains(t, logs.String(), "db_migration_skip")
}

func TestEnsureMigratedPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT to_regclass`).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS users`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS idx_users_created_at`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureMigrated(context.Background(), db, Postgres, zerolog.Nop()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigratedFailures(t *testing.T) {
	t.Run("sentinel", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT to_regclass`).WillReturnError(errors.New("permission denied"))

		err = EnsureMigrated(context.Background(), db, Postgres, zerolog.Nop())
		assert.ErrorContains(t, err, "failed to check sentinel table")
	})

	t.Run("step", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT to_regclass`).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(`CREATE TABLE`).WillReturnError(errors.New("disk full"))

		err = EnsureMigrated(context.Background(), db, Postgres, zerolog.Nop())
		assert.ErrorContains(t, err, "migration step create_table_users failed")
	})

	t.Run("dialect", func(t *testing.T) {
		err := EnsureMigrated(context.Background(), nil, Dialect("oracle"), zerolog.Nop())
		assert.Error(t, err)
	})
}
