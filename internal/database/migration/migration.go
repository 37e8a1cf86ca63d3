package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Dialect selects the SQL flavour of the schema.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = map[Dialect][]migrationStep{
	Postgres: {
		{
			Name: "create_table_users",
			SQL: `CREATE TABLE IF NOT EXISTS users (
  id         UUID        PRIMARY KEY,
  name       TEXT        NOT NULL CHECK (length(name) > 0),
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
		},
		{
			Name: "create_index_users_created_at",
			SQL:  `CREATE INDEX IF NOT EXISTS idx_users_created_at ON users (created_at);`,
		},
	},
	SQLite: {
		{
			Name: "create_table_users",
			SQL: `CREATE TABLE IF NOT EXISTS users (
  id         TEXT PRIMARY KEY,
  name       TEXT NOT NULL CHECK (length(name) > 0),
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);`,
		},
		{
			Name: "create_index_users_created_at",
			SQL:  `CREATE INDEX IF NOT EXISTS idx_users_created_at ON users (created_at);`,
		},
	},
}

var sentinel = map[Dialect]string{
	Postgres: `SELECT to_regclass('public.users') IS NOT NULL`,
	SQLite:   `SELECT COUNT(*) > 0 FROM sqlite_master WHERE type = 'table' AND name = 'users'`,
}

// EnsureMigrated checks if the 'users' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, dialect Dialect, log zerolog.Logger) error {
	query, ok := sentinel[dialect]
	if !ok {
		return fmt.Errorf("unsupported dialect %q", dialect)
	}
	log = log.With().Str("component", "database").Str("dialect", string(dialect)).Logger()
	start := time.Now()

	log.Info().Str("event", "db_migration_check").Str("status", "starting").Send()

	var exists bool
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error().
			Str("event", "db_migration_failed").
			Str("status", "error").
			Err(err).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info().
			Str("event", "db_migration_skip").
			Str("status", "success").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping migration")
		return nil
	}

	log.Info().Str("event", "db_migration_start").Str("status", "in_progress").Send()

	for _, step := range steps[dialect] {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().
				Str("event", "db_migration_failed").
				Str("status", "error").
				Str("migration_step", step.Name).
				Err(err).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Send()
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info().
			Str("event", "db_migration_step").
			Str("status", "success").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Send()
	}

	log.Info().
		Str("event", "db_migration_success").
		Str("status", "success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Send()

	return nil
}
