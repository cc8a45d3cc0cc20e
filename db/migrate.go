package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// Migration is a named, forward-only schema change. Applied names are
// recorded in schema_migrations and never run again.
type Migration struct {
	Name string
	Up   string
}

// Migrations lists the schema in application order. Seasons, leagues and
// teams live in other services and are referenced by opaque id only.
var Migrations = []Migration{
	{
		Name: "2025_06_01_000000_create_bracket_generations",
		Up: `
			CREATE TABLE IF NOT EXISTS bracket_generations (
				id UUID PRIMARY KEY,
				season_id TEXT NOT NULL,
				league_id TEXT NULL,
				league_key TEXT NOT NULL,
				bracket_type VARCHAR(16) NOT NULL,
				status VARCHAR(16) NOT NULL,
				expected INT NOT NULL DEFAULT 0,
				created INT NOT NULL DEFAULT 0,
				archive_key TEXT NULL,
				created_by INT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT bracket_generations_season_league_key UNIQUE (season_id, league_key)
			);`,
	},
	{
		Name: "2025_06_01_000001_create_matches",
		Up: `
			CREATE TABLE IF NOT EXISTS matches (
				id BIGSERIAL PRIMARY KEY,
				season_id TEXT NOT NULL,
				league_id TEXT NULL,
				generation_id UUID NOT NULL,
				bracket_match_uid VARCHAR(32) NOT NULL,
				bracket_side VARCHAR(16) NOT NULL,
				stage VARCHAR(64) NOT NULL,
				round INT NOT NULL,
				order_in_round INT NOT NULL,
				team1_id TEXT NULL,
				team2_id TEXT NULL,
				team1_source VARCHAR(48) NULL,
				team2_source VARCHAR(48) NULL,
				match_date DATE NOT NULL,
				status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT matches_generation_id_fkey FOREIGN KEY (generation_id)
					REFERENCES bracket_generations(id) ON DELETE CASCADE,
				CONSTRAINT matches_generation_uid_key UNIQUE (generation_id, bracket_match_uid)
			);
			CREATE INDEX IF NOT EXISTS idx_matches_season_league ON matches(season_id, league_id);
			CREATE INDEX IF NOT EXISTS idx_matches_match_date ON matches(match_date);`,
	},
}

// Migrate applies every pending migration, each in its own transaction.
func Migrate(ctx context.Context, db *sql.DB, migrations []Migration, logger *slog.Logger) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var applied bool
		if err := db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, m.Name,
		).Scan(&applied); err != nil {
			return fmt.Errorf("check migration %s: %w", m.Name, err)
		}
		if applied {
			continue
		}

		if err := applyMigration(ctx, db, m); err != nil {
			return err
		}
		logger.Info("migration applied", slog.String("name", m.Name))
	}
	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", m.Name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.Up); err != nil {
		return fmt.Errorf("migration %s failed: %w", m.Name, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, m.Name); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", m.Name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", m.Name, err)
	}
	return nil
}
