package postgres

import (
	"context"
	"fmt"

	"commendai/internal/logger"

	"github.com/jackc/pgx/v5"
)

type Migration struct {
	Version int
	SQL     string
}

var migrations = []Migration{
	{
		Version: 1,
		SQL: `
			CREATE TABLE IF NOT EXISTS comments (
				id TEXT PRIMARY KEY,
				text TEXT NOT NULL,
				video_url TEXT NOT NULL,
				video_key TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL,
				posted_at TIMESTAMPTZ,
				user_id TEXT NOT NULL DEFAULT ''
			);

			CREATE INDEX IF NOT EXISTS idx_comments_created_at ON comments(created_at);
			CREATE INDEX IF NOT EXISTS idx_comments_video_key ON comments(video_key);
			CREATE INDEX IF NOT EXISTS idx_comments_user_id ON comments(user_id);
		`,
	},
	{
		Version: 2,
		SQL: `
			CREATE UNIQUE INDEX IF NOT EXISTS idx_comments_posted_video
				ON comments(video_key) WHERE posted_at IS NOT NULL;
		`,
	},
}

func (s *PostgresStorage) RunMigrations(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var current int
	if err := s.pool.QueryRow(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}

		err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, migration.SQL); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", migration.Version)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", migration.Version, err)
		}
		logger.FromContext(ctx).Info("Applied migration", "driver", "postgres", "version", migration.Version)
	}

	return nil
}
