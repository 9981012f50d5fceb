package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"commendai/internal/logger"
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
				created_at DATETIME NOT NULL,
				posted_at DATETIME,
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

func runMigrations(ctx context.Context, db *sql.DB) error {
	// Create migrations table if it doesn't exist
	if err := createMigrationsTable(ctx, db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	// Get current version
	currentVersion, err := getCurrentVersion(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	// Apply pending migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		if err := applyMigration(ctx, db, migration); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", migration.Version, err)
		}
		logger.FromContext(ctx).Info("Applied migration", "driver", "sqlite", "version", migration.Version)
	}

	return nil
}

func createMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func getCurrentVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

func applyMigration(ctx context.Context, db *sql.DB, migration Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := tx.Rollback(); err != nil {
			// Only log if it's not because transaction was already committed
			if !errors.Is(err, sql.ErrTxDone) {
				logger.FromContext(ctx).Error("failed to rollback transaction", "error", err)
			}
		}
	}()

	// Execute migration SQL
	if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
		return err
	}

	// Record migration
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", migration.Version); err != nil {
		return err
	}

	return tx.Commit()
}
