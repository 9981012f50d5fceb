package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestMigrationDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := openDB(filepath.Join(t.TempDir(), "test_migrations.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close db: %v", err)
		}
	})

	return db
}

func TestRunMigrations_EmptyDatabase(t *testing.T) {
	db := setupTestMigrationDB(t)

	err := runMigrations(context.Background(), db)
	require.NoError(t, err)

	for _, table := range []string{"comments", "schema_migrations"} {
		var exists bool
		err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM sqlite_master WHERE type='table' AND name=?)", table).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "Table %s should exist", table)
	}
}

func TestRunMigrations_SchemaVersioning(t *testing.T) {
	db := setupTestMigrationDB(t)

	require.NoError(t, runMigrations(context.Background(), db))

	rows, err := db.Query("SELECT version FROM schema_migrations ORDER BY version")
	require.NoError(t, err)
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var version int
		require.NoError(t, rows.Scan(&version))
		versions = append(versions, version)
	}

	assert.Equal(t, []int{1, 2}, versions)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := setupTestMigrationDB(t)

	require.NoError(t, runMigrations(context.Background(), db))
	require.NoError(t, runMigrations(context.Background(), db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, len(migrations), count)
}

func TestRunMigrations_Indexes(t *testing.T) {
	db := setupTestMigrationDB(t)

	require.NoError(t, runMigrations(context.Background(), db))

	expectedIndexes := []string{
		"idx_comments_created_at",
		"idx_comments_video_key",
		"idx_comments_user_id",
		"idx_comments_posted_video",
	}

	for _, indexName := range expectedIndexes {
		var exists bool
		err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM sqlite_master WHERE type='index' AND name=?)", indexName).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "Index %s should exist", indexName)
	}
}

func TestRunMigrations_PostedUniqueIndex(t *testing.T) {
	db := setupTestMigrationDB(t)
	require.NoError(t, runMigrations(context.Background(), db))

	insert := "INSERT INTO comments (id, text, video_url, video_key, created_at, posted_at) VALUES (?, 'x', 'u', 'k', datetime('now'), ?)"

	// Any number of drafts for the same key
	_, err := db.Exec(insert, "d1", nil)
	require.NoError(t, err)
	_, err = db.Exec(insert, "d2", nil)
	require.NoError(t, err)

	// Only one posted record
	_, err = db.Exec(insert, "p1", "2024-01-01 00:00:00")
	require.NoError(t, err)
	_, err = db.Exec(insert, "p2", "2024-01-02 00:00:00")
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err), "expected unique violation, got %v", err)
}

func TestGetCurrentVersion(t *testing.T) {
	db := setupTestMigrationDB(t)
	ctx := context.Background()

	require.NoError(t, createMigrationsTable(ctx, db))

	// Initially should be 0 (no migrations applied)
	version, err := getCurrentVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 0, version)

	_, err = db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", 1)
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", 3)
	require.NoError(t, err)

	// Should return max version
	version, err = getCurrentVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 3, version)
}

func TestApplyMigration(t *testing.T) {
	db := setupTestMigrationDB(t)
	ctx := context.Background()

	require.NoError(t, createMigrationsTable(ctx, db))

	migration := Migration{
		Version: 1,
		SQL:     "CREATE TABLE test_table (id INTEGER PRIMARY KEY)",
	}

	require.NoError(t, applyMigration(ctx, db, migration))

	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM sqlite_master WHERE type='table' AND name='test_table')").Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists)

	var recordedVersion int
	err = db.QueryRow("SELECT version FROM schema_migrations WHERE version = ?", 1).Scan(&recordedVersion)
	require.NoError(t, err)
	assert.Equal(t, 1, recordedVersion)
}

func TestApplyMigration_FailureRollsBack(t *testing.T) {
	db := setupTestMigrationDB(t)
	ctx := context.Background()

	require.NoError(t, createMigrationsTable(ctx, db))

	err := applyMigration(ctx, db, Migration{Version: 7, SQL: "CREATE TABLE broken ("})
	require.Error(t, err)

	version, err := getCurrentVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 0, version)
}
