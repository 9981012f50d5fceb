package postgres

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"commendai/internal/models"
	"commendai/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListQuery(t *testing.T) {
	tests := []struct {
		name      string
		filters   storage.CommentFilters
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "no filters",
			filters:   storage.CommentFilters{},
			wantQuery: "SELECT " + commentColumns + " FROM comments WHERE TRUE ORDER BY created_at DESC, id DESC",
			wantArgs:  []any{},
		},
		{
			name:      "user and paging",
			filters:   storage.CommentFilters{UserID: "u1", Limit: 20, Offset: 40},
			wantQuery: "SELECT " + commentColumns + " FROM comments WHERE TRUE AND user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3",
			wantArgs:  []any{"u1", 20, 40},
		},
		{
			name:      "posted for video",
			filters:   storage.CommentFilters{VideoKey: "k", PostedOnly: true},
			wantQuery: "SELECT " + commentColumns + " FROM comments WHERE TRUE AND video_key = $1 AND posted_at IS NOT NULL ORDER BY created_at DESC, id DESC",
			wantArgs:  []any{"k"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildListQuery(tt.filters)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(nil))
}

// setupTestDB connects to TEST_DATABASE_URL and isolates the run in a
// fresh schema.
func setupTestDB(t *testing.T) *PostgresStorage {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	schema := "commendai_test_" + uuid.New().String()[:8]

	admin, err := New(ctx, url)
	require.NoError(t, err)
	_, err = admin.pool.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)
	admin.Close()

	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	store, err := New(ctx, url+sep+"search_path="+schema)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = store.pool.Exec(ctx, "DROP SCHEMA "+schema+" CASCADE")
		store.Close()
	})

	return store
}

func TestPostgresStorage_DuplicateTracking(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	draft := &models.Comment{Text: "Great pacing", VideoURL: "https://youtu.be/dQw4w9WgXcQ", UserID: "u1"}
	require.NoError(t, store.CreateComment(ctx, draft))

	count, err := store.CountPosted(ctx, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	existed, err := store.MarkPosted(ctx, draft.ID, "", time.Now())
	require.NoError(t, err)
	assert.True(t, existed)

	count, err = store.CountPosted(ctx, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	now := time.Now()
	dup := &models.Comment{Text: "Again", VideoURL: "https://www.youtube.com/embed/dQw4w9WgXcQ", PostedAt: &now}
	assert.ErrorIs(t, store.CreateComment(ctx, dup), storage.ErrDuplicatePosted)

	_, err = store.GetComment(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	list, err := store.ListComments(ctx, storage.CommentFilters{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsPosted())
}
