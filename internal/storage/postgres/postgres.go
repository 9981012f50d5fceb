// Package postgres is the PostgreSQL CommentStore, used when db_driver is
// "postgres".
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"commendai/internal/logger"
	"commendai/internal/models"
	"commendai/internal/storage"
	"commendai/internal/videoref"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type PostgresStorage struct {
	pool *pgxpool.Pool
}

var _ storage.CommentStore = (*PostgresStorage)(nil)

// New connects a pgx pool and applies pending migrations.
func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &PostgresStorage{pool: pool}
	if err := s.RunMigrations(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.FromContext(ctx).Info("Postgres connected", "host", config.ConnConfig.Host, "database", config.ConnConfig.Database)
	return s, nil
}

func (s *PostgresStorage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStorage) Close() error {
	s.pool.Close()
	return nil
}

const commentColumns = "id, text, video_url, video_key, created_at, posted_at, user_id"

func (s *PostgresStorage) CreateComment(ctx context.Context, comment *models.Comment) error {
	if err := comment.Validate(); err != nil {
		return err
	}

	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if comment.VideoKey == "" {
		comment.VideoKey = videoref.Normalize(comment.VideoURL)
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	comment.CreatedAt = comment.CreatedAt.UTC()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO comments (id, text, video_url, video_key, created_at, posted_at, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, comment.ID, comment.Text, comment.VideoURL, comment.VideoKey, comment.CreatedAt, comment.PostedAt, comment.UserID)
	if isUniqueViolation(err) {
		return storage.ErrDuplicatePosted
	}

	return err
}

func (s *PostgresStorage) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+commentColumns+" FROM comments WHERE id = $1", id)

	comment, err := scanComment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	return comment, nil
}

func (s *PostgresStorage) MarkPosted(ctx context.Context, id, text string, at time.Time) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		"UPDATE comments SET posted_at = $1, text = COALESCE(NULLIF($2::text, ''), text) WHERE id = $3 AND posted_at IS NULL",
		at.UTC(), text, id)
	if err != nil {
		if isUniqueViolation(err) {
			return true, storage.ErrDuplicatePosted
		}
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	var exists bool
	err = s.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

func (s *PostgresStorage) CountPosted(ctx context.Context, videoKey string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM comments WHERE video_key = $1 AND posted_at IS NOT NULL",
		videoKey).Scan(&count)
	return count, err
}

func (s *PostgresStorage) ListComments(ctx context.Context, filters storage.CommentFilters) ([]*models.Comment, error) {
	query, args := buildListQuery(filters)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

func buildListQuery(filters storage.CommentFilters) (string, []any) {
	query := "SELECT " + commentColumns + " FROM comments WHERE TRUE"
	args := []any{}

	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filters.UserID != "" {
		query += " AND user_id = " + next(filters.UserID)
	}
	if filters.VideoKey != "" {
		query += " AND video_key = " + next(filters.VideoKey)
	}
	if filters.PostedOnly {
		query += " AND posted_at IS NOT NULL"
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT " + next(filters.Limit)
	}
	if filters.Offset > 0 {
		query += " OFFSET " + next(filters.Offset)
	}

	return query, args
}

func scanComment(row pgx.Row) (*models.Comment, error) {
	var comment models.Comment

	err := row.Scan(
		&comment.ID, &comment.Text, &comment.VideoURL, &comment.VideoKey,
		&comment.CreatedAt, &comment.PostedAt, &comment.UserID,
	)
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
