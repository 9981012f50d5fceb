package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"commendai/internal/models"
	"commendai/internal/storage"
	"commendai/internal/videoref"

	"github.com/google/uuid"
)

type SQLiteStorage struct {
	db *sql.DB
}

var _ storage.CommentStore = (*SQLiteStorage)(nil)

func New(dbPath string) (*SQLiteStorage, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	storage := &SQLiteStorage{db: db}

	if err := storage.RunMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) RunMigrations(ctx context.Context) error {
	return runMigrations(ctx, s.db)
}

func (s *SQLiteStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

const commentColumns = "id, text, video_url, video_key, created_at, posted_at, user_id"

func (s *SQLiteStorage) CreateComment(ctx context.Context, comment *models.Comment) error {
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

	var postedAt sql.NullTime
	if comment.PostedAt != nil {
		postedAt = sql.NullTime{Time: comment.PostedAt.UTC(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (id, text, video_url, video_key, created_at, posted_at, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, comment.ID, comment.Text, comment.VideoURL, comment.VideoKey, comment.CreatedAt, postedAt, comment.UserID)
	if isUniqueViolation(err) {
		return storage.ErrDuplicatePosted
	}

	return err
}

func (s *SQLiteStorage) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+commentColumns+" FROM comments WHERE id = ?", id)

	comment, err := scanComment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	return comment, nil
}

func (s *SQLiteStorage) MarkPosted(ctx context.Context, id, text string, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE comments SET posted_at = ?, text = COALESCE(NULLIF(?, ''), text) WHERE id = ? AND posted_at IS NULL",
		at.UTC(), text, id)
	if err != nil {
		if isUniqueViolation(err) {
			return true, storage.ErrDuplicatePosted
		}
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}

	// Nothing updated: either unknown id or already posted.
	var exists bool
	if err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM comments WHERE id = ?)", id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *SQLiteStorage) CountPosted(ctx context.Context, videoKey string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM comments WHERE video_key = ? AND posted_at IS NOT NULL",
		videoKey).Scan(&count)
	return count, err
}

func (s *SQLiteStorage) ListComments(ctx context.Context, filters storage.CommentFilters) ([]*models.Comment, error) {
	query := "SELECT " + commentColumns + " FROM comments WHERE 1=1"
	args := []interface{}{}

	if filters.UserID != "" {
		query += " AND user_id = ?"
		args = append(args, filters.UserID)
	}

	if filters.VideoKey != "" {
		query += " AND video_key = ?"
		args = append(args, filters.VideoKey)
	}

	if filters.PostedOnly {
		query += " AND posted_at IS NOT NULL"
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	// SQLite only accepts OFFSET after a LIMIT clause
	if filters.Limit > 0 || filters.Offset > 0 {
		limit := filters.Limit
		if limit <= 0 {
			limit = -1
		}
		query += " LIMIT ?"
		args = append(args, limit)
	}

	if filters.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filters.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
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

type scanner interface {
	Scan(dest ...any) error
}

func scanComment(row scanner) (*models.Comment, error) {
	var comment models.Comment
	var postedAt sql.NullTime

	err := row.Scan(
		&comment.ID, &comment.Text, &comment.VideoURL, &comment.VideoKey,
		&comment.CreatedAt, &postedAt, &comment.UserID,
	)
	if err != nil {
		return nil, err
	}

	if postedAt.Valid {
		t := postedAt.Time
		comment.PostedAt = &t
	}

	return &comment, nil
}
