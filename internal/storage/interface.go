//go:generate mockgen -source=interface.go -destination=../handlers/mocks/storage_mock.go -package=mocks

package storage

import (
	"context"
	"errors"
	"time"

	"commendai/internal/models"
)

var (
	// ErrNotFound is returned when no comment record has the requested id.
	ErrNotFound = errors.New("comment not found")
	// ErrDuplicatePosted is returned when a write would give a video a
	// second posted comment.
	ErrDuplicatePosted = errors.New("video already has a posted comment")
)

// CommentStore persists comment records. Implementations fill in ID,
// CreatedAt and VideoKey when they are empty and must enforce at most one
// posted record per VideoKey.
type CommentStore interface {
	// CreateComment inserts a draft, or a posted record when PostedAt is set
	CreateComment(ctx context.Context, comment *models.Comment) error
	// GetComment retrieves a comment by its ID
	GetComment(ctx context.Context, id string) (*models.Comment, error)
	// MarkPosted sets posted_at on a draft and replaces its text with the
	// posted text unless text is empty. Already posted records are left
	// untouched. The bool reports whether the record exists.
	MarkPosted(ctx context.Context, id, text string, at time.Time) (bool, error)
	// CountPosted counts posted records for a canonical video reference
	CountPosted(ctx context.Context, videoKey string) (int, error)
	// ListComments returns records newest first
	ListComments(ctx context.Context, filters CommentFilters) ([]*models.Comment, error)

	// Ping checks the database connection
	Ping(ctx context.Context) error
	// RunMigrations runs the database migrations
	RunMigrations(ctx context.Context) error
	// Close closes the database connection
	Close() error
}

// CommentFilters narrows ListComments. Zero values mean no restriction.
type CommentFilters struct {
	UserID     string
	VideoKey   string
	PostedOnly bool
	Limit      int
	Offset     int
}
