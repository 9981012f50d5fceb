package models

import (
	"strings"
	"time"
)

const requiredSuffix = " is required"

// Comment is one generation or posting event. A non-nil PostedAt marks a
// confirmed external post; nil means the record is still a draft.
type Comment struct {
	ID        string     `json:"id" db:"id" example:"550e8400-e29b-41d4-a716-446655440002"`           // Unique identifier
	Text      string     `json:"text" db:"text" example:"Loved the pacing of the second half."`       // Generated or posted text
	VideoURL  string     `json:"video_url" db:"video_url" example:"https://youtu.be/dQw4w9WgXcQ"`     // URL exactly as supplied by the caller
	VideoKey  string     `json:"-" db:"video_key"`                                                    // Canonical reference used for duplicate checks
	CreatedAt time.Time  `json:"created_at" db:"created_at" example:"2024-01-15T11:00:00Z"`           // Generation timestamp
	PostedAt  *time.Time `json:"posted_at" db:"posted_at" example:"2024-01-15T11:05:00Z"`             // Set once posted to YouTube
	UserID    string     `json:"user_id" db:"user_id" example:"6f1c2a9e-4a55-4c1e-9d0b-0b1f3a6c7d21"` // Weak reference to the owning user
}

// IsPosted reports whether the record denotes a confirmed external post.
func (c *Comment) IsPosted() bool {
	return c.PostedAt != nil
}

func (c *Comment) Validate() error {
	if strings.TrimSpace(c.Text) == "" {
		return &ValidationError{Field: "text", Message: "text is required"}
	}
	if strings.TrimSpace(c.VideoURL) == "" {
		return &ValidationError{Field: "video_url", Message: "video_url is required"}
	}
	return nil
}

// HistoryItem is the wire shape of a Comment with the derived posted flag.
type HistoryItem struct {
	ID        string     `json:"id" example:"550e8400-e29b-41d4-a716-446655440002"`
	Text      string     `json:"text" example:"Loved the pacing of the second half."`
	VideoURL  string     `json:"video_url" example:"https://youtu.be/dQw4w9WgXcQ"`
	CreatedAt time.Time  `json:"created_at" example:"2024-01-15T11:00:00Z"`
	PostedAt  *time.Time `json:"posted_at" example:"2024-01-15T11:05:00Z"`
	UserID    string     `json:"user_id" example:"6f1c2a9e-4a55-4c1e-9d0b-0b1f3a6c7d21"`
	IsPosted  bool       `json:"is_posted" example:"true"`
}

func (c *Comment) ToHistoryItem() HistoryItem {
	return HistoryItem{
		ID:        c.ID,
		Text:      c.Text,
		VideoURL:  c.VideoURL,
		CreatedAt: c.CreatedAt.UTC(),
		PostedAt:  c.PostedAt,
		UserID:    c.UserID,
		IsPosted:  c.IsPosted(),
	}
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Missing reports whether the field was absent rather than malformed.
func (e *ValidationError) Missing() bool {
	return strings.HasSuffix(e.Message, requiredSuffix)
}
