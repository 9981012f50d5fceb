package models

import "time"

// Video holds the metadata and statistics of one YouTube video.
type Video struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	ChannelTitle string        `json:"channel_title"`
	ChannelID    string        `json:"channel_id"`
	Description  string        `json:"description"`
	Tags         []string      `json:"tags,omitempty"`
	PublishedAt  time.Time     `json:"published_at"`
	ViewCount    uint64        `json:"view_count"`
	LikeCount    uint64        `json:"like_count"`
	CommentCount uint64        `json:"comment_count"`
	Duration     time.Duration `json:"duration"`
}

// ChannelStats holds the public statistics of a channel.
type ChannelStats struct {
	SubscriberCount       uint64 `json:"subscriber_count"`
	HiddenSubscriberCount bool   `json:"hidden_subscriber_count"`
	VideoCount            uint64 `json:"video_count"`
}

// TopComment is an existing top-level comment on a video.
type TopComment struct {
	Author    string `json:"author"`
	Text      string `json:"text"`
	LikeCount int64  `json:"like_count"`
}

// GenerationContext is everything gathered about a video before prompting.
// Channel and TranscriptSummary are nil or empty when unavailable.
type GenerationContext struct {
	Video             Video         `json:"video"`
	Channel           *ChannelStats `json:"channel,omitempty"`
	Comments          []TopComment  `json:"comments"`
	Transcript        string        `json:"-"`
	TranscriptSummary string        `json:"transcript_summary,omitempty"`
}
