//go:generate mockgen -source=service.go -destination=../handlers/mocks/service_deps_mock.go -package=mocks

// Package service runs the comment pipelines: gathering video context,
// generating a draft, and posting it under the one-comment-per-video rule.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"commendai/internal/apperror"
	"commendai/internal/logger"
	"commendai/internal/models"
	"commendai/internal/prompt"
	"commendai/internal/storage"
	"commendai/internal/videoref"
)

// VideoPlatform is the read and write surface of the video site.
type VideoPlatform interface {
	FetchVideo(ctx context.Context, videoID string) (*models.Video, error)
	FetchChannelStats(ctx context.Context, channelID string) (*models.ChannelStats, error)
	FetchTopComments(ctx context.Context, videoID string, limit int) ([]models.TopComment, error)
	FetchTranscript(ctx context.Context, videoID, lang string) (string, error)
	PostComment(ctx context.Context, videoID, text string) (json.RawMessage, error)
}

// TextGenerator turns a prompt into text with a single model call.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// SummaryCache keeps transcript summaries between requests.
type SummaryCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

const (
	DefaultMaxTopComments     = 10
	DefaultTranscriptMaxChars = 12000
)

type Options struct {
	MaxTopComments     int
	TranscriptMaxChars int
	// Now is used for posted timestamps. Defaults to time.Now.
	Now                func() time.Time
}

type CommentService struct {
	store    storage.CommentStore
	platform VideoPlatform
	model    TextGenerator
	cache    SummaryCache
	locks    *videoLocks

	maxTopComments     int
	transcriptMaxChars int
	now                func() time.Time
}

// New wires the pipeline. cache may be nil.
func New(store storage.CommentStore, platform VideoPlatform, model TextGenerator, cache SummaryCache, opts Options) *CommentService {
	if opts.MaxTopComments <= 0 {
		opts.MaxTopComments = DefaultMaxTopComments
	}
	if opts.TranscriptMaxChars <= 0 {
		opts.TranscriptMaxChars = DefaultTranscriptMaxChars
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &CommentService{
		store:              store,
		platform:           platform,
		model:              model,
		cache:              cache,
		locks:              newVideoLocks(),
		maxTopComments:     opts.MaxTopComments,
		transcriptMaxChars: opts.TranscriptMaxChars,
		now:                opts.Now,
	}
}

type GenerateInput struct {
	VideoURL string
	Language models.Language
	Style    models.Style
	UserID   string
}

type GenerateResult struct {
	Text        string
	CommentID   string
	// PostedCount is the number of posted records for the video.
	PostedCount int
	CanPost     bool
}

type PostInput struct {
	VideoURL  string
	Text      string
	CommentID string
	UserID    string
}

type PostResult struct {
	CommentID string
	Payload   json.RawMessage
}

// DuplicatePostError carries how many posted records blocked a post.
type DuplicatePostError struct {
	Count int
}

func (e *DuplicatePostError) Error() string {
	return fmt.Sprintf("video already has %d posted comment(s)", e.Count)
}

// Generate drafts a comment for a video and records it. Generation is
// allowed for already posted videos; the result then has CanPost false.
func (s *CommentService) Generate(ctx context.Context, in GenerateInput) (*GenerateResult, error) {
	const op = "service.Generate"

	videoID, ok := videoref.ExtractID(in.VideoURL)
	if !ok {
		return nil, apperror.Newf(apperror.InvalidVideoReference, op, "no video id in %q", in.VideoURL)
	}
	ctx = logger.WithFields(ctx, "video_id", videoID)
	log := logger.FromContext(ctx)

	gc, err := s.Gather(ctx, videoID, in.Language)
	if err != nil {
		return nil, err
	}
	gc.TranscriptSummary = s.summarize(ctx, videoID, gc.Transcript, in.Language)

	text, err := s.model.Generate(ctx, prompt.Build(*gc, in.Style, in.Language))
	if err != nil {
		if apperror.KindOf(err) == apperror.Unclassified {
			err = apperror.New(apperror.ModelGeneric, op, err)
		}
		return nil, err
	}

	id, err := s.RecordDraft(ctx, in.VideoURL, text, in.UserID)
	if err != nil {
		return nil, err
	}

	count, err := s.CountPostedComments(ctx, in.VideoURL)
	if err != nil {
		return nil, err
	}

	log.Info("Comment generated", "comment_id", id, "posted_count", count, "style", in.Style, "language", in.Language)
	return &GenerateResult{
		Text:        text,
		CommentID:   id,
		PostedCount: count,
		CanPost:     count == 0,
	}, nil
}

// Post submits text to the platform unless the video already has a posted
// comment. The check, the external call and the record update run under a
// per-video lock.
func (s *CommentService) Post(ctx context.Context, in PostInput) (*PostResult, error) {
	const op = "service.Post"

	videoID, ok := videoref.ExtractID(in.VideoURL)
	if !ok {
		return nil, apperror.Newf(apperror.InvalidVideoReference, op, "no video id in %q", in.VideoURL)
	}
	key := videoref.Canonical(videoID)
	ctx = logger.WithFields(ctx, "video_id", videoID)
	log := logger.FromContext(ctx)

	unlock := s.locks.lock(key)
	defer unlock()

	count, err := s.store.CountPosted(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to count posted comments: %w", err)
	}
	if count > 0 {
		return nil, apperror.New(apperror.DuplicatePost, op, &DuplicatePostError{Count: count})
	}

	payload, err := s.platform.PostComment(ctx, videoID, in.Text)
	if err != nil {
		return nil, err
	}

	id, err := s.recordPost(ctx, in, key)
	switch {
	case errors.Is(err, storage.ErrDuplicatePosted):
		log.Warn("Comment posted externally but video already had a posted record", "comment_id", in.CommentID)
		return nil, apperror.New(apperror.DuplicatePost, op, &DuplicatePostError{Count: 1})
	case err != nil:
		log.Error("Comment posted externally but could not be recorded", "comment_id", in.CommentID, "error", err)
	default:
		log.Info("Comment posted", "comment_id", id)
	}

	return &PostResult{CommentID: id, Payload: payload}, nil
}

// recordPost promotes the named draft when it was generated for the posted
// video, otherwise it inserts a posted record for that video.
func (s *CommentService) recordPost(ctx context.Context, in PostInput, key string) (string, error) {
	if in.CommentID == "" {
		return s.RecordPosted(ctx, in.VideoURL, in.Text, in.UserID)
	}
	log := logger.FromContext(ctx).With("comment_id", in.CommentID)

	draft, err := s.store.GetComment(ctx, in.CommentID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		log.Warn("Draft not found, recording a new posted comment")
	case err != nil:
		return in.CommentID, fmt.Errorf("failed to load draft: %w", err)
	case draft.VideoKey != key:
		log.Warn("Draft belongs to another video, recording a new posted comment", "draft_video", draft.VideoKey)
	default:
		existed, err := s.store.MarkPosted(ctx, in.CommentID, in.Text, s.now().UTC())
		if err != nil {
			return in.CommentID, err
		}
		if existed {
			return in.CommentID, nil
		}
		log.Warn("Draft disappeared, recording a new posted comment")
	}
	return s.RecordPosted(ctx, in.VideoURL, in.Text, in.UserID)
}

// HasPostedComment reports whether any record for the normalized video
// reference is posted.
func (s *CommentService) HasPostedComment(ctx context.Context, videoURL string) (bool, error) {
	count, err := s.CountPostedComments(ctx, videoURL)
	return count > 0, err
}

// CountPostedComments counts posted records for the normalized video
// reference.
func (s *CommentService) CountPostedComments(ctx context.Context, videoURL string) (int, error) {
	count, err := s.store.CountPosted(ctx, videoref.Normalize(videoURL))
	if err != nil {
		return 0, fmt.Errorf("failed to count posted comments: %w", err)
	}
	return count, nil
}

// RecordDraft stores a generated comment that has not been posted.
func (s *CommentService) RecordDraft(ctx context.Context, videoURL, text, userID string) (string, error) {
	return s.create(ctx, &models.Comment{Text: text, VideoURL: videoURL, UserID: userID})
}

// RecordPosted stores a comment that was posted without a prior draft.
func (s *CommentService) RecordPosted(ctx context.Context, videoURL, text, userID string) (string, error) {
	now := s.now().UTC()
	return s.create(ctx, &models.Comment{Text: text, VideoURL: videoURL, UserID: userID, PostedAt: &now})
}

// MarkPosted sets the posted timestamp of a draft. A second call leaves
// the first timestamp in place. The bool reports whether the record exists.
func (s *CommentService) MarkPosted(ctx context.Context, id string) (bool, error) {
	return s.store.MarkPosted(ctx, id, "", s.now().UTC())
}

type HistoryQuery struct {
	UserID string
	Limit  int
	Offset int
}

// History lists records newest first.
func (s *CommentService) History(ctx context.Context, q HistoryQuery) ([]models.HistoryItem, error) {
	comments, err := s.store.ListComments(ctx, storage.CommentFilters{
		UserID: q.UserID,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	items := make([]models.HistoryItem, 0, len(comments))
	for _, c := range comments {
		items = append(items, c.ToHistoryItem())
	}
	return items, nil
}

func (s *CommentService) create(ctx context.Context, c *models.Comment) (string, error) {
	if err := c.Validate(); err != nil {
		return "", apperror.New(apperror.Validation, "service.create", err)
	}
	if err := s.store.CreateComment(ctx, c); err != nil {
		if errors.Is(err, storage.ErrDuplicatePosted) {
			return "", err
		}
		return "", fmt.Errorf("failed to store comment: %w", err)
	}
	return c.ID, nil
}
