package service

import (
	"context"

	"commendai/internal/cache"
	"commendai/internal/logger"
	"commendai/internal/models"
	"commendai/internal/prompt"

	"golang.org/x/sync/errgroup"
)

// Gather collects everything the prompt needs about a video. Only the
// video lookup is fatal; channel stats, top comments and the transcript
// are dropped with a warning when they fail.
func (s *CommentService) Gather(ctx context.Context, videoID string, lang models.Language) (*models.GenerationContext, error) {
	log := logger.FromContext(ctx)

	video, err := s.platform.FetchVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	gc := &models.GenerationContext{Video: *video}

	var g errgroup.Group
	if video.ChannelID != "" {
		g.Go(func() error {
			stats, err := s.platform.FetchChannelStats(ctx, video.ChannelID)
			if err != nil {
				log.Warn("Channel statistics unavailable", "channel_id", video.ChannelID, "error", err)
				return nil
			}
			gc.Channel = stats
			return nil
		})
	}
	g.Go(func() error {
		comments, err := s.platform.FetchTopComments(ctx, videoID, s.maxTopComments)
		if err != nil {
			log.Warn("Top comments unavailable", "error", err)
			return nil
		}
		if len(comments) > s.maxTopComments {
			comments = comments[:s.maxTopComments]
		}
		gc.Comments = comments
		return nil
	})
	g.Go(func() error {
		transcript, err := s.platform.FetchTranscript(ctx, videoID, lang.Code())
		if err != nil {
			log.Warn("Transcript unavailable", "error", err)
			return nil
		}
		gc.Transcript = transcript
		return nil
	})
	_ = g.Wait()

	log.Debug("Video context gathered",
		"has_channel", gc.Channel != nil,
		"comments", len(gc.Comments),
		"transcript_chars", len(gc.Transcript))
	return gc, nil
}

// summarize condenses a transcript with one model call. Any failure yields
// an empty summary.
func (s *CommentService) summarize(ctx context.Context, videoID, transcript string, lang models.Language) string {
	if transcript == "" {
		return ""
	}

	key := cache.Key("summary", videoID, string(lang))
	if s.cache != nil {
		if summary, ok := s.cache.Get(ctx, key); ok {
			return summary
		}
	}

	summary, err := s.model.Generate(ctx, prompt.SummaryPrompt(transcript, lang, s.transcriptMaxChars))
	if err != nil {
		logger.FromContext(ctx).Warn("Transcript summary failed, continuing without it", "error", err)
		return ""
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, summary)
	}
	return summary
}
