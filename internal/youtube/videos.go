package youtube

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"commendai/internal/apperror"
	"commendai/internal/logger"
	"commendai/internal/models"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	youtube "google.golang.org/api/youtube/v3"
)

// FetchVideo returns metadata and statistics for a video id.
func (c *Client) FetchVideo(ctx context.Context, videoID string) (*models.Video, error) {
	const op = "youtube.FetchVideo"

	var resp *youtube.VideoListResponse
	err := c.callRead(ctx, op, func(ctx context.Context) error {
		var err error
		resp, err = c.read.Videos.List([]string{"snippet", "contentDetails", "statistics", "status"}).
			Id(videoID).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return nil, classify(op, reading, err)
	}

	if len(resp.Items) == 0 {
		return nil, apperror.Newf(apperror.VideoNotFound, op, "no video with id %s", videoID)
	}
	item := resp.Items[0]

	if item.Status != nil && item.Status.PrivacyStatus == "private" {
		return nil, apperror.Newf(apperror.VideoPrivate, op, "video %s is private", videoID)
	}

	video := &models.Video{ID: item.Id}
	if s := item.Snippet; s != nil {
		video.Title = s.Title
		video.ChannelTitle = s.ChannelTitle
		video.ChannelID = s.ChannelId
		video.Description = s.Description
		video.Tags = s.Tags
		if t, err := time.Parse(time.RFC3339, s.PublishedAt); err == nil {
			video.PublishedAt = t
		}
	}
	if st := item.Statistics; st != nil {
		video.ViewCount = st.ViewCount
		video.LikeCount = st.LikeCount
		video.CommentCount = st.CommentCount
	}
	if cd := item.ContentDetails; cd != nil {
		if d, err := ParseDuration(cd.Duration); err == nil {
			video.Duration = d
		} else {
			logger.FromContext(ctx).Debug("Unparseable video duration", "video_id", videoID, "duration", cd.Duration)
		}
	}

	return video, nil
}

// FetchChannelStats returns the public statistics of a channel.
func (c *Client) FetchChannelStats(ctx context.Context, channelID string) (*models.ChannelStats, error) {
	const op = "youtube.FetchChannelStats"

	var resp *youtube.ChannelListResponse
	err := c.callRead(ctx, op, func(ctx context.Context) error {
		var err error
		resp, err = c.read.Channels.List([]string{"statistics"}).Id(channelID).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, classify(op, reading, err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Statistics == nil {
		return nil, apperror.Newf(apperror.VideoPlatform, op, "no statistics for channel %s", channelID)
	}

	st := resp.Items[0].Statistics
	return &models.ChannelStats{
		SubscriberCount:       st.SubscriberCount,
		HiddenSubscriberCount: st.HiddenSubscriberCount,
		VideoCount:            st.VideoCount,
	}, nil
}

// FetchTopComments returns up to limit top-level comments ordered by relevance.
func (c *Client) FetchTopComments(ctx context.Context, videoID string, limit int) ([]models.TopComment, error) {
	const op = "youtube.FetchTopComments"

	var resp *youtube.CommentThreadListResponse
	err := c.callRead(ctx, op, func(ctx context.Context) error {
		var err error
		resp, err = c.read.CommentThreads.List([]string{"snippet"}).
			VideoId(videoID).
			MaxResults(int64(limit)).
			Order("relevance").
			TextFormat("html").
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return nil, classify(op, reading, err)
	}

	comments := make([]models.TopComment, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
			continue
		}
		s := item.Snippet.TopLevelComment.Snippet
		text := commentText(s.TextDisplay, s.TextOriginal)
		if text == "" {
			continue
		}
		comments = append(comments, models.TopComment{
			Author:    s.AuthorDisplayName,
			Text:      text,
			LikeCount: s.LikeCount,
		})
		if len(comments) == limit {
			break
		}
	}

	return comments, nil
}

var blankLines = regexp.MustCompile(`\n{2,}`)

// commentText turns the HTML textDisplay into compact markdown, falling
// back to textOriginal.
func commentText(display, original string) string {
	if display != "" {
		if md, err := htmltomarkdown.ConvertString(display); err == nil {
			return strings.TrimSpace(blankLines.ReplaceAllString(md, "\n"))
		}
	}
	return strings.TrimSpace(original)
}

// PostComment creates a top-level comment and returns the created
// commentThread resource as JSON. It is never retried.
func (c *Client) PostComment(ctx context.Context, videoID, text string) (json.RawMessage, error) {
	const op = "youtube.PostComment"

	if c.write == nil {
		return nil, errPostingDisabled
	}

	thread := &youtube.CommentThread{
		Snippet: &youtube.CommentThreadSnippet{
			VideoId: videoID,
			TopLevelComment: &youtube.Comment{
				Snippet: &youtube.CommentSnippet{TextOriginal: text},
			},
		},
	}

	var created *youtube.CommentThread
	err := c.call(ctx, func(ctx context.Context) error {
		var err error
		created, err = c.write.CommentThreads.Insert([]string{"snippet"}, thread).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, classify(op, posting, err)
	}

	payload, err := created.MarshalJSON()
	if err != nil {
		return nil, apperror.New(apperror.VideoPlatform, op, err)
	}
	return payload, nil
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseDuration parses the ISO 8601 durations used by contentDetails,
// such as PT4M13S or P1DT2H.
func ParseDuration(s string) (time.Duration, error) {
	m := isoDuration.FindStringSubmatch(s)
	if m == nil || s == "P" || s == "PT" {
		return 0, apperror.Newf(apperror.VideoPlatform, "youtube.ParseDuration", "invalid duration %q", s)
	}

	units := []time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second}
	var d time.Duration
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, err
		}
		d += time.Duration(n) * unit
	}
	return d, nil
}
