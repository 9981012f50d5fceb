package youtube

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"commendai/internal/apperror"
	"commendai/internal/logger"

	"github.com/asticode/go-astisub"
	youtube "google.golang.org/api/youtube/v3"
)

const maxCaptionBytes = 2 << 20

type captionTrack struct {
	Language string
	Kind     string // "standard", "asr" or "forced"
	Name     string
}

// FetchTranscript returns the plain text of the best caption track for the
// video, preferring lang. It returns "" without error when the video has
// no usable captions.
func (c *Client) FetchTranscript(ctx context.Context, videoID, lang string) (string, error) {
	const op = "youtube.FetchTranscript"
	log := logger.FromContext(ctx)

	var resp *youtube.CaptionListResponse
	err := c.callRead(ctx, op, func(ctx context.Context) error {
		var err error
		resp, err = c.read.Captions.List([]string{"snippet"}, videoID).Context(ctx).Do()
		return err
	})
	if err != nil {
		return "", classify(op, reading, err)
	}

	tracks := make([]captionTrack, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil {
			continue
		}
		tracks = append(tracks, captionTrack{
			Language: item.Snippet.Language,
			Kind:     strings.ToLower(item.Snippet.TrackKind),
			Name:     item.Snippet.Name,
		})
	}

	track, ok := pickBestTrack(tracks, []string{lang, "en"})
	if !ok {
		log.Debug("No caption tracks", "video_id", videoID)
		return "", nil
	}

	var body []byte
	err = c.callRead(ctx, op, func(ctx context.Context) error {
		var err error
		body, err = c.fetchTimedText(ctx, videoID, track)
		return err
	})
	if err != nil {
		return "", classify(op, reading, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		log.Debug("Empty caption body", "video_id", videoID, "lang", track.Language, "kind", track.Kind)
		return "", nil
	}

	text, err := parseVTT(body)
	if err != nil {
		return "", apperror.New(apperror.VideoPlatform, op, err)
	}
	log.Debug("Transcript fetched", "video_id", videoID, "lang", track.Language, "kind", track.Kind, "chars", len(text))
	return text, nil
}

func (c *Client) fetchTimedText(ctx context.Context, videoID string, track captionTrack) ([]byte, error) {
	q := url.Values{}
	q.Set("v", videoID)
	q.Set("lang", track.Language)
	q.Set("fmt", "vtt")
	if track.Kind == "asr" {
		q.Set("kind", "asr")
	} else if track.Name != "" {
		q.Set("name", track.Name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.timedTextURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext: unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxCaptionBytes))
}

// pickBestTrack prefers a manual track in the first matching language, then
// an auto-generated one, then any English track, then the first track.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	if len(tracks) == 0 {
		return captionTrack{}, false
	}

	matches := func(t captionTrack, lang string) bool {
		return lang != "" && (t.Language == lang || strings.HasPrefix(t.Language, lang+"-"))
	}

	for _, lang := range langs {
		for _, t := range tracks {
			if matches(t, lang) && t.Kind != "asr" {
				return t, true
			}
		}
	}
	for _, lang := range langs {
		for _, t := range tracks {
			if matches(t, lang) {
				return t, true
			}
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.Language, "en") {
			return t, true
		}
	}
	return tracks[0], true
}

// parseVTT flattens WebVTT cues into one line of text, dropping the
// repeated lines auto-generated captions carry between cues.
func parseVTT(data []byte) (string, error) {
	subs, err := astisub.ReadFromWebVTT(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse vtt: %w", err)
	}

	var sb strings.Builder
	last := ""
	for _, item := range subs.Items {
		for _, line := range item.Lines {
			var parts []string
			for _, li := range line.Items {
				if t := strings.TrimSpace(li.Text); t != "" {
					parts = append(parts, t)
				}
			}
			text := strings.Join(parts, " ")
			if text == "" || text == last {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(text)
			last = text
		}
	}
	return sb.String(), nil
}
