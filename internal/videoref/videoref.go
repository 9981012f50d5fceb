// Package videoref turns user supplied YouTube links into canonical video
// references used as the duplicate-detection key.
package videoref

import (
	"regexp"
	"strings"
)

const canonicalPrefix = "https://www.youtube.com/watch?v="

// idEnd rejects ids followed by more id characters.
const idEnd = `(?:[^0-9A-Za-z_-]|$)`

// Matchers are tried in order; the first hit wins.
var matchers = []*regexp.Regexp{
	regexp.MustCompile(`[?&]v=([0-9A-Za-z_-]{11})` + idEnd),
	regexp.MustCompile(`/(?:v|shorts|live)/([0-9A-Za-z_-]{11})` + idEnd),
	regexp.MustCompile(`/embed/([0-9A-Za-z_-]{11})` + idEnd),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})` + idEnd),
}

// ExtractID returns the 11 character video id found in raw.
func ExtractID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, re := range matchers {
		if m := re.FindStringSubmatch(raw); len(m) == 2 {
			return m[1], true
		}
	}
	return "", false
}

// Canonical builds the watch URL for a video id.
func Canonical(id string) string {
	return canonicalPrefix + id
}

// Normalize returns the canonical watch URL for raw. When no id can be
// extracted raw is returned unchanged, so two malformed references only
// collide when they are textually identical.
func Normalize(raw string) string {
	if id, ok := ExtractID(raw); ok {
		return Canonical(id)
	}
	return raw
}
