package youtube

import (
	"context"
	"errors"
	"net"
	"net/http"

	"commendai/internal/apperror"

	"google.golang.org/api/googleapi"
)

// direction tells classify whether the failed call read data or posted.
type direction int

const (
	reading direction = iota
	posting
)

var quotaReasons = map[string]bool{
	"quotaExceeded":            true,
	"dailyLimitExceeded":       true,
	"rateLimitExceeded":        true,
	"userRateLimitExceeded":    true,
	"commentRateLimitExceeded": true,
}

var notFoundReasons = map[string]bool{
	"videoNotFound":   true,
	"channelNotFound": true,
	"notFound":        true,
}

func reasons(gerr *googleapi.Error) []string {
	out := make([]string, 0, len(gerr.Errors))
	for _, item := range gerr.Errors {
		out = append(out, item.Reason)
	}
	return out
}

func hasReason(gerr *googleapi.Error, set map[string]bool) bool {
	for _, r := range reasons(gerr) {
		if set[r] {
			return true
		}
	}
	return false
}

// classify tags a YouTube API failure with an apperror kind.
func classify(op string, dir direction, err error) error {
	if err == nil {
		return nil
	}
	if apperror.KindOf(err) != apperror.Unclassified {
		return err
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		// Transport failures and timeouts
		return apperror.New(apperror.VideoPlatform, op, err)
	}

	switch {
	case gerr.Code == http.StatusNotFound || hasReason(gerr, notFoundReasons):
		return apperror.New(apperror.VideoNotFound, op, err)

	case gerr.Code == http.StatusTooManyRequests || hasReason(gerr, quotaReasons):
		if dir == posting {
			return apperror.New(apperror.PostQuotaExceeded, op, err)
		}
		return apperror.New(apperror.VideoPlatform, op, err)

	case gerr.Code == http.StatusForbidden || gerr.Code == http.StatusUnauthorized:
		if dir == posting {
			return apperror.New(apperror.PostPermissionDenied, op, err)
		}
		if gerr.Code == http.StatusForbidden {
			return apperror.New(apperror.VideoPrivate, op, err)
		}
		return apperror.New(apperror.VideoPlatform, op, err)
	}

	return apperror.New(apperror.VideoPlatform, op, err)
}

// isRetryable reports whether a failed read is worth repeating: transport
// level errors and 5xx responses. The caller's own deadline is final.
func isRetryable(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() != nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code >= 500
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary || dnsErr.IsTimeout
	}
	return false
}
