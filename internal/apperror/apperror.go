// Package apperror defines the error kinds shared by the comment pipeline.
// Collaborators tag their failures with a Kind; the HTTP boundary maps the
// Kind to a status code and a localized message.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	Validation            Kind = "validation_error"
	VideoNotFound         Kind = "video_not_found"
	VideoPrivate          Kind = "video_private_or_restricted"
	VideoPlatform         Kind = "video_platform_generic"
	PostPermissionDenied  Kind = "post_permission_denied"
	PostQuotaExceeded     Kind = "post_quota_exceeded"
	ModelUnavailable      Kind = "model_unavailable"
	ModelQuotaExceeded    Kind = "model_quota_exceeded"
	ModelNetwork          Kind = "model_network_error"
	ModelGeneric          Kind = "model_generic"
	DuplicatePost         Kind = "duplicate_post_conflict"
	InvalidVideoReference Kind = "invalid_video_reference"
	Unclassified          Kind = "unclassified_system_error"
)

// Error is a classified failure. Op names the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with a kind. err may be nil.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf builds a classified error from a message.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or
// Unclassified when there is none.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unclassified
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps a kind onto a response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case Validation, InvalidVideoReference:
		return http.StatusBadRequest
	case VideoNotFound:
		return http.StatusNotFound
	case VideoPrivate, PostPermissionDenied:
		return http.StatusForbidden
	case DuplicatePost:
		return http.StatusConflict
	case ModelQuotaExceeded, PostQuotaExceeded:
		return http.StatusTooManyRequests
	case ModelUnavailable:
		return http.StatusServiceUnavailable
	case ModelNetwork:
		return http.StatusBadGateway
	case VideoPlatform, ModelGeneric:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Expected reports whether the kind is a normal user-facing outcome that
// should not be logged as an alarm.
func (k Kind) Expected() bool {
	switch k {
	case Validation, InvalidVideoReference, VideoNotFound, VideoPrivate, DuplicatePost:
		return true
	}
	return false
}

// Public returns the kind reported to callers. Poster-specific kinds fold
// into the video platform kind; the message still tells them apart.
func (k Kind) Public() Kind {
	switch k {
	case PostPermissionDenied, PostQuotaExceeded:
		return VideoPlatform
	}
	return k
}
