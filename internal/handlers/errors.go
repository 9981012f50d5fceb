package handlers

import (
	"errors"
	"net/http"

	"commendai/internal/apperror"
	"commendai/internal/i18n"
	"commendai/internal/logger"
	"commendai/internal/models"
	"commendai/internal/service"
)

// writeError renders err as an ErrorResponse. The message is localized;
// technical detail is only included when debug errors are enabled.
// posting selects the poster wording for video platform failures.
func (h *CommentHandler) writeError(w http.ResponseWriter, r *http.Request, lang string, err error, posting bool) {
	kind := apperror.KindOf(err)
	log := logger.FromContext(r.Context())

	switch {
	case kind.Expected():
		log.Info("Request rejected", "kind", kind, "error", err)
	case kind == apperror.Unclassified:
		log.Error("Request failed", "kind", kind, "error", err)
	default:
		log.Warn("Request failed", "kind", kind, "error", err)
	}

	data := i18n.Data{Error: string(kind.Public())}
	if h.debugErrors {
		data.Error = err.Error()
	}

	id := messageID(kind, err, posting)
	switch id {
	case i18n.MsgDuplicateError:
		data.Count = 1
		var dup *service.DuplicatePostError
		if errors.As(err, &dup) {
			data.Count = int64(dup.Count)
		}
	case i18n.MsgFormValidation:
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			data.Error = verr.Error()
		}
	}

	response := models.ErrorResponse{
		Status:  "error",
		Kind:    string(kind.Public()),
		Message: h.messages.Localize(lang, id, data),
	}
	if h.debugErrors {
		response.Detail = err.Error()
	}

	writeJSON(w, r, kind.HTTPStatus(), response)
}

func messageID(kind apperror.Kind, err error, posting bool) string {
	if posting {
		switch kind {
		case apperror.VideoNotFound, apperror.VideoPrivate:
			return i18n.MsgYouTubeNotFound
		case apperror.VideoPlatform:
			return i18n.MsgYouTubeGeneric
		}
	}

	switch kind {
	case apperror.Validation:
		return validationMessageID(err)
	case apperror.InvalidVideoReference:
		return i18n.MsgInvalidYouTubeURL
	case apperror.VideoNotFound:
		return i18n.MsgVideoNotFound
	case apperror.VideoPrivate:
		return i18n.MsgVideoPrivate
	case apperror.VideoPlatform:
		return i18n.MsgVideoGeneric
	case apperror.PostPermissionDenied:
		return i18n.MsgYouTubePermission
	case apperror.PostQuotaExceeded:
		return i18n.MsgYouTubeQuota
	case apperror.ModelUnavailable:
		return i18n.MsgAIAPIKey
	case apperror.ModelQuotaExceeded:
		return i18n.MsgAIQuota
	case apperror.ModelNetwork:
		return i18n.MsgAINetwork
	case apperror.ModelGeneric:
		return i18n.MsgAIGeneric
	case apperror.DuplicatePost:
		return i18n.MsgDuplicateError
	default:
		return i18n.MsgSystemError
	}
}

func validationMessageID(err error) string {
	if errors.Is(err, errEmptyBody) {
		return i18n.MsgNoDataSent
	}

	var verr *models.ValidationError
	if !errors.As(err, &verr) || !verr.Missing() {
		return i18n.MsgFormValidation
	}
	switch verr.Field {
	case "video_url":
		return i18n.MsgMissingVideoURL
	case "language":
		return i18n.MsgMissingLanguage
	case "comment_style":
		return i18n.MsgMissingCommentStyle
	case "comment_text", "text":
		return i18n.MsgMissingCommentData
	default:
		return i18n.MsgFormValidation
	}
}
