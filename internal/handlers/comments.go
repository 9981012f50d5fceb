//go:generate mockgen -source=comments.go -destination=mocks/comment_service_mock.go -package=mocks

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"commendai/internal/apperror"
	"commendai/internal/i18n"
	"commendai/internal/logger"
	"commendai/internal/models"
	"commendai/internal/service"
)

// CommentService is the pipeline behind the comment endpoints.
type CommentService interface {
	Generate(ctx context.Context, in service.GenerateInput) (*service.GenerateResult, error)
	Post(ctx context.Context, in service.PostInput) (*service.PostResult, error)
	History(ctx context.Context, q service.HistoryQuery) ([]models.HistoryItem, error)
}

const maxHistoryLimit = 500

type CommentHandler struct {
	service     CommentService
	messages    *i18n.Translator
	debugErrors bool
	defaultLang string
}

func NewCommentHandler(svc CommentService, messages *i18n.Translator, debugErrors bool, defaultLang string) *CommentHandler {
	return &CommentHandler{
		service:     svc,
		messages:    messages,
		debugErrors: debugErrors,
		defaultLang: defaultLang,
	}
}

func (h *CommentHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.generateComment(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CommentHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.postComment(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CommentHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listHistory(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// generateComment drafts a comment for a video
// @Summary Generate a comment
// @Description Gather the video context, draft a comment with the model and record it. When the video already has a posted comment the draft is still returned with status "warning" and can_post=false.
// @Tags comments
// @Accept json
// @Produce json
// @Param request body models.GenerateCommentRequest true "Video and generation options"
// @Success 200 {object} models.GenerateCommentResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /generate_comment [post]
func (h *CommentHandler) generateComment(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.generateComment"

	var req models.GenerateCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, h.lang(r, ""), apperror.New(apperror.Validation, op, err), false)
		return
	}
	lang := h.lang(r, req.InterfaceLanguage)

	if err := req.Validate(); err != nil {
		h.writeError(w, r, lang, apperror.New(apperror.Validation, op, err), false)
		return
	}
	language, _ := models.ParseLanguage(req.Language)
	style, _ := models.ParseStyle(req.CommentStyle)

	res, err := h.service.Generate(r.Context(), service.GenerateInput{
		VideoURL: req.VideoURL,
		Language: language,
		Style:    style,
		UserID:   userRef(w, r),
	})
	if err != nil {
		h.writeError(w, r, lang, err, false)
		return
	}

	response := models.GenerateCommentResponse{
		Status:        "success",
		GeneratedText: res.Text,
		CommentID:     res.CommentID,
		CanGenerate:   true,
		CanPost:       res.CanPost,
		Message:       h.messages.Localize(lang, i18n.MsgCommentGeneratedSuccess, i18n.Data{}),
	}
	if !res.CanPost {
		response.Status = "warning"
		response.CommentCount = res.PostedCount
		response.Message = h.messages.Localize(lang, i18n.MsgDuplicateWarning, i18n.Data{Count: int64(res.PostedCount)})
	}

	writeJSON(w, r, http.StatusOK, response)
}

// postComment posts a comment to YouTube
// @Summary Post a comment
// @Description Post the final comment text to the video unless the video already has a posted comment. A draft id, when given, is promoted to posted.
// @Tags comments
// @Accept json
// @Produce json
// @Param request body models.PostCommentRequest true "Comment to post"
// @Success 200 {object} models.PostCommentResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /post_comment [post]
func (h *CommentHandler) postComment(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.postComment"

	var req models.PostCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, h.lang(r, ""), apperror.New(apperror.Validation, op, err), true)
		return
	}
	lang := h.lang(r, req.InterfaceLanguage)

	if err := req.Validate(); err != nil {
		h.writeError(w, r, lang, apperror.New(apperror.Validation, op, err), true)
		return
	}

	res, err := h.service.Post(r.Context(), service.PostInput{
		VideoURL:  req.VideoURL,
		Text:      req.CommentText,
		CommentID: req.CommentID,
		UserID:    userRef(w, r),
	})
	if err != nil {
		h.writeError(w, r, lang, err, true)
		return
	}

	writeJSON(w, r, http.StatusOK, models.PostCommentResponse{
		Status:  "success",
		Message: h.messages.Localize(lang, i18n.MsgCommentPostedSuccess, i18n.Data{}),
		Data:    res.Payload,
	})
}

// listHistory returns comment records newest first
// @Summary Comment history
// @Description List generated and posted comments, newest first
// @Tags comments
// @Produce json
// @Param mine query boolean false "Only records of the calling user" default(false)
// @Param limit query int false "Maximum number of results" minimum(1) maximum(500)
// @Param offset query int false "Number of results to skip" default(0) minimum(0)
// @Success 200 {object} models.HistoryResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /history [get]
func (h *CommentHandler) listHistory(w http.ResponseWriter, r *http.Request) {
	q := service.HistoryQuery{}

	for param, values := range r.URL.Query() {
		if len(values) == 0 {
			continue
		}
		value := values[0]

		switch param {
		case "mine":
			switch value {
			case "true", "1":
				q.UserID = userRef(w, r)
			}
		case "limit":
			if limit, err := strconv.Atoi(value); err == nil && limit > 0 {
				q.Limit = min(limit, maxHistoryLimit)
			}
		case "offset":
			if offset, err := strconv.Atoi(value); err == nil && offset >= 0 {
				q.Offset = offset
			}
		}
	}

	items, err := h.service.History(r.Context(), q)
	if err != nil {
		h.writeError(w, r, h.lang(r, ""), err, false)
		return
	}

	writeJSON(w, r, http.StatusOK, models.HistoryResponse{Status: "success", History: items})
}

// lang picks the message language: the request field, then
// Accept-Language, then the configured default.
func (h *CommentHandler) lang(r *http.Request, requested string) string {
	if requested != "" {
		return i18n.Normalize(requested)
	}
	if matched := i18n.MatchAcceptLanguage(r.Header.Get("Accept-Language")); matched != "" {
		return matched
	}
	return i18n.Normalize(h.defaultLang)
}

var errEmptyBody = errors.New("request body is empty")

func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return errEmptyBody
	}
	return err
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("Failed to encode response", "error", err)
	}
}
