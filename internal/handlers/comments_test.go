package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"commendai/internal/apperror"
	"commendai/internal/handlers/mocks"
	"commendai/internal/i18n"
	"commendai/internal/models"
	"commendai/internal/service"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVideoURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func newTestHandler(t *testing.T, debug bool) (*CommentHandler, *mocks.MockCommentService) {
	t.Helper()
	ctrl := gomock.NewController(t)

	messages, err := i18n.New()
	require.NoError(t, err)

	svc := mocks.NewMockCommentService(ctrl)
	return NewCommentHandler(svc, messages, debug, "en"), svc
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestNewCommentHandler(t *testing.T) {
	handler, svc := newTestHandler(t, false)

	assert.NotNil(t, handler)
	assert.Equal(t, svc, handler.service)
}

func TestCommentHandler_Generate(t *testing.T) {
	handler, svc := newTestHandler(t, false)

	svc.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, in service.GenerateInput) (*service.GenerateResult, error) {
			assert.Equal(t, testVideoURL, in.VideoURL)
			assert.Equal(t, models.Japanese, in.Language)
			assert.Equal(t, models.StyleFunny, in.Style)
			assert.Equal(t, "user-42", in.UserID)
			return &service.GenerateResult{Text: "面白い！", CommentID: "draft-1", CanPost: true}, nil
		}).
		Times(1)

	req := jsonRequest(t, http.MethodPost, "/api/generate_comment", models.GenerateCommentRequest{
		VideoURL:     testVideoURL,
		Language:     "japanese",
		CommentStyle: "Funny",
	})
	req.Header.Set("X-User-ID", "user-42")
	w := httptest.NewRecorder()

	handler.HandleGenerate(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp models.GenerateCommentResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "面白い！", resp.GeneratedText)
	assert.Equal(t, "draft-1", resp.CommentID)
	assert.True(t, resp.CanGenerate)
	assert.True(t, resp.CanPost)
	assert.Equal(t, 0, resp.CommentCount)
	assert.Contains(t, resp.Message, "Comment generated successfully")
}

func TestCommentHandler_Generate_AlreadyPosted(t *testing.T) {
	handler, svc := newTestHandler(t, false)

	svc.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return(&service.GenerateResult{Text: "text", CommentID: "draft-2", PostedCount: 3, CanPost: false}, nil)

	req := jsonRequest(t, http.MethodPost, "/api/generate_comment", models.GenerateCommentRequest{
		VideoURL:          testVideoURL,
		Language:          "Turkish",
		CommentStyle:      "default",
		InterfaceLanguage: "tr",
	})
	w := httptest.NewRecorder()

	handler.HandleGenerate(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.GenerateCommentResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "warning", resp.Status)
	assert.Equal(t, 3, resp.CommentCount)
	assert.True(t, resp.CanGenerate)
	assert.False(t, resp.CanPost)
	assert.Equal(t, "draft-2", resp.CommentID)
	assert.Contains(t, resp.Message, "toplam 3 kez")
}

func TestCommentHandler_Generate_SetsUserCookie(t *testing.T) {
	handler, svc := newTestHandler(t, false)

	var userID string
	svc.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, in service.GenerateInput) (*service.GenerateResult, error) {
			userID = in.UserID
			return &service.GenerateResult{Text: "t", CommentID: "d", CanPost: true}, nil
		})

	req := jsonRequest(t, http.MethodPost, "/api/generate_comment", models.GenerateCommentRequest{
		VideoURL: testVideoURL, Language: "English", CommentStyle: "default",
	})
	w := httptest.NewRecorder()

	handler.HandleGenerate(w, req)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, userCookie, cookies[0].Name)
	assert.Equal(t, userID, cookies[0].Value)
	assert.NotEmpty(t, userID)
}

func TestCommentHandler_Generate_Validation(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{
			name:        "empty body",
			body:        "",
			wantMessage: "No data sent",
		},
		{
			name:        "invalid json",
			body:        "{not json",
			wantMessage: "Form data invalid",
		},
		{
			name:        "missing url",
			body:        `{"language":"English","comment_style":"default"}`,
			wantMessage: "YouTube video URL is required",
		},
		{
			name:        "missing language",
			body:        `{"video_url":"https://youtu.be/dQw4w9WgXcQ","comment_style":"default"}`,
			wantMessage: "Language selection required",
		},
		{
			name:        "unsupported language",
			body:        `{"video_url":"https://youtu.be/dQw4w9WgXcQ","language":"Klingon","comment_style":"default"}`,
			wantMessage: "language: unsupported language",
		},
		{
			name:        "missing style",
			body:        `{"video_url":"https://youtu.be/dQw4w9WgXcQ","language":"English"}`,
			wantMessage: "Comment style required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestHandler(t, false)

			req := httptest.NewRequest(http.MethodPost, "/api/generate_comment", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.HandleGenerate(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, string(apperror.Validation), resp.Kind)
			assert.Contains(t, resp.Message, tt.wantMessage)
			assert.Empty(t, resp.Detail)
		})
	}
}

func TestCommentHandler_Generate_ServiceErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantKind    apperror.Kind
		wantMessage string
	}{
		{
			name:        "invalid reference",
			err:         apperror.Newf(apperror.InvalidVideoReference, "service.Generate", "no id"),
			wantStatus:  http.StatusBadRequest,
			wantKind:    apperror.InvalidVideoReference,
			wantMessage: "Invalid YouTube URL",
		},
		{
			name:        "video not found",
			err:         apperror.Newf(apperror.VideoNotFound, "youtube.FetchVideo", "no items"),
			wantStatus:  http.StatusNotFound,
			wantKind:    apperror.VideoNotFound,
			wantMessage: "Video not found",
		},
		{
			name:        "video private",
			err:         apperror.Newf(apperror.VideoPrivate, "youtube.FetchVideo", "private"),
			wantStatus:  http.StatusForbidden,
			wantKind:    apperror.VideoPrivate,
			wantMessage: "private or has restricted access",
		},
		{
			name:        "model key",
			err:         apperror.Newf(apperror.ModelUnavailable, "llm.Generate", "401"),
			wantStatus:  http.StatusServiceUnavailable,
			wantKind:    apperror.ModelUnavailable,
			wantMessage: "Problem with AI service connection",
		},
		{
			name:        "model quota",
			err:         apperror.Newf(apperror.ModelQuotaExceeded, "llm.Generate", "429"),
			wantStatus:  http.StatusTooManyRequests,
			wantKind:    apperror.ModelQuotaExceeded,
			wantMessage: "AI service limit exceeded",
		},
		{
			name:        "model network",
			err:         apperror.Newf(apperror.ModelNetwork, "llm.Generate", "timeout"),
			wantStatus:  http.StatusBadGateway,
			wantKind:    apperror.ModelNetwork,
			wantMessage: "Internet connection problem",
		},
		{
			name:        "unclassified",
			err:         errors.New("database is locked"),
			wantStatus:  http.StatusInternalServerError,
			wantKind:    apperror.Unclassified,
			wantMessage: "Technical detail: unclassified_system_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, svc := newTestHandler(t, false)
			svc.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			req := jsonRequest(t, http.MethodPost, "/api/generate_comment", models.GenerateCommentRequest{
				VideoURL: testVideoURL, Language: "English", CommentStyle: "default",
			})
			w := httptest.NewRecorder()

			handler.HandleGenerate(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, string(tt.wantKind), resp.Kind)
			assert.Contains(t, resp.Message, tt.wantMessage)
			assert.NotContains(t, resp.Message, "database is locked")
		})
	}
}

func TestCommentHandler_DebugDetail(t *testing.T) {
	handler, svc := newTestHandler(t, true)
	svc.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(nil, errors.New("database is locked"))

	req := jsonRequest(t, http.MethodPost, "/api/generate_comment", models.GenerateCommentRequest{
		VideoURL: testVideoURL, Language: "English", CommentStyle: "default",
	})
	w := httptest.NewRecorder()

	handler.HandleGenerate(w, req)

	resp := decodeError(t, w)
	assert.Equal(t, "database is locked", resp.Detail)
}

func TestCommentHandler_Post(t *testing.T) {
	handler, svc := newTestHandler(t, false)
	payload := json.RawMessage(`{"kind":"youtube#commentThread","id":"Ugx1"}`)

	svc.EXPECT().
		Post(gomock.Any(), service.PostInput{
			VideoURL:  "https://youtu.be/dQw4w9WgXcQ",
			Text:      "Nice",
			CommentID: "draft-1",
			UserID:    "user-42",
		}).
		Return(&service.PostResult{CommentID: "draft-1", Payload: payload}, nil)

	req := jsonRequest(t, http.MethodPost, "/api/post_comment", models.PostCommentRequest{
		VideoURL:          "https://youtu.be/dQw4w9WgXcQ",
		CommentText:       "Nice",
		CommentID:         "draft-1",
		InterfaceLanguage: "ru",
	})
	req.Header.Set("X-User-ID", "user-42")
	w := httptest.NewRecorder()

	handler.HandlePost(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.PostCommentResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "✅ Комментарий успешно отправлен!", resp.Message)
	assert.JSONEq(t, string(payload), string(resp.Data))
}

func TestCommentHandler_Post_Errors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantKind    apperror.Kind
		wantMessage string
	}{
		{
			name:        "duplicate",
			err:         apperror.New(apperror.DuplicatePost, "service.Post", &service.DuplicatePostError{Count: 2}),
			wantStatus:  http.StatusConflict,
			wantKind:    apperror.DuplicatePost,
			wantMessage: "A total of 2 comments have been posted",
		},
		{
			name:        "invalid reference",
			err:         apperror.Newf(apperror.InvalidVideoReference, "service.Post", "no id"),
			wantStatus:  http.StatusBadRequest,
			wantKind:    apperror.InvalidVideoReference,
			wantMessage: "Invalid YouTube URL",
		},
		{
			name:        "permission",
			err:         apperror.Newf(apperror.PostPermissionDenied, "youtube.PostComment", "forbidden"),
			wantStatus:  http.StatusForbidden,
			wantKind:    apperror.VideoPlatform,
			wantMessage: "don't have permission to post comments",
		},
		{
			name:        "quota",
			err:         apperror.Newf(apperror.PostQuotaExceeded, "youtube.PostComment", "quotaExceeded"),
			wantStatus:  http.StatusTooManyRequests,
			wantKind:    apperror.VideoPlatform,
			wantMessage: "API limit exceeded",
		},
		{
			name:        "not found while posting",
			err:         apperror.Newf(apperror.VideoNotFound, "youtube.PostComment", "videoNotFound"),
			wantStatus:  http.StatusNotFound,
			wantKind:    apperror.VideoNotFound,
			wantMessage: "Video not found or inaccessible",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, svc := newTestHandler(t, false)
			svc.EXPECT().Post(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			req := jsonRequest(t, http.MethodPost, "/api/post_comment", models.PostCommentRequest{
				VideoURL: testVideoURL, CommentText: "Nice",
			})
			w := httptest.NewRecorder()

			handler.HandlePost(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, string(tt.wantKind), resp.Kind)
			assert.Contains(t, resp.Message, tt.wantMessage)
		})
	}
}

func TestCommentHandler_Post_MissingText(t *testing.T) {
	handler, _ := newTestHandler(t, false)

	req := jsonRequest(t, http.MethodPost, "/api/post_comment", models.PostCommentRequest{VideoURL: testVideoURL})
	req.Header.Set("Accept-Language", "tr-TR,tr;q=0.9")
	w := httptest.NewRecorder()

	handler.HandlePost(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Contains(t, resp.Message, "Video URL'si ve yorum metni gerekli")
}

func TestCommentHandler_History(t *testing.T) {
	posted := time.Date(2025, 1, 15, 11, 5, 0, 0, time.UTC)

	tests := []struct {
		name      string
		query     string
		wantQuery service.HistoryQuery
	}{
		{name: "all records", query: "", wantQuery: service.HistoryQuery{}},
		{name: "mine", query: "?mine=true", wantQuery: service.HistoryQuery{UserID: "user-42"}},
		{name: "paging", query: "?limit=10&offset=20", wantQuery: service.HistoryQuery{Limit: 10, Offset: 20}},
		{name: "limit capped", query: "?limit=100000", wantQuery: service.HistoryQuery{Limit: maxHistoryLimit}},
		{name: "bad values ignored", query: "?limit=-1&offset=abc&mine=no", wantQuery: service.HistoryQuery{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, svc := newTestHandler(t, false)
			svc.EXPECT().
				History(gomock.Any(), tt.wantQuery).
				Return([]models.HistoryItem{
					{ID: "b", Text: "second", VideoURL: testVideoURL, PostedAt: &posted, IsPosted: true},
					{ID: "a", Text: "first", VideoURL: testVideoURL},
				}, nil)

			req := httptest.NewRequest(http.MethodGet, "/api/history"+tt.query, nil)
			req.Header.Set("X-User-ID", "user-42")
			w := httptest.NewRecorder()

			handler.HandleHistory(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			var resp models.HistoryResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, "success", resp.Status)
			require.Len(t, resp.History, 2)
			assert.True(t, resp.History[0].IsPosted)
			assert.False(t, resp.History[1].IsPosted)
		})
	}
}

func TestCommentHandler_MethodNotAllowed(t *testing.T) {
	handler, _ := newTestHandler(t, false)

	tests := []struct {
		method  string
		target  string
		handler http.HandlerFunc
	}{
		{http.MethodGet, "/api/generate_comment", handler.HandleGenerate},
		{http.MethodDelete, "/api/post_comment", handler.HandlePost},
		{http.MethodPost, "/api/history", handler.HandleHistory},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.handler(w, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		})
	}
}
