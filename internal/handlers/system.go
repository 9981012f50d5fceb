package handlers

import (
	"context"
	"net/http"
	"time"

	"commendai/internal/logger"
	"commendai/internal/models"
	"commendai/internal/storage"
)

const healthTimeout = 2 * time.Second

// SystemHandler serves the health, languages and config status endpoints.
type SystemHandler struct {
	storage storage.CommentStore
	status  models.ConfigStatusResponse
}

func NewSystemHandler(storage storage.CommentStore, status models.ConfigStatusResponse) *SystemHandler {
	return &SystemHandler{storage: storage, status: status}
}

// HealthCheck reports whether the database answers
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Failure 503 {object} models.HealthResponse
// @Router /health [get]
func (h *SystemHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		logger.FromContext(r.Context()).Warn("Health check failed", "error", err)
		writeJSON(w, r, http.StatusServiceUnavailable, models.HealthResponse{Status: "degraded", Database: "unavailable"})
		return
	}
	writeJSON(w, r, http.StatusOK, models.HealthResponse{Status: "ok", Database: "ok"})
}

// Languages lists the supported target languages and comment styles
// @Summary Supported languages and styles
// @Tags system
// @Produce json
// @Success 200 {object} models.LanguagesResponse
// @Router /languages [get]
func (h *SystemHandler) Languages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, r, http.StatusOK, models.LanguagesResponse{Languages: models.Languages, Styles: models.Styles})
}

// ConfigStatus reports which credentials are configured
// @Summary Configuration status
// @Description Booleans only, secrets are never returned
// @Tags system
// @Produce json
// @Success 200 {object} models.ConfigStatusResponse
// @Router /config-status [get]
func (h *SystemHandler) ConfigStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, r, http.StatusOK, h.status)
}
