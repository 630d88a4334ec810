package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"status-dashboard/charting"
	"status-dashboard/config"
	"status-dashboard/database"
	"status-dashboard/render"
)

// maxBodyBytes bounds request bodies (payloads and pages)
const maxBodyBytes = 8 << 20

// Handler holds dependencies for HTTP handlers
type Handler struct {
	repo     *database.Repository
	cfg      *config.Config
	renderer *render.Service
	metrics  http.Handler
}

// NewHandler creates a new handler instance. Metrics are served from gatherer.
func NewHandler(repo *database.Repository, cfg *config.Config, renderer *render.Service, gatherer prometheus.Gatherer) *Handler {
	return &Handler{
		repo:     repo,
		cfg:      cfg,
		renderer: renderer,
		metrics:  promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	}
}

// HealthCheck returns API health status
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Ping(); err != nil {
		respondError(w, http.StatusServiceUnavailable, "app database health check failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"stats":  h.repo.TableCounts(),
	})
}

// GetRenderLogs returns the most recent page renders
func (h *Handler) GetRenderLogs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	logs, err := h.repo.GetRecentRenderLogs(limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to get logs: %v", err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"logs":  logs,
		"count": len(logs),
	})
}

// direction reads ?dir=, falling back to the configured default
func (h *Handler) direction(r *http.Request) (charting.Direction, error) {
	s := r.URL.Query().Get("dir")
	if s == "" {
		return h.renderer.DefaultDirection(), nil
	}
	return charting.ParseDirection(s)
}

// readBody reads the whole request body, failing with *http.MaxBytesError
// past maxBodyBytes.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

// respondBodyError answers a body read or decode failure: 413 when the body
// was too large, 400 otherwise.
func respondBodyError(w http.ResponseWriter, err error, message string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return
	}
	respondError(w, http.StatusBadRequest, message)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// ConfigResponse is the public view of the configuration
type ConfigResponse struct {
	Display   config.DisplayConfig             `json:"display"`
	Scheduler config.SchedulerConfig           `json:"scheduler"`
	Retention config.RetentionConfig           `json:"retention"`
	Locales   map[string]config.LocaleSettings `json:"locales"`
	CacheTTL  int                              `json:"cache_ttl_hours"`
}

// GetConfig returns current configuration
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ConfigResponse{
		Display:   h.cfg.DisplaySettings(),
		Scheduler: h.cfg.Scheduler,
		Retention: h.cfg.Retention,
		Locales:   h.cfg.Locales.GetAll(),
		CacheTTL:  h.cfg.CacheTTLHours,
	})
}

// ConfigUpdateRequest represents the body for config updates
type ConfigUpdateRequest struct {
	Display struct {
		RTL *bool `json:"rtl"`
	} `json:"display"`
	Locales map[string]config.LocaleSettings `json:"locales,omitempty"`
}

// UpdateConfig updates configuration settings
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req ConfigUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Display.RTL != nil {
		if err := h.cfg.UpdateDisplaySettings(*req.Display.RTL); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to update display settings")
			return
		}
	}

	if len(req.Locales) > 0 {
		if err := h.cfg.Locales.Save(req.Locales); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to update locales")
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
