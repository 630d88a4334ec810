package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"status-dashboard/charting"
	"status-dashboard/dashboard"
	"status-dashboard/render"
)

// pageOptions resolves the direction of a page render. Precedence:
// ?dir=ltr|rtl|auto, then ?locale= from the locale table, then the default.
func (h *Handler) pageOptions(r *http.Request) (dashboard.Options, error) {
	q := r.URL.Query()

	switch dir := q.Get("dir"); dir {
	case "auto":
		return h.renderer.PageOptions(h.renderer.DefaultDirection(), true), nil
	case "":
	default:
		d, err := charting.ParseDirection(dir)
		if err != nil {
			return dashboard.Options{}, err
		}
		return h.renderer.PageOptions(d, false), nil
	}

	if locale := q.Get("locale"); locale != "" {
		settings, ok := h.cfg.Locales.Get(locale)
		if !ok {
			return dashboard.Options{}, fmt.Errorf("unknown locale %q", locale)
		}
		d := charting.LTR
		if settings.RTL {
			d = charting.RTL
		}
		return h.renderer.PageOptions(d, false), nil
	}

	return h.renderer.PageOptions(h.renderer.DefaultDirection(), false), nil
}

// RenderPage renders every chart container of the posted HTML page
func (h *Handler) RenderPage(w http.ResponseWriter, r *http.Request) {
	opts, err := h.pageOptions(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := readBody(w, r)
	if err != nil {
		respondBodyError(w, err, "failed to read request body")
		return
	}

	out, report, err := h.renderer.RenderPage(page, opts, "sync")
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("page render failed: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Charts-Rendered", strconv.Itoa(report.Rendered))
	w.Header().Set("X-Charts-Failed", strconv.Itoa(len(report.Failures)))
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// RequestPageRender creates an async page render job
func (h *Handler) RequestPageRender(w http.ResponseWriter, r *http.Request) {
	opts, err := h.pageOptions(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := readBody(w, r)
	if err != nil {
		respondBodyError(w, err, "failed to read request body")
		return
	}
	if len(page) == 0 {
		respondError(w, http.StatusBadRequest, "page body is required")
		return
	}

	jobID, err := h.renderer.RequestPageRender(page, opts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to create render job: %v", err))
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id": jobID,
		"status": "pending",
	})
}

// GetJobStatus returns the status of a render job
func (h *Handler) GetJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]

	status, err := h.renderer.JobStatus(jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "job not found")
		} else {
			respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to get job status: %v", err))
		}
		return
	}

	respondJSON(w, http.StatusOK, status)
}

// GetJobResult returns the rendered page of a completed job
func (h *Handler) GetJobResult(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]

	result, err := h.renderer.JobResult(jobID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		respondError(w, http.StatusNotFound, "job not found")
		return
	case errors.Is(err, render.ErrJobNotFinished):
		respondError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to get results: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(result)
}
