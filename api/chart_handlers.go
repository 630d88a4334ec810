package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"status-dashboard/charting"
)

// RenderSVG renders a single payload as SVG
func (h *Handler) RenderSVG(w http.ResponseWriter, r *http.Request) {
	h.renderChart(w, r, charting.FormatSVG)
}

// RenderPNG renders a single payload as PNG
func (h *Handler) RenderPNG(w http.ResponseWriter, r *http.Request) {
	h.renderChart(w, r, charting.FormatPNG)
}

func (h *Handler) renderChart(w http.ResponseWriter, r *http.Request, format charting.Format) {
	dir, err := h.direction(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	payload, err := readBody(w, r)
	if err != nil {
		respondBodyError(w, err, "failed to read request body")
		return
	}

	res, err := h.renderer.RenderChart(payload, dir, format)
	if err != nil {
		respondChartError(w, err)
		return
	}

	cache := "MISS"
	if res.Cached {
		cache = "HIT"
	}
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Body)))
	w.Header().Set("X-Cache", cache)
	w.WriteHeader(http.StatusOK)
	w.Write(res.Body)
}

// RenderScene returns the chart layout as JSON
func (h *Handler) RenderScene(w http.ResponseWriter, r *http.Request) {
	dir, err := h.direction(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	payload, err := readBody(w, r)
	if err != nil {
		respondBodyError(w, err, "failed to read request body")
		return
	}

	in, err := charting.ParseInput(payload)
	if err != nil {
		respondChartError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.renderer.Generator().GenerateScene(in, dir))
}

// respondChartError maps payload errors to 400 and the rest to 500
func respondChartError(w http.ResponseWriter, err error) {
	if errors.Is(err, charting.ErrInvalidPayload) ||
		errors.Is(err, charting.ErrMissingField) ||
		errors.Is(err, charting.ErrNegativeCount) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, fmt.Sprintf("render failed: %v", err))
}
