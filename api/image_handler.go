package api

import (
	"archive/zip"
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"status-dashboard/charting"
)

// ExportImages renders one payload as SVG and PNG and serves both in a zip
func (h *Handler) ExportImages(w http.ResponseWriter, r *http.Request) {
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

	files := []struct {
		name   string
		format charting.Format
	}{
		{"chart.svg", charting.FormatSVG},
		{"chart.png", charting.FormatPNG},
	}

	zipBuf := new(bytes.Buffer)
	zipWriter := zip.NewWriter(zipBuf)
	for _, f := range files {
		res, err := h.renderer.RenderChart(payload, dir, f.format)
		if err != nil {
			respondChartError(w, err)
			return
		}
		fw, err := zipWriter.Create(f.name)
		if err != nil {
			respondError(w, http.StatusInternalServerError, fmt.Sprintf("zip create failed: %v", err))
			return
		}
		if _, err := fw.Write(res.Body); err != nil {
			respondError(w, http.StatusInternalServerError, fmt.Sprintf("zip write failed: %v", err))
			return
		}
	}
	if err := zipWriter.Close(); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("zip close failed: %v", err))
		return
	}

	filename := fmt.Sprintf("chart_%s_%s.zip", dir, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Header().Set("Content-Length", strconv.Itoa(zipBuf.Len()))
	w.Write(zipBuf.Bytes())
}
