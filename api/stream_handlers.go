package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"status-dashboard/charting"
)

// streamWorkers bounds concurrent renders per stream request
const streamWorkers = 5

// StreamResult represents a single line in NDJSON stream
type StreamResult struct {
	Index int    `json:"index"`
	SVG   string `json:"svg,omitempty"`
	Error string `json:"error,omitempty"`
}

// RenderStream renders a JSON array of payloads and streams one NDJSON
// line per chart as soon as it is ready. Lines arrive in completion order.
func (h *Handler) RenderStream(w http.ResponseWriter, r *http.Request) {
	dir, err := h.direction(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payloads []json.RawMessage
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&payloads); err != nil {
		respondBodyError(w, err, "request body must be a JSON array of chart payloads")
		return
	}
	if len(payloads) == 0 {
		respondError(w, http.StatusBadRequest, "at least one payload is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	numWorkers := streamWorkers
	if len(payloads) < numWorkers {
		numWorkers = len(payloads)
	}

	queue := make(chan int, len(payloads))
	results := make(chan StreamResult, len(payloads))
	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				res, err := h.renderer.RenderChart(payloads[idx], dir, charting.FormatSVG)
				if err != nil {
					results <- StreamResult{Index: idx, Error: err.Error()}
					continue
				}
				results <- StreamResult{Index: idx, SVG: string(res.Body)}
			}
		}()
	}

	go func() {
		for i := range payloads {
			queue <- i
		}
		close(queue)
		wg.Wait()
		close(results)
	}()

	encoder := json.NewEncoder(w)
	for res := range results {
		if err := encoder.Encode(res); err != nil {
			log.Printf("Stream encode error: %v", err)
			return // Client likely disconnected; results is buffered so workers still exit
		}
		flusher.Flush()
	}
}
