package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/api/health", h.HealthCheck).Methods("GET")

	// Single chart endpoints
	chartRouter := r.PathPrefix("/api/chart").Subrouter()
	chartRouter.HandleFunc("/svg", h.RenderSVG).Methods("POST")
	chartRouter.HandleFunc("/png", h.RenderPNG).Methods("POST")
	chartRouter.HandleFunc("/scene", h.RenderScene).Methods("POST")

	r.HandleFunc("/api/charts/stream", h.RenderStream).Methods("POST")
	r.HandleFunc("/api/export", h.ExportImages).Methods("POST")

	// Page endpoints
	pageRouter := r.PathPrefix("/api/page").Subrouter()
	pageRouter.HandleFunc("/render", h.RenderPage).Methods("POST")
	pageRouter.HandleFunc("/jobs", h.RequestPageRender).Methods("POST")
	pageRouter.HandleFunc("/jobs/{jobId}/status", h.GetJobStatus).Methods("GET")
	pageRouter.HandleFunc("/jobs/{jobId}/result", h.GetJobResult).Methods("GET")
	r.HandleFunc("/api/logs", h.GetRenderLogs).Methods("GET")

	// Config Management
	r.HandleFunc("/api/config", h.GetConfig).Methods("GET")
	r.HandleFunc("/api/config", h.UpdateConfig).Methods("PUT")

	r.Handle("/metrics", h.metrics).Methods("GET")

	return r
}

// CORSMiddleware adds CORS headers
func CORSMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return handlers.CORS(
			handlers.AllowedOrigins([]string{"*"}),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
			handlers.ExposedHeaders([]string{"X-Charts-Rendered", "X-Charts-Failed", "X-Cache"}),
		)(next)
	}
}

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap response writer to capture status code
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			log.Printf("%s %s %d %s", r.Method, r.RequestURI, wrapped.statusCode, time.Since(start))
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush implements http.Flusher
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
