// Package render ties chart rendering to the render cache, the worker pool
// and metrics.
package render

import (
	"bytes"
	"crypto/md5"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"status-dashboard/charting"
	"status-dashboard/config"
	"status-dashboard/dashboard"
	"status-dashboard/database"
	"status-dashboard/jobs"
)

// ErrJobNotFinished is returned when a job result is requested too early
var ErrJobNotFinished = errors.New("job is not completed yet")

// Result is a rendered chart
type Result struct {
	Body        []byte
	ContentType string
	Cached      bool
}

// Service renders charts and pages
type Service struct {
	repo    *database.Repository
	cfg     *config.Config
	pool    *jobs.WorkerPool
	gen     *charting.Generator
	metrics *Metrics
}

func NewService(repo *database.Repository, cfg *config.Config, pool *jobs.WorkerPool, metrics *Metrics) *Service {
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Service{
		repo:    repo,
		cfg:     cfg,
		pool:    pool,
		gen:     charting.NewGenerator(),
		metrics: metrics,
	}
}

// Generator exposes the underlying chart generator
func (s *Service) Generator() *charting.Generator {
	return s.gen
}

// RenderChart parses a payload and renders it, going through the cache.
func (s *Service) RenderChart(payload []byte, dir charting.Direction, format charting.Format) (*Result, error) {
	in, err := charting.ParseInput(payload)
	if err != nil {
		s.metrics.chartFailures.WithLabelValues(failureReason(err)).Inc()
		return nil, err
	}
	return s.RenderInput(in, dir, format)
}

// RenderInput renders an already decoded input, going through the cache.
func (s *Service) RenderInput(in charting.ChartInput, dir charting.Direction, format charting.Format) (*Result, error) {
	if err := in.Validate(); err != nil {
		s.metrics.chartFailures.WithLabelValues(failureReason(err)).Inc()
		return nil, err
	}
	cacheKey := generateCacheKey(in, dir, format)

	if cached, err := s.repo.GetRenderCache(cacheKey); err == nil {
		s.metrics.cacheHits.Inc()
		return &Result{Body: cached.Body, ContentType: cached.ContentType, Cached: true}, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		log.Printf("Render cache lookup failed: %v", err)
	}

	body, err := s.gen.Generate(in, dir, format)
	if err != nil {
		s.metrics.chartFailures.WithLabelValues("render").Inc()
		return nil, err
	}
	s.metrics.chartsRendered.WithLabelValues(dir.String(), string(format)).Inc()

	if err := s.repo.SaveRenderCache(cacheKey, string(format), format.ContentType(), body, s.cfg.CacheTTLHours); err != nil {
		// Rendering still succeeded
		log.Printf("Failed to cache render %s: %v", cacheKey, err)
	}

	return &Result{Body: body, ContentType: format.ContentType()}, nil
}

// PageOptions builds page driver options from the display settings
func (s *Service) PageOptions(dir charting.Direction, auto bool) dashboard.Options {
	display := s.cfg.DisplaySettings()
	return dashboard.Options{
		Direction:     dir,
		AutoDirection: auto,
		MarkerClass:   display.MarkerClass,
		DataAttribute: display.DataAttribute,
	}
}

// DefaultDirection is the configured direction for requests that don't
// carry one
func (s *Service) DefaultDirection() charting.Direction {
	if s.cfg.DisplaySettings().RTL {
		return charting.RTL
	}
	return charting.LTR
}

// RenderPage renders every chart container of an HTML page synchronously.
func (s *Service) RenderPage(page []byte, opts dashboard.Options, source string) ([]byte, dashboard.Report, error) {
	start := time.Now()

	var out bytes.Buffer
	report, err := dashboard.RenderPage(bytes.NewReader(page), &out, opts)
	duration := time.Since(start)
	s.metrics.pageDuration.Observe(duration.Seconds())

	status := "success"
	if err != nil {
		status = "error"
	}
	s.recordReport(report)

	if logErr := s.repo.LogRender(database.RenderLog{
		Source:         source,
		Direction:      report.Direction.String(),
		ChartsRendered: report.Rendered,
		ChartsFailed:   len(report.Failures),
		DurationMs:     duration.Milliseconds(),
		Status:         status,
	}); logErr != nil {
		log.Printf("Failed to log render: %v", logErr)
	}

	if err != nil {
		return nil, report, err
	}
	return out.Bytes(), report, nil
}

// RequestPageRender creates an async page render job and returns its id
func (s *Service) RequestPageRender(page []byte, opts dashboard.Options) (string, error) {
	jobID := uuid.New().String()
	if err := s.repo.CreateRenderJob(jobID, opts.Direction.String()); err != nil {
		return "", fmt.Errorf("failed to create job: %w", err)
	}

	err := s.pool.Submit(jobs.Job{
		ID: jobID,
		Execute: func() error {
			return s.executePageRender(jobID, page, opts)
		},
	})
	if err != nil {
		s.markFailed(jobID, err, 0)
		return "", fmt.Errorf("failed to submit job: %w", err)
	}

	return jobID, nil
}

// executePageRender runs a page render job (called by worker)
func (s *Service) executePageRender(jobID string, page []byte, opts dashboard.Options) error {
	if err := s.repo.UpdateRenderJob(jobID, database.JobRunning, "", 10); err != nil {
		return err
	}

	out, report, err := s.RenderPage(page, opts, "job:"+jobID)
	if err != nil {
		s.markFailed(jobID, err, 10)
		return err
	}

	if err := s.repo.CompleteRenderJob(jobID, report.Rendered, len(report.Failures), out); err != nil {
		return fmt.Errorf("failed to store job result: %w", err)
	}
	log.Printf("Job %s: rendered %d charts, %d failed", jobID, report.Rendered, len(report.Failures))
	return nil
}

// markFailed records a job failure; a failed update is only logged
func (s *Service) markFailed(jobID string, cause error, progress int) {
	if err := s.repo.UpdateRenderJob(jobID, database.JobFailed, cause.Error(), progress); err != nil {
		log.Printf("Job %s: failed to mark as failed (%v): %v", jobID, cause, err)
	}
}

// JobStatus returns the status of a page render job
func (s *Service) JobStatus(jobID string) (*database.JobStatus, error) {
	return s.repo.GetRenderJobStatus(jobID)
}

// JobResult returns the rendered page of a completed job
func (s *Service) JobResult(jobID string) ([]byte, error) {
	status, err := s.repo.GetRenderJobStatus(jobID)
	if err != nil {
		return nil, err
	}
	if status.Status != database.JobCompleted {
		return nil, ErrJobNotFinished
	}
	return s.repo.GetRenderJobResult(jobID)
}

func (s *Service) recordReport(report dashboard.Report) {
	if report.Rendered > 0 {
		s.metrics.chartsRendered.WithLabelValues(report.Direction.String(), string(charting.FormatSVG)).Add(float64(report.Rendered))
	}
	for _, f := range report.Failures {
		s.metrics.chartFailures.WithLabelValues(failureReason(f.Err)).Inc()
	}
}

// failureReason maps an error to a low-cardinality metric label
func failureReason(err error) string {
	switch {
	case errors.Is(err, charting.ErrMissingField):
		return "missing_field"
	case errors.Is(err, charting.ErrNegativeCount):
		return "negative_count"
	case errors.Is(err, charting.ErrCountOverflow):
		return "count_overflow"
	case errors.Is(err, charting.ErrInvalidPayload):
		return "invalid_payload"
	default:
		return "render"
	}
}

// generateCacheKey hashes the normalized input with direction and format
func generateCacheKey(in charting.ChartInput, dir charting.Direction, format charting.Format) string {
	// Conflict draws as Missing
	in.Missing += in.Conflict
	in.Conflict = 0
	data, _ := json.Marshal(struct {
		Input     charting.ChartInput `json:"input"`
		Direction string              `json:"direction"`
		Format    string              `json:"format"`
	}{in, dir.String(), string(format)})
	return fmt.Sprintf("%x", md5.Sum(data))
}
