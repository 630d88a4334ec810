package database

import "time"

// Render job states
const (
	JobPending   = "pending"
	JobRunning   = "running"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// JobStatus is the tracked state of an async page render
type JobStatus struct {
	JobID          string    `json:"job_id"`
	Status         string    `json:"status"`
	Direction      string    `json:"direction"`
	Progress       int       `json:"progress"`
	ChartsRendered int       `json:"charts_rendered"`
	ChartsFailed   int       `json:"charts_failed"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CachedRender is a stored chart rendering
type CachedRender struct {
	CacheKey    string    `json:"cache_key"`
	Format      string    `json:"format"`
	ContentType string    `json:"content_type"`
	Body        []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// RenderLog records one page render
type RenderLog struct {
	ID             int64     `json:"id"`
	Source         string    `json:"source"` // "sync", "job:<id>", "cli"
	Direction      string    `json:"direction"`
	ChartsRendered int       `json:"charts_rendered"`
	ChartsFailed   int       `json:"charts_failed"`
	DurationMs     int64     `json:"duration_ms"`
	Status         string    `json:"status"`
	RequestTime    time.Time `json:"request_time"`
}
