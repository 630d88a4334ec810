package database

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"
)

//go:embed schema_sqlite.sql
var sqliteSchema string

type Repository struct {
	db *DB
	// now is swapped in tests
	now func() time.Time
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// CreateSchema creates necessary database tables
func (r *Repository) CreateSchema() error {
	// Split by semicolon to handle multiple statements
	for _, stmt := range strings.Split(sqliteSchema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := r.db.App.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w\nStatement: %s", err, stmt)
		}
	}
	return nil
}

// Ping checks the app database
func (r *Repository) Ping() error {
	return r.db.App.Ping()
}

// TableCounts returns row counts for the health endpoint
func (r *Repository) TableCounts() map[string]int64 {
	stats := make(map[string]int64)
	for _, table := range []string{"render_cache", "render_jobs", "render_logs"} {
		var count int64
		if err := r.db.App.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			// Table might not exist yet
			count = 0
		}
		stats[table] = count
	}
	return stats
}

// SaveRenderCache stores a rendering for ttlHours
func (r *Repository) SaveRenderCache(cacheKey, format, contentType string, body []byte, ttlHours int) error {
	now := r.now()
	expiresAt := now.Add(time.Duration(ttlHours) * time.Hour)
	_, err := r.db.App.Exec(
		"INSERT OR REPLACE INTO render_cache (cache_key, format, content_type, body, created_at, expires_at) VALUES (?, ?, ?, ?, ?, ?)",
		cacheKey, format, contentType, body, now, expiresAt,
	)
	return err
}

// GetRenderCache returns a live cache entry or sql.ErrNoRows
func (r *Repository) GetRenderCache(cacheKey string) (*CachedRender, error) {
	var c CachedRender
	err := r.db.App.QueryRow(
		"SELECT cache_key, format, content_type, body, created_at FROM render_cache WHERE cache_key = ? AND expires_at > ?",
		cacheKey, r.now(),
	).Scan(&c.CacheKey, &c.Format, &c.ContentType, &c.Body, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) CreateRenderJob(jobID, direction string) error {
	now := r.now()
	_, err := r.db.App.Exec(
		"INSERT INTO render_jobs (job_id, status, direction, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		jobID, JobPending, direction, now, now,
	)
	return err
}

func (r *Repository) UpdateRenderJob(jobID, status, errorMsg string, progress int) error {
	res, err := r.db.App.Exec(
		"UPDATE render_jobs SET status = ?, error_message = ?, progress = ?, updated_at = ? WHERE job_id = ?",
		status, errorMsg, progress, r.now(), jobID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// CompleteRenderJob stores the rendered page and final counts
func (r *Repository) CompleteRenderJob(jobID string, rendered, failed int, result []byte) error {
	res, err := r.db.App.Exec(
		"UPDATE render_jobs SET status = ?, progress = 100, charts_rendered = ?, charts_failed = ?, result = ?, updated_at = ? WHERE job_id = ?",
		JobCompleted, rendered, failed, result, r.now(), jobID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *Repository) GetRenderJobStatus(jobID string) (*JobStatus, error) {
	var job JobStatus
	var errorMsg sql.NullString
	err := r.db.App.QueryRow(
		"SELECT job_id, status, direction, progress, charts_rendered, charts_failed, error_message, created_at, updated_at FROM render_jobs WHERE job_id = ?",
		jobID,
	).Scan(&job.JobID, &job.Status, &job.Direction, &job.Progress, &job.ChartsRendered, &job.ChartsFailed, &errorMsg, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if errorMsg.Valid {
		job.ErrorMessage = errorMsg.String
	}
	return &job, nil
}

// GetRenderJobResult returns the rendered HTML of a job
func (r *Repository) GetRenderJobResult(jobID string) ([]byte, error) {
	var result []byte
	err := r.db.App.QueryRow("SELECT result FROM render_jobs WHERE job_id = ?", jobID).Scan(&result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Repository) LogRender(l RenderLog) error {
	_, err := r.db.App.Exec(
		"INSERT INTO render_logs (source, direction, charts_rendered, charts_failed, duration_ms, status, request_time) VALUES (?, ?, ?, ?, ?, ?, ?)",
		l.Source, l.Direction, l.ChartsRendered, l.ChartsFailed, l.DurationMs, l.Status, r.now(),
	)
	return err
}

func (r *Repository) GetRecentRenderLogs(limit int) ([]RenderLog, error) {
	rows, err := r.db.App.Query(
		"SELECT id, source, direction, charts_rendered, charts_failed, duration_ms, status, request_time FROM render_logs ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []RenderLog{}
	for rows.Next() {
		var l RenderLog
		if err := rows.Scan(&l.ID, &l.Source, &l.Direction, &l.ChartsRendered, &l.ChartsFailed, &l.DurationMs, &l.Status, &l.RequestTime); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// CleanupOldData removes expired cache rows, and jobs and logs older than
// the retention windows. Returns deleted row counts per table.
func (r *Repository) CleanupOldData(jobDays, logDays int) (map[string]int64, error) {
	now := r.now()
	deleted := make(map[string]int64)

	steps := []struct {
		table string
		query string
		arg   time.Time
	}{
		{"render_cache", "DELETE FROM render_cache WHERE expires_at <= ?", now},
		{"render_jobs", "DELETE FROM render_jobs WHERE created_at < ?", now.AddDate(0, 0, -jobDays)},
		{"render_logs", "DELETE FROM render_logs WHERE request_time < ?", now.AddDate(0, 0, -logDays)},
	}
	for _, s := range steps {
		res, err := r.db.App.Exec(s.query, s.arg)
		if err != nil {
			return deleted, fmt.Errorf("cleanup %s: %w", s.table, err)
		}
		n, _ := res.RowsAffected()
		deleted[s.table] = n
	}
	return deleted, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
