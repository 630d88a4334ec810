package database

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := Initialize(":memory:")
	require.NoError(t, err)
	t.Cleanup(db.Close)

	repo := NewRepository(db)
	require.NoError(t, repo.CreateSchema())
	return repo
}

func TestCreateSchemaIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.CreateSchema())

	counts := repo.TableCounts()
	assert.Equal(t, map[string]int64{"render_cache": 0, "render_jobs": 0, "render_logs": 0}, counts)
}

func TestRenderCache(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetRenderCache("k1")
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	require.NoError(t, repo.SaveRenderCache("k1", "svg", "image/svg+xml", []byte("<svg/>"), 1))
	cached, err := repo.GetRenderCache("k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("<svg/>"), cached.Body)
	assert.Equal(t, "image/svg+xml", cached.ContentType)

	// replace
	require.NoError(t, repo.SaveRenderCache("k1", "svg", "image/svg+xml", []byte("<svg></svg>"), 1))
	cached, err = repo.GetRenderCache("k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("<svg></svg>"), cached.Body)
}

func TestRenderCacheExpires(t *testing.T) {
	repo := newTestRepo(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return base }

	require.NoError(t, repo.SaveRenderCache("k1", "png", "image/png", []byte{1}, 2))

	repo.now = func() time.Time { return base.Add(time.Hour) }
	_, err := repo.GetRenderCache("k1")
	require.NoError(t, err)

	repo.now = func() time.Time { return base.Add(3 * time.Hour) }
	_, err = repo.GetRenderCache("k1")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestRenderJobLifecycle(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.CreateRenderJob("job-1", "rtl"))
	status, err := repo.GetRenderJobStatus("job-1")
	require.NoError(t, err)
	assert.Equal(t, JobPending, status.Status)
	assert.Equal(t, "rtl", status.Direction)

	require.NoError(t, repo.UpdateRenderJob("job-1", JobRunning, "", 10))
	status, err = repo.GetRenderJobStatus("job-1")
	require.NoError(t, err)
	assert.Equal(t, JobRunning, status.Status)
	assert.Equal(t, 10, status.Progress)

	require.NoError(t, repo.CompleteRenderJob("job-1", 3, 1, []byte("<html></html>")))
	status, err = repo.GetRenderJobStatus("job-1")
	require.NoError(t, err)
	assert.Equal(t, JobCompleted, status.Status)
	assert.Equal(t, 100, status.Progress)
	assert.Equal(t, 3, status.ChartsRendered)
	assert.Equal(t, 1, status.ChartsFailed)

	result, err := repo.GetRenderJobResult("job-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("<html></html>"), result)
}

func TestRenderJobUnknown(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetRenderJobStatus("nope")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.True(t, errors.Is(repo.UpdateRenderJob("nope", JobFailed, "x", 0), sql.ErrNoRows))
}

func TestRenderLogs(t *testing.T) {
	repo := newTestRepo(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.LogRender(RenderLog{Source: "sync", Direction: "ltr", ChartsRendered: i, Status: "ok"}))
	}
	logs, err := repo.GetRecentRenderLogs(2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, 2, logs[0].ChartsRendered, "newest first")
}

func TestCleanupOldData(t *testing.T) {
	repo := newTestRepo(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	repo.now = func() time.Time { return base }
	require.NoError(t, repo.SaveRenderCache("old", "svg", "image/svg+xml", []byte("a"), 1))
	require.NoError(t, repo.CreateRenderJob("old-job", "ltr"))
	require.NoError(t, repo.LogRender(RenderLog{Source: "sync", Direction: "ltr", Status: "ok"}))

	repo.now = func() time.Time { return base.AddDate(0, 0, 10) }
	require.NoError(t, repo.SaveRenderCache("fresh", "svg", "image/svg+xml", []byte("b"), 1))
	require.NoError(t, repo.CreateRenderJob("new-job", "ltr"))

	deleted, err := repo.CleanupOldData(7, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted["render_cache"])
	assert.Equal(t, int64(1), deleted["render_jobs"])
	assert.Equal(t, int64(0), deleted["render_logs"])

	_, err = repo.GetRenderJobStatus("new-job")
	assert.NoError(t, err)
	_, err = repo.GetRenderCache("fresh")
	assert.NoError(t, err)
}
