package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestChartCommand(t *testing.T) {
	out, _, err := run(t, `{"Missing":5,"Partial":10,"Complete":20,"Offline":0}`, "chart", "--dir", "rtl")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, `direction="rtl"`)
}

func TestChartCommandRejectsBadInput(t *testing.T) {
	_, _, err := run(t, `{"Missing":5}`, "chart")
	assert.Error(t, err)

	_, _, err = run(t, `{"Missing":5,"Partial":10,"Complete":20,"Offline":0}`, "chart", "--format", "gif")
	assert.Error(t, err)

	_, _, err = run(t, `{"Missing":5,"Partial":10,"Complete":20,"Offline":0}`, "chart", "--dir", "sideways")
	assert.Error(t, err)
}

func TestSampleThenRender(t *testing.T) {
	tmp := t.TempDir()
	pagePath := filepath.Join(tmp, "page.html")
	outPath := filepath.Join(tmp, "out.html")

	_, _, err := run(t, "", "sample", "--count", "3", "--seed", "7", "--dir", "rtl", "--out", pagePath)
	require.NoError(t, err)

	_, stderr, err := run(t, "", "render", "--in", pagePath, "--out", outPath, "--dir", "auto")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Rendered 3/3 charts (rtl)")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), `direction="rtl"`))
}

func TestRenderReportsFailures(t *testing.T) {
	page := `<html><body><div class="chart" data-chart="{}"></div></body></html>`
	out, stderr, err := run(t, page, "render")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Rendered 0/1 charts (ltr)")
	assert.Contains(t, stderr, "chart 0:")
	assert.NotContains(t, out, "<svg")
}

func TestSampleCommandRejectsNegativeCount(t *testing.T) {
	_, _, err := run(t, "", "sample", "--count", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")

	_, _, err = run(t, "", "sample", "--stations", "-3")
	assert.Error(t, err)
}
