package charting

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestGeneratePNG(t *testing.T) {
	g := NewGenerator()

	for _, in := range []ChartInput{exampleInput, {}} {
		for _, dir := range []Direction{LTR, RTL} {
			img, err := g.GeneratePNG(in, dir)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(img, pngMagic), "%+v %s", in, dir)
		}
	}
}

func TestGenerateDispatchesOnFormat(t *testing.T) {
	g := NewGenerator()

	svg, err := g.Generate(exampleInput, LTR, FormatSVG)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(svg, []byte("<svg")))

	png, err := g.Generate(exampleInput, LTR, FormatPNG)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestSaveChart(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	g := NewGenerator()

	path, err := g.SaveChart(exampleInput, RTL, FormatSVG, "status.svg", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "status.svg"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `direction="rtl"`)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("PNG")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)
	assert.Equal(t, "image/png", f.ContentType())

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", f.ContentType())

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}
