package charting

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an output image format
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat accepts "svg" (default) or "png"
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// Generator handles chart image creation
type Generator struct {
	Config RenderConfig
}

func NewGenerator() *Generator {
	return &Generator{Config: DefaultRenderConfig}
}

// Generate renders the chart in the requested format
func (g *Generator) Generate(in ChartInput, dir Direction, format Format) ([]byte, error) {
	if format == FormatPNG {
		return g.GeneratePNG(in, dir)
	}
	return g.GenerateSVG(in, dir)
}

// GenerateSVG creates the dashboard SVG markup
func (g *Generator) GenerateSVG(in ChartInput, dir Direction) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, g.Config.Layout(in, dir)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateScene returns the layout without drawing it
func (g *Generator) GenerateScene(in ChartInput, dir Direction) Scene {
	return g.Config.Layout(in, dir)
}

// GeneratePNG creates a raster rendition of the same buckets with go-chart.
// Bars follow the direction's screen order and the axis spans [0, total].
func (g *Generator) GeneratePNG(in ChartInput, dir Direction) ([]byte, error) {
	buckets := Fold(in)
	total := buckets.Total()

	var bars []chart.Value
	for _, b := range buckets.Ordered(dir) {
		color := drawing.ColorFromHex(strings.TrimPrefix(b.Color, "#"))
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s · %d", b.Label, b.Value),
			Value: float64(b.Value),
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: color,
				StrokeWidth: 1,
			},
		})
	}

	// go-chart rejects a zero-height range
	top := float64(total)
	if top < 1 {
		top = 1
	}

	graph := chart.BarChart{
		Title:  fmt.Sprintf("Total · %d", total),
		Width:  640,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		BarWidth:   100,
		BarSpacing: 40,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top},
			Ticks: []chart.Tick{
				{Value: 0, Label: FormatCount(0)},
				{Value: top, Label: FormatCount(total)},
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render png: %w", err)
	}
	return buffer.Bytes(), nil
}

// SaveChart renders the chart and writes it to outputDir/filename.
// Returns the written path.
func (g *Generator) SaveChart(in ChartInput, dir Direction, format Format, filename, outputDir string) (string, error) {
	data, err := g.Generate(in, dir, format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create dir: %w", err)
	}

	fullPath := filepath.Join(outputDir, filename)
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write chart: %w", err)
	}
	return fullPath, nil
}
