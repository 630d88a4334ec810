package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"math/rand"

	"status-dashboard/charting"
)

// SampleConfig shapes a generated demo page
type SampleConfig struct {
	Charts       int
	Stations     int // reporting stations per chart
	ConflictRate float64
	Seed         int64
	Direction    charting.Direction
}

// DefaultSampleConfig is a small four-chart page
func DefaultSampleConfig() SampleConfig {
	return SampleConfig{Charts: 4, Stations: 120, ConflictRate: 0.05, Seed: 1}
}

var sampleTemplate = template.Must(template.New("sample").Parse(`<!DOCTYPE html>
<html dir="{{.Dir}}">
<head><meta charset="utf-8"><title>Checklist dashboard</title></head>
<body>
<div class="row">
{{- range .Cards}}
<div class="card">
<h5 class="card-title">{{.Title}}</h5>
<div class="chart" data-chart="{{.Payload}}"></div>
</div>
{{- end}}
</div>
</body>
</html>
`))

// Validate rejects configurations that cannot describe a page
func (c SampleConfig) Validate() error {
	if c.Charts < 0 {
		return fmt.Errorf("chart count must not be negative, got %d", c.Charts)
	}
	if c.Stations < 0 {
		return fmt.Errorf("station count must not be negative, got %d", c.Stations)
	}
	if c.ConflictRate < 0 || c.ConflictRate > 1 {
		return fmt.Errorf("conflict rate must be within [0, 1], got %v", c.ConflictRate)
	}
	return nil
}

type sampleCard struct {
	Title   string
	Payload string
}

// SampleInputs draws chart inputs whose buckets add up to Stations.
// The same seed always yields the same inputs.
func SampleInputs(cfg SampleConfig) []charting.ChartInput {
	rng := rand.New(rand.NewSource(cfg.Seed))
	inputs := make([]charting.ChartInput, 0, max(cfg.Charts, 0))

	for i := 0; i < cfg.Charts; i++ {
		var in charting.ChartInput
		for s := 0; s < cfg.Stations; s++ {
			// Completion improves for later checklists on the page
			p := rng.Float64() + float64(i)*0.1
			switch {
			case p < 0.15:
				in.Offline++
			case p < 0.35:
				if rng.Float64() < cfg.ConflictRate*4 {
					in.Conflict++
				} else {
					in.Missing++
				}
			case p < 0.55:
				in.Partial++
			default:
				in.Complete++
			}
		}
		inputs = append(inputs, in)
	}
	return inputs
}

// SamplePage renders a demo dashboard page with one container per input
func SamplePage(cfg SampleConfig) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var cards []sampleCard
	for i, in := range SampleInputs(cfg) {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		cards = append(cards, sampleCard{
			Title:   fmt.Sprintf("Checklist %d", i+1),
			Payload: string(payload),
		})
	}

	var buf bytes.Buffer
	err := sampleTemplate.Execute(&buf, struct {
		Dir   string
		Cards []sampleCard
	}{Dir: cfg.Direction.String(), Cards: cards})
	if err != nil {
		return nil, fmt.Errorf("failed to render sample page: %w", err)
	}
	return buf.Bytes(), nil
}
