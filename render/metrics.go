package render

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics provides Prometheus metrics for chart rendering.
type Metrics struct {
	chartsRendered *prometheus.CounterVec
	chartFailures  *prometheus.CounterVec
	cacheHits      prometheus.Counter
	pageDuration   prometheus.Histogram
}

// NewMetrics creates the collectors. Register the result on a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		chartsRendered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_charts_rendered_total",
				Help: "Total number of charts rendered by direction and format",
			},
			[]string{"direction", "format"},
		),
		chartFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_chart_failures_total",
				Help: "Total number of charts that could not be rendered by reason",
			},
			[]string{"reason"},
		),
		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "dashboard_cache_hits_total",
				Help: "Total number of chart renders served from the cache",
			},
		),
		pageDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dashboard_page_render_seconds",
				Help:    "Time spent rendering all charts of a page",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.chartsRendered.Describe(ch)
	m.chartFailures.Describe(ch)
	m.cacheHits.Describe(ch)
	m.pageDuration.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.chartsRendered.Collect(ch)
	m.chartFailures.Collect(ch)
	m.cacheHits.Collect(ch)
	m.pageDuration.Collect(ch)
}
