package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels
const (
	OutcomeSuccess    = "success"
	OutcomeFailure    = "failure"
	OutcomeMasked     = "masked"
	OutcomeSkipped    = "skipped"
	OutcomeCommitted  = "committed"
	OutcomeSuperseded = "superseded"
)

// Metrics holds the collectors for record ingestion.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	fetchSteps   *prometheus.CounterVec
	fetchResults prometheus.Histogram
	decodes      *prometheus.CounterVec
	refreshes    *prometheus.CounterVec
}

// New registers the collectors on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		fetchSteps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "records_fetch_step_total",
				Help: "Record list fetch attempts by strategy step and outcome",
			},
			[]string{"step", "outcome"},
		),
		fetchResults: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "records_fetch_results",
				Help:    "Number of records returned per fetch",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		decodes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "report_decode_total",
				Help: "Report field decodes by field and outcome",
			},
			[]string{"field", "outcome"},
		),
		refreshes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "records_refresh_total",
				Help: "Record list refreshes by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// ObserveFetchStep counts one strategy step outcome
func (m *Metrics) ObserveFetchStep(step, outcome string) {
	if m == nil {
		return
	}
	m.fetchSteps.WithLabelValues(step, outcome).Inc()
}

// ObserveFetchResults records the size of a fetch result
func (m *Metrics) ObserveFetchResults(n int) {
	if m == nil {
		return
	}
	m.fetchResults.Observe(float64(n))
}

// ObserveDecode counts one field decode outcome
func (m *Metrics) ObserveDecode(field, outcome string) {
	if m == nil {
		return
	}
	m.decodes.WithLabelValues(field, outcome).Inc()
}

// ObserveRefresh counts one refresh outcome
func (m *Metrics) ObserveRefresh(outcome string) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(outcome).Inc()
}
