package collector

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts collected events and failed rounds per kind.
type Metrics struct {
	events      *prometheus.CounterVec
	filtered    *prometheus.CounterVec
	errors      *prometheus.CounterVec
	lastSuccess *prometheus.GaugeVec
}

// NewMetrics creates the collector metrics and registers them.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	metrics := &Metrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cfv2_collector_events_total",
			Help: "Usage events handed to the sink.",
		}, []string{"kind"}),
		filtered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cfv2_collector_events_filtered_total",
			Help: "Usage events dropped by the filter expression.",
		}, []string{"kind"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cfv2_collector_errors_total",
			Help: "Collection rounds that failed after all retries.",
		}, []string{"kind"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cfv2_collector_last_success_timestamp_seconds",
			Help: "Unix time of the last successful collection round.",
		}, []string{"kind"}),
	}

	for _, collector := range []prometheus.Collector{metrics.events, metrics.filtered, metrics.errors, metrics.lastSuccess} {
		err := registerer.Register(collector)
		if err != nil {
			return nil, fmt.Errorf("registering collector metrics: %w", err)
		}
	}

	return metrics, nil
}

func (m *Metrics) observeRound(kind Kind, stored, filtered int, at time.Time) {
	if m == nil {
		return
	}

	m.events.WithLabelValues(string(kind)).Add(float64(stored))
	m.filtered.WithLabelValues(string(kind)).Add(float64(filtered))
	m.lastSuccess.WithLabelValues(string(kind)).Set(float64(at.Unix()))
}

func (m *Metrics) observeError(kind Kind) {
	if m == nil {
		return
	}

	m.errors.WithLabelValues(string(kind)).Inc()
}
