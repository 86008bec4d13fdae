package fetch

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var durationBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30}

// Metrics holds the Prometheus collectors for fetch cycles. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	queries  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	cycles   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. Collectors
// that are already registered are reused.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "donorlens",
			Subsystem: "fetch",
			Name:      "queries_total",
			Help:      "Analytics queries by bundle, query and outcome.",
		}, []string{"bundle", "query", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "donorlens",
			Subsystem: "fetch",
			Name:      "query_duration_seconds",
			Help:      "Latency of analytics queries including retries.",
			Buckets:   durationBuckets,
		}, []string{"bundle", "query"}),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "donorlens",
			Subsystem: "fetch",
			Name:      "cycles_total",
			Help:      "Completed fetch cycles by bundle and number of failed queries.",
		}, []string{"bundle", "failed"}),
	}
	if reg == nil {
		return m
	}

	m.queries = register(reg, m.queries)
	m.duration = register(reg, m.duration)
	m.cycles = register(reg, m.cycles)
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

func (m *Metrics) observeQuery(bundle, query, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(bundle, query, outcome).Inc()
	m.duration.WithLabelValues(bundle, query).Observe(d.Seconds())
}

func (m *Metrics) observeCycle(bundle string, failed int) {
	if m == nil {
		return
	}
	m.cycles.WithLabelValues(bundle, strconv.Itoa(failed)).Inc()
}
