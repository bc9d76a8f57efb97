package lookup

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/promptdesk/pkg/slugfield"
)

// Metrics holds the lookup collectors.
type Metrics struct {
	queries  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "promptdesk",
			Subsystem: "lookup",
			Name:      "queries_total",
			Help:      "Lookup queries by operation, resource and outcome.",
		}, []string{"operation", "resource", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "promptdesk",
			Subsystem: "lookup",
			Name:      "query_duration_seconds",
			Help:      "Lookup query latency.",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "resource"}),
	}

	for _, c := range []prometheus.Collector{m.queries, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(op, resource string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.queries.WithLabelValues(op, resource, outcome).Inc()
	m.duration.WithLabelValues(op, resource).Observe(time.Since(start).Seconds())
}

// Instrumented records every call to the wrapped backend.
type Instrumented struct {
	next    slugfield.Backend
	metrics *Metrics
}

// Instrument wraps next. A nil m returns next unchanged.
func Instrument(next slugfield.Backend, m *Metrics) slugfield.Backend {
	if m == nil {
		return next
	}
	return &Instrumented{next: next, metrics: m}
}

func (i *Instrumented) Count(ctx context.Context, resource, field, value string) (n int, err error) {
	defer func(start time.Time) { i.metrics.observe("count", resource, start, err) }(time.Now())
	return i.next.Count(ctx, resource, field, value)
}

func (i *Instrumented) SelectPrefix(ctx context.Context, resource, field, prefix string) (vs []string, err error) {
	defer func(start time.Time) { i.metrics.observe("select_prefix", resource, start, err) }(time.Now())
	return i.next.SelectPrefix(ctx, resource, field, prefix)
}
