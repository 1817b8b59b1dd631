package heredity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK           = "ok"
	outcomeInconsistent = "inconsistent"
	outcomeCanceled     = "canceled"
	outcomeError        = "error"
)

// Metrics exports inference counters to Prometheus. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	worldsEvaluated prometheus.Counter
	traitsPruned    prometheus.Counter
	runs            *prometheus.CounterVec
	duration        prometheus.Histogram
}

// NewMetrics creates the heredity collectors and registers them with reg. It
// panics if they are already registered there.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		worldsEvaluated: f.NewCounter(prometheus.CounterOpts{
			Namespace: "heredity",
			Name:      "worlds_evaluated_total",
			Help:      "Fully-specified worlds whose joint probability was computed.",
		}),
		traitsPruned: f.NewCounter(prometheus.CounterOpts{
			Namespace: "heredity",
			Name:      "trait_assignments_pruned_total",
			Help:      "Trait assignments rejected by observed evidence before enumeration of their gene assignments.",
		}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heredity",
			Name:      "runs_total",
			Help:      "Inference runs, by outcome.",
		}, []string{"outcome"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "heredity",
			Name:      "inference_duration_seconds",
			Help:      "Wall time of inference runs that completed enumeration.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12),
		}),
	}
}

func (m *Metrics) observe(s Stats, outcome string) {
	if m == nil {
		return
	}
	m.worldsEvaluated.Add(float64(s.Worlds))
	m.traitsPruned.Add(float64(s.Pruned))
	m.duration.Observe(s.Elapsed.Seconds())
	m.runs.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeFailure(err error) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcomeFor(err)).Inc()
}
