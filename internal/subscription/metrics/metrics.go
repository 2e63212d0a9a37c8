package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks subscription transitions and renewal sweep runs.
type Metrics struct {
	Transitions   *prometheus.CounterVec
	SweepRenewed  prometheus.Counter
	SweepExpired  prometheus.Counter
	SweepDuration prometheus.Histogram
	SweepFailures prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "certhub_subscription_transitions_total",
			Help: "Subscription state transitions by target state",
		}, []string{"to"}),
		SweepRenewed: factory.NewCounter(prometheus.CounterOpts{
			Name: "certhub_subscription_sweep_renewed_total",
			Help: "Subscriptions renewed by the renewal sweep",
		}),
		SweepExpired: factory.NewCounter(prometheus.CounterOpts{
			Name: "certhub_subscription_sweep_expired_total",
			Help: "Subscriptions expired by the renewal sweep",
		}),
		SweepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "certhub_subscription_sweep_duration_seconds",
			Help:    "Duration of renewal sweep runs",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		SweepFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "certhub_subscription_sweep_failures_total",
			Help: "Renewal sweep runs aborted by an error",
		}),
	}
}

func (m *Metrics) IncrementTransition(to string) {
	m.Transitions.WithLabelValues(to).Inc()
}

// ObserveSweep records one finished sweep run.
func (m *Metrics) ObserveSweep(start time.Time, renewed, expired int, err error) {
	m.SweepDuration.Observe(time.Since(start).Seconds())
	m.SweepRenewed.Add(float64(renewed))
	m.SweepExpired.Add(float64(expired))
	if err != nil {
		m.SweepFailures.Inc()
	}
}
