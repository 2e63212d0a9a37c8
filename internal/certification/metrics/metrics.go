package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the certification module: catalog
// growth, publish outcomes and the latency of aggregate saves.
type Metrics struct {
	CertificationsCreated prometheus.Counter
	CoursesCreated        prometheus.Counter
	PublishAttempts       *prometheus.CounterVec
	SaveDuration          prometheus.Histogram
}

// New registers the certification metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CertificationsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "certhub_certifications_created_total",
			Help: "Total number of certification drafts created",
		}),
		CoursesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "certhub_courses_created_total",
			Help: "Total number of catalog courses created",
		}),
		PublishAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "certhub_certification_publish_total",
			Help: "Publish attempts by outcome (published, already_active, rejected)",
		}, []string{"outcome"}),
		SaveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "certhub_certification_save_duration_seconds",
			Help:    "Duration of certification aggregate saves",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementCertificationsCreated() {
	m.CertificationsCreated.Inc()
}

func (m *Metrics) IncrementCoursesCreated() {
	m.CoursesCreated.Inc()
}

func (m *Metrics) IncrementPublish(outcome string) {
	m.PublishAttempts.WithLabelValues(outcome).Inc()
}

// ObserveSave records an aggregate save that started at start.
func (m *Metrics) ObserveSave(start time.Time) {
	m.SaveDuration.Observe(time.Since(start).Seconds())
}
