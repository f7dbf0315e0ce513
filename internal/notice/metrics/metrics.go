package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for notice dismissals.
type Metrics struct {
	Dismissals      *prometheus.CounterVec
	PublishFailures prometheus.Counter
	NoticesRendered *prometheus.CounterVec
}

// New creates notice collectors registered with reg. A nil reg skips registration.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Dismissals: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bkap_notice_dismissals_total",
			Help: "Total number of admin notice dismissals, labeled by notice key",
		}, []string{"notice"}),
		PublishFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "bkap_notice_dismissal_publish_failures_total",
			Help: "Total number of dismissal events that could not be published",
		}),
		NoticesRendered: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bkap_notice_rendered_total",
			Help: "Total number of dismissible notices rendered, labeled by notice key",
		}, []string{"notice"}),
	}
}

func (m *Metrics) IncrementDismissals(notice string) {
	m.Dismissals.WithLabelValues(notice).Inc()
}

func (m *Metrics) IncrementPublishFailures() {
	m.PublishFailures.Inc()
}

func (m *Metrics) IncrementRendered(notice string) {
	m.NoticesRendered.WithLabelValues(notice).Inc()
}
