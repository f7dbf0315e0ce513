package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Suppression reasons for the inactive license notice.
const (
	ReasonLicenseActive  = "license_active"
	ReasonExcludedScreen = "excluded_screen"
)

// Metrics holds Prometheus collectors for license operations.
type Metrics struct {
	NoticesShown      prometheus.Counter
	NoticesSuppressed *prometheus.CounterVec
	RemoteCalls       *prometheus.CounterVec
	RemoteLatency     *prometheus.HistogramVec
}

// New creates license collectors registered with reg. A nil reg skips registration.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		NoticesShown: f.NewCounter(prometheus.CounterOpts{
			Name: "bkap_license_notices_shown_total",
			Help: "Total number of inactive license notices rendered",
		}),
		NoticesSuppressed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bkap_license_notices_suppressed_total",
			Help: "Total number of admin page loads without a license notice, labeled by reason",
		}, []string{"reason"}),
		RemoteCalls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bkap_license_remote_calls_total",
			Help: "Total number of remote licensing calls, labeled by action and outcome",
		}, []string{"action", "outcome"}),
		RemoteLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bkap_license_remote_latency_seconds",
			Help:    "Latency of remote licensing calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"action"}),
	}
}

func (m *Metrics) IncrementNoticeShown() {
	m.NoticesShown.Inc()
}

func (m *Metrics) IncrementNoticeSuppressed(reason string) {
	m.NoticesSuppressed.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveRemoteCall(action, outcome string, seconds float64) {
	m.RemoteCalls.WithLabelValues(action, outcome).Inc()
	m.RemoteLatency.WithLabelValues(action).Observe(seconds)
}
