package request

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP latency histogram.
type Metrics struct {
	Duration *prometheus.HistogramVec
}

// NewMetrics registers the collectors with reg. A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Duration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bkap_http_request_duration_seconds",
			Help:    "Latency of HTTP requests by route, method and status class.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
}

// Observe records one request. Statuses are reduced to their class, e.g. 4xx.
func (m *Metrics) Observe(route, method string, status int, d time.Duration) {
	class := strconv.Itoa(status/100) + "xx"
	m.Duration.WithLabelValues(route, method, class).Observe(d.Seconds())
}
