package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments outbound API calls.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the client collectors on reg. A nil reg returns nil,
// which disables instrumentation.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ptjobs",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "API requests by method, endpoint template and status code.",
		}, []string{"method", "endpoint", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ptjobs",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

// observe records one request. code is 0 for transport failures.
func (m *Metrics) observe(method, path string, code int, started time.Time) {
	if m == nil {
		return
	}
	ep := endpointLabel(path)
	label := "error"
	if code != 0 {
		label = strconv.Itoa(code)
	}
	m.requests.WithLabelValues(method, ep, label).Inc()
	m.duration.WithLabelValues(method, ep).Observe(time.Since(started).Seconds())
}
