package transport

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// requestMetrics instruments individual request attempts. Nil when the
// caller supplied no registerer; every method tolerates a nil receiver so
// the trace stage never branches on metrics being enabled.
type requestMetrics struct {
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge
}

func newRequestMetrics(reg prometheus.Registerer) *requestMetrics {
	if reg == nil {
		return nil
	}
	m := &requestMetrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vortex",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Latency of request attempts against the Vortex service.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vortex",
			Subsystem: "client",
			Name:      "requests_in_flight",
			Help:      "Request attempts currently in flight.",
		}),
	}
	reg.MustRegister(m.duration, m.inflight)
	return m
}

func (m *requestMetrics) begin() {
	if m == nil {
		return
	}
	m.inflight.Inc()
}

func (m *requestMetrics) end(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.inflight.Dec()
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.duration.WithLabelValues(method, path, label).Observe(elapsed.Seconds())
}
