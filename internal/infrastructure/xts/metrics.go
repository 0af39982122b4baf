package xts

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records upstream call counts and latency.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "xts_requests_total",
			Help: "Calls made to the accounting service endpoint.",
		}, []string{"type", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "xts_request_duration_seconds",
			Help:    "Latency of calls to the accounting service endpoint.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"type"}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.requests, m.duration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) observe(requestType string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(requestType, outcome(err)).Inc()
	m.duration.WithLabelValues(requestType).Observe(seconds)
}
