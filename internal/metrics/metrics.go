package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CheckoutMetrics struct {
	Attempts *prometheus.CounterVec
	Duration prometheus.Histogram
}

// NewCheckoutMetrics registers checkout counters on the given registry; pass
// prometheus.DefaultRegisterer in main, a fresh registry in tests.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kubecart",
		Subsystem: "orders",
		Name:      "checkout_attempts_total",
		Help:      "Checkout attempts by outcome.",
	}, []string{"outcome"})

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "kubecart",
		Subsystem: "orders",
		Name:      "checkout_duration_seconds",
		Help:      "End-to-end checkout latency.",
		Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	})

	reg.MustRegister(attempts, duration)
	return &CheckoutMetrics{Attempts: attempts, Duration: duration}
}

func (m *CheckoutMetrics) Observe(outcome string, started time.Time) {
	m.Attempts.WithLabelValues(outcome).Inc()
	m.Duration.Observe(time.Since(started).Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}
