package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CheckoutMetrics groups the counters the gateway exposes on /metrics.
//
// ReconcileFailures is the one that matters operationally: it counts
// best-effort mutations (order status update, cart clear) that failed after
// the gateway already reported a terminal payment outcome. A non-zero value
// means a paid order may not be marked paid server-side and needs a human.
type CheckoutMetrics struct {
	Attempts          *prometheus.CounterVec
	Outcomes          *prometheus.CounterVec
	ReconcileFailures *prometheus.CounterVec
	LatencyMS         *prometheus.HistogramVec
}

func NewCheckoutMetrics() *CheckoutMetrics {
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sportshop",
		Subsystem: "checkout_gateway",
		Name:      "checkout_attempts_total",
		Help:      "Checkout attempts by result of the pre-redirect flow.",
	}, []string{"result"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sportshop",
		Subsystem: "checkout_gateway",
		Name:      "payment_outcomes_total",
		Help:      "Reconciled payment outcomes by terminal state.",
	}, []string{"state"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sportshop",
		Subsystem: "checkout_gateway",
		Name:      "reconcile_failures_total",
		Help:      "Best-effort reconciliation calls that failed after a terminal gateway outcome.",
	}, []string{"call"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sportshop",
		Subsystem: "checkout_gateway",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})

	prometheus.MustRegister(attempts, outcomes, failures, latency)
	return &CheckoutMetrics{
		Attempts:          attempts,
		Outcomes:          outcomes,
		ReconcileFailures: failures,
		LatencyMS:         latency,
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
