package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSucceeded = "succeeded"
	statusFailed    = "failed"
)

var (
	paymentsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_processed_total",
			Help: "Total number of payments processed through the adapter, by outcome.",
		},
		[]string{"status"},
	)

	paymentProcessDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "payment_process_duration_seconds",
			Help:    "Duration of the full create-token-then-charge call chain in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// GetPaymentsProcessedTotal returns the processed-payments counter for tests
// and diagnostics.
func GetPaymentsProcessedTotal() *prometheus.CounterVec {
	return paymentsProcessedTotal
}

// GetPaymentProcessDurationSeconds returns the processing-duration histogram
// for tests and diagnostics.
func GetPaymentProcessDurationSeconds() prometheus.Histogram {
	return paymentProcessDurationSeconds
}
