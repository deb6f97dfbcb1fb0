package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PaymentMetrics covers the reconciliation path and its side effects.
type PaymentMetrics struct {
	CallbacksReceivedTotal     prometheus.CounterVec
	ReconciliationsTotal       prometheus.CounterVec
	DuplicateCallbacksTotal    prometheus.CounterVec
	AmountMismatchTotal        prometheus.CounterVec
	VerificationDuration       prometheus.HistogramVec
	EmailsSentTotal            prometheus.CounterVec
	PaymentEventsPublishErrors prometheus.Counter
}

func NewPaymentMetrics() *PaymentMetrics {
	return &PaymentMetrics{
		CallbacksReceivedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_callbacks_received_total",
				Help: "Gateway callbacks received, per channel",
			},
			[]string{"channel"},
		),

		ReconciliationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_reconciliations_total",
				Help: "Reconciliation outcomes",
			},
			[]string{"outcome"},
		),

		DuplicateCallbacksTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_duplicate_callbacks_total",
				Help: "Callbacks for orders already in a terminal payment state",
			},
			[]string{"channel"},
		),

		AmountMismatchTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_amount_mismatch_total",
				Help: "Verified-valid callbacks whose amount differed from the order total",
			},
			[]string{"channel"},
		),

		VerificationDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_verification_duration_seconds",
				Help:    "Latency of validator API calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		),

		EmailsSentTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_emails_sent_total",
				Help: "Transactional emails dispatched to the mail queue",
			},
			[]string{"recipient"},
		),

		PaymentEventsPublishErrors: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "payment_events_publish_errors_total",
				Help: "Failed kafka payment event publishes",
			},
		),
	}
}
