package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "smartsave"

var (
	// AdviceRequestsTotal counts purchase-advice calls by outcome.
	AdviceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "advice",
			Name:      "requests_total",
			Help:      "Total number of purchase advice requests by outcome",
		},
		[]string{"provider", "outcome"},
	)

	// AdviceStatusTotal counts successful advice by decision label.
	AdviceStatusTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "advice",
			Name:      "status_total",
			Help:      "Total number of purchase advice decisions by status",
		},
		[]string{"status"},
	)

	// AdviceDuration measures the full advice pipeline, provider call included.
	AdviceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "advice",
			Name:      "duration_seconds",
			Help:      "Purchase advice pipeline duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
		},
		[]string{"provider", "outcome"},
	)

	// QuotaRejectedTotal counts advice requests refused by the daily quota.
	QuotaRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "advice",
			Name:      "quota_rejected_total",
			Help:      "Total number of advice requests rejected by the daily quota",
		},
	)

	// TransactionsCreatedTotal counts stored transactions.
	TransactionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transactions",
			Name:      "created_total",
			Help:      "Total number of transactions created",
		},
		[]string{"category", "flagged"},
	)

	// FraudChecksTotal counts fraud checks by result.
	FraudChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fraud",
			Name:      "checks_total",
			Help:      "Total number of fraud checks by result",
		},
		[]string{"flagged"},
	)
)

// ObserveAdvice записывает исход и длительность одного запроса совета.
func ObserveAdvice(provider, outcome string, started time.Time) {
	AdviceRequestsTotal.WithLabelValues(provider, outcome).Inc()
	AdviceDuration.WithLabelValues(provider, outcome).Observe(time.Since(started).Seconds())
}

// Flag переводит булев признак в значение метки.
func Flag(value bool) string {
	if value {
		return "true"
	}
	return "false"
}
