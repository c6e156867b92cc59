// Package metrics declares the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

const namespace = "pitchfund"

// Investment outcomes.
const (
	OutcomeApplied     = "applied"
	OutcomeExceedsGoal = "exceeds_goal"
	OutcomeNotFound    = "not_found"
	OutcomeReplayed    = "replayed"
	OutcomeInFlight    = "in_flight"
	OutcomeRateLimited = "rate_limited"
	OutcomeError       = "error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	InvestmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "investments_total",
			Help:      "Investment attempts by outcome",
		},
		[]string{"outcome"},
	)

	InvestedAmountTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invested_amount_total",
			Help:      "Sum of applied investment amounts",
		},
	)

	GoalsReachedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "funding_goals_reached_total",
			Help:      "Businesses whose funding goal was completed",
		},
	)

	PitchesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pitches_created_total",
			Help:      "Pitches created",
		},
	)

	BusinessesDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "businesses_deleted_total",
			Help:      "Businesses deleted",
		},
	)

	JobsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_processed_total",
			Help:      "Background tasks processed by type and result",
		},
		[]string{"task_type", "result"},
	)

	DependencyUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dependency_up",
			Help:      "1 when the last health check of the dependency passed",
		},
		[]string{"dependency"},
	)
)

// RecordInvestment counts an outcome and, when applied, the amount.
func RecordInvestment(outcome string, amount decimal.Decimal) {
	InvestmentsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeApplied {
		InvestedAmountTotal.Add(amount.InexactFloat64())
	}
}

func SetDependency(name string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	DependencyUp.WithLabelValues(name).Set(v)
}
