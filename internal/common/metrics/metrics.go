// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quote_sessions_created_total",
			Help: "Total number of wizard sessions started",
		},
	)

	StepTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_step_transitions_total",
			Help: "Wizard step changes by destination step",
		},
		[]string{"step"},
	)

	LeadsCaptured = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_leads_captured_total",
			Help: "Lead submissions by outcome",
		},
		[]string{"outcome"},
	)

	QuotesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_quotes_created_total",
			Help: "Quotes issued, labelled by discount percent",
		},
		[]string{"discount_percent"},
	)

	QuoteTotal = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quote_total_vnd",
			Help:    "Distribution of quote totals in VND",
			Buckets: []float64{5e6, 10e6, 20e6, 35e6, 50e6, 75e6, 100e6, 200e6},
		},
	)

	CollaboratorCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_collaborator_calls_total",
			Help: "Outbound collaborator calls by collaborator and status",
		},
		[]string{"collaborator", "status"},
	)

	CollaboratorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "quote_collaborator_duration_seconds",
			Help: "Duration of outbound collaborator calls in seconds",
		},
		[]string{"collaborator"},
	)

	AIFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_ai_fallbacks_total",
			Help: "Times the canned email sequence replaced generated content",
		},
		[]string{"reason"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "quote_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "route", "status"},
	)

	FanoutActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "quote_fanout_active",
			Help: "Number of in-flight post-lead fan-out goroutines",
		},
	)
)

// ObserveCollaborator records one outbound call and its duration.
func ObserveCollaborator(collaborator string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	CollaboratorCalls.WithLabelValues(collaborator, status).Inc()
	CollaboratorDuration.WithLabelValues(collaborator).Observe(time.Since(start).Seconds())
}
