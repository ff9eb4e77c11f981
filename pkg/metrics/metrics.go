package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "paperstore"

var (
	PaperOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "paper_operations_total", Help: "Paper store operations by operation and outcome."},
		[]string{"operation", "outcome"},
	)
	PapersStored = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: namespace, Name: "papers_stored", Help: "Number of papers currently held in memory."},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests by method, route and status."},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request latency.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

// Outcome label values for PaperOperations.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(PaperOperations)
	reg.MustRegister(PapersStored)
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPRequestDuration)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
