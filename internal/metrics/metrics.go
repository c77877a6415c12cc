// Package metrics defines Prometheus metrics for the styleDecor gateway.
//
// Metric naming follows Prometheus conventions:
//   - styledecor_ prefix for all custom metrics
//   - _total suffix for counters
//   - _seconds suffix for duration histograms
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// LoginsTotal counts login attempts by terminal result.
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "styledecor_logins_total",
			Help: "Total number of login attempts by result.",
		},
		[]string{"result"},
	)

	// GuardDecisionsTotal counts route guard evaluations by outcome.
	GuardDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "styledecor_guard_decisions_total",
			Help: "Total route guard evaluations by decision.",
		},
		[]string{"decision"},
	)

	// BackendRequestsTotal counts outbound backend calls by method and status.
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "styledecor_backend_requests_total",
			Help: "Total requests to the styleDecor REST backend.",
		},
		[]string{"method", "status"},
	)

	// BackendRequestSeconds is a histogram of backend call duration.
	BackendRequestSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "styledecor_backend_request_seconds",
			Help:    "Duration of backend requests in seconds.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method"},
	)

	// SessionsExpiredTotal counts sessions purged by the global 401 policy.
	SessionsExpiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "styledecor_sessions_expired_total",
			Help: "Total sessions cleared after a 401 from the backend.",
		},
	)
)

// Registry returns a registry with all gateway metrics plus the standard
// process and Go runtime collectors. Served on the /metrics route.
func Registry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		LoginsTotal,
		GuardDecisionsTotal,
		BackendRequestsTotal,
		BackendRequestSeconds,
		SessionsExpiredTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
