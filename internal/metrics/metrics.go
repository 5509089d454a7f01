// Package metrics holds the prometheus collectors for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ComputeDuration observes how long each derived-view computation
	// takes, labelled by view (balances, debts, reliability).
	ComputeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "flatflow",
		Name:      "compute_duration_seconds",
		Help:      "Time spent computing derived ledger views.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"view"})

	// HTTPRequests counts handled requests by method, route and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flatflow",
		Name:      "http_requests_total",
		Help:      "Handled HTTP requests.",
	}, []string{"method", "route", "status"})
)
