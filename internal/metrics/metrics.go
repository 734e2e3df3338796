// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casting_http_requests_total",
		Help: "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "casting_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	AuthDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casting_auth_decisions_total",
		Help: "Authorization outcomes by permission and error code.",
	}, []string{"permission", "code"})

	JWKSFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casting_jwks_fetch_total",
		Help: "Key set retrievals by result.",
	}, []string{"result"})
)
