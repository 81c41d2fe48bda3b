// Copyright (c) 2026 Travelpack. All rights reserved.

/*
Package metrics owns the Prometheus collectors exported on /metrics.

Collectors are registered against an explicit [prometheus.Registry] rather than
the global default so tests can build isolated instances.

Families:

  - HTTP: request count and latency by method, route pattern and status.
  - Collaborator: generative-model call count and latency by operation and outcome.
  - Cache: suggestion cache lookups by result.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "travelpack"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Cache result label values.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics holds every collector the API exports.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	CollaboratorCallsTotal   *prometheus.CounterVec
	CollaboratorCallDuration *prometheus.HistogramVec

	SuggestionCacheLookups *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors on registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		CollaboratorCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "collaborator_calls_total",
				Help:      "Total number of generative-model calls",
			},
			[]string{"operation", "outcome"},
		),
		CollaboratorCallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "collaborator_call_duration_seconds",
				Help:      "Generative-model call duration in seconds",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30},
			},
			[]string{"operation"},
		),
		SuggestionCacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "suggestion_cache_lookups_total",
				Help:      "Suggestion cache lookups by result",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CollaboratorCallsTotal,
		m.CollaboratorCallDuration,
		m.SuggestionCacheLookups,
	)

	return m
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveCollaboratorCall records one generative-model call.
func (m *Metrics) ObserveCollaboratorCall(operation string, err error, elapsed time.Duration) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.CollaboratorCallsTotal.WithLabelValues(operation, outcome).Inc()
	m.CollaboratorCallDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveCacheLookup records a suggestion cache lookup result.
func (m *Metrics) ObserveCacheLookup(result string) {
	m.SuggestionCacheLookups.WithLabelValues(result).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
