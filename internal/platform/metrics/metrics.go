// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics holds the Prometheus collectors exposed on /metrics.
//
// All helpers are nil-safe so services and tests can run without a registry.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the record pages and the matcher.
type Metrics struct {
	// HTTP requests by chi route pattern, method and status.
	Requests *prometheus.CounterVec

	// Request latency by route pattern.
	RequestLatency *prometheus.HistogramVec

	// Family tree match latency and result size by participant role.
	MatchLatency    *prometheus.HistogramVec
	MatchCandidates *prometheus.HistogramVec

	// Record mutations by record type and operation (update, delete, link).
	RecordWrites *prometheus.CounterVec

	// Reference cache hits and misses by lookup kind.
	CacheLookups *prometheus.CounterVec
}

// New creates the collectors and registers them with registerer.
func New(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ontvitals_http_requests_total",
			Help: "Total HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),

		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ontvitals_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"route"}),

		MatchLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ontvitals_match_duration_seconds",
			Help:    "Duration of family tree candidate searches by participant role",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"role"}),

		MatchCandidates: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ontvitals_match_candidates",
			Help:    "Number of candidates returned by a family tree search",
			Buckets: []float64{0, 1, 2, 5, 10, 20},
		}, []string{"role"}),

		RecordWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ontvitals_record_writes_total",
			Help: "Record mutations by record type and operation",
		}, []string{"record", "operation"}),

		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ontvitals_reference_cache_lookups_total",
			Help: "Reference cache lookups by kind and result",
		}, []string{"kind", "result"}),
	}
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if m != nil {
		m.Requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
		m.RequestLatency.WithLabelValues(route).Observe(d.Seconds())
	}
}

// ObserveMatch records a candidate search for the given participant role.
func (m *Metrics) ObserveMatch(role string, candidates int, d time.Duration) {
	if m != nil {
		m.MatchLatency.WithLabelValues(role).Observe(d.Seconds())
		m.MatchCandidates.WithLabelValues(role).Observe(float64(candidates))
	}
}

// IncrementWrite records a mutation of a record type.
func (m *Metrics) IncrementWrite(record, operation string) {
	if m != nil {
		m.RecordWrites.WithLabelValues(record, operation).Inc()
	}
}

// IncrementCache records a reference cache hit or miss.
func (m *Metrics) IncrementCache(kind string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(kind, result).Inc()
}
