// Package metrics exposes Prometheus instrumentation for the API and
// the catalog operations behind it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for the service. All collectors are
// registered on the registry passed to New, so tests can use isolated
// registries.
type Metrics struct {
	Registry *prometheus.Registry

	// HTTP layer
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Catalog operations
	CatalogOps *prometheus.CounterVec

	// Catalog state
	ListingsTotal     prometheus.Gauge
	ListingsAvailable prometheus.Gauge

	// Scheduled index audit
	AuditViolations prometheus.Counter
	AuditRuns       prometheus.Counter
}

// New creates and registers the service collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "listing_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "listing_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		CatalogOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "listing_catalog_operations_total",
			Help: "Catalog operations by type and outcome",
		}, []string{"operation", "outcome"}),
		ListingsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "listing_catalog_listings",
			Help: "Number of listings in the catalog",
		}),
		ListingsAvailable: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "listing_catalog_listings_available",
			Help: "Number of available listings in the catalog",
		}),
		AuditViolations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "listing_index_audit_violations_total",
			Help: "Consistency violations found by the index audit",
		}),
		AuditRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "listing_index_audit_runs_total",
			Help: "Completed index audit runs",
		}),
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.CatalogOps,
		m.ListingsTotal,
		m.ListingsAvailable,
		m.AuditViolations,
		m.AuditRuns,
	)
	return m
}

// RecordOp counts a catalog operation outcome. outcome is "ok" or the
// short error kind ("not_found", "unauthorized", ...).
func (m *Metrics) RecordOp(operation, outcome string) {
	m.CatalogOps.WithLabelValues(operation, outcome).Inc()
}
