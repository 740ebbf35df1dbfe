// Package metrics holds the Prometheus instruments of the service.
//
// A Metrics value is created once with NewMetrics and registered on the
// registry served at /metrics. All Record methods are safe on a nil
// receiver, so components built without metrics (tests, the admin CLI)
// need no special casing.
package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Result label values.
const (
	ResultSuccess      = "success"
	ResultUnauthorized = "unauthorized"
	ResultConflict     = "conflict"
	ResultInvalid      = "invalid"
	ResultError        = "error"
)

// Metrics contains the service's custom instruments.
type Metrics struct {
	LoginsTotal     *prometheus.CounterVec
	DeliveriesTotal *prometheus.CounterVec

	PoolOpenConnections *prometheus.GaugeVec
	PoolWaitCount       prometheus.Gauge
	PoolWaitDuration    prometheus.Gauge
}

// NewMetrics creates the instruments and registers them on reg.
// Panics if registration fails (following prometheus convention).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paquexpress_logins_total",
				Help: "Total number of login attempts by result",
			},
			[]string{"result"},
		),
		DeliveriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paquexpress_deliveries_total",
				Help: "Total number of delivery registrations by result",
			},
			[]string{"result"},
		),
		PoolOpenConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "paquexpress_db_pool_connections",
				Help: "Database pool connections by state, sampled by the pool statistics job",
			},
			[]string{"state"},
		),
		PoolWaitCount: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "paquexpress_db_pool_wait_count",
				Help: "Total number of connections waited for",
			},
		),
		PoolWaitDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "paquexpress_db_pool_wait_duration_seconds",
				Help: "Total time blocked waiting for a new connection",
			},
		),
	}

	reg.MustRegister(
		m.LoginsTotal,
		m.DeliveriesTotal,
		m.PoolOpenConnections,
		m.PoolWaitCount,
		m.PoolWaitDuration,
	)

	return m
}

// NewRegistry returns a registry with the Go and process collectors, so the
// global default registry stays untouched.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return registry
}

// RecordLogin counts one login attempt.
func (m *Metrics) RecordLogin(result string) {
	if m == nil {
		return
	}
	m.LoginsTotal.WithLabelValues(result).Inc()
}

// RecordDelivery counts one delivery registration.
func (m *Metrics) RecordDelivery(result string) {
	if m == nil {
		return
	}
	m.DeliveriesTotal.WithLabelValues(result).Inc()
}

// ObservePool copies a pool statistics snapshot into the pool gauges.
func (m *Metrics) ObservePool(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.PoolOpenConnections.WithLabelValues("open").Set(float64(stats.OpenConnections))
	m.PoolOpenConnections.WithLabelValues("in_use").Set(float64(stats.InUse))
	m.PoolOpenConnections.WithLabelValues("idle").Set(float64(stats.Idle))
	m.PoolOpenConnections.WithLabelValues("max_open").Set(float64(stats.MaxOpenConnections))
	m.PoolWaitCount.Set(float64(stats.WaitCount))
	m.PoolWaitDuration.Set(stats.WaitDuration.Seconds())
}
