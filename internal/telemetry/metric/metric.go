// Package metric provides Prometheus metrics for UserHub.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all application metrics.
type Registry struct {
	// RequestsTotal counts HTTP requests by method, route and status.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration observes request latency by method and route.
	RequestDuration *prometheus.HistogramVec

	// LoginsTotal counts login attempts by outcome (ok, denied).
	LoginsTotal *prometheus.CounterVec

	// CacheValidations counts conditional GET outcomes (hit, miss).
	CacheValidations *prometheus.CounterVec

	reg *prometheus.Registry
}

// NewRegistry creates a registry with all application metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(reg)

	return &Registry{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "userhub",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed.",
		}, []string{"method", "route", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "userhub",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		LoginsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "userhub",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),

		CacheValidations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "userhub",
			Name:      "cache_validations_total",
			Help:      "Conditional GET validation outcomes.",
		}, []string{"outcome"}),

		reg: reg,
	}
}

// MustRegister registers an extra collector (e.g. the store collector).
func (r *Registry) MustRegister(c prometheus.Collector) {
	r.reg.MustRegister(c)
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
