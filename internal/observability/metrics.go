package observability

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce        sync.Once
	registrationsTotal  *prometheus.CounterVec
	gatewayRequests     *prometheus.CounterVec
	configSavesTotal    *prometheus.CounterVec
	configDivergence    prometheus.Gauge
	adminRequestsTotal  *prometheus.CounterVec
	adminLatencySeconds *prometheus.HistogramVec
	adminErrorsTotal    *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		registrationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total number of registration attempts by origin and outcome.",
		}, []string{"origin", "outcome"})

		gatewayRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "config_gateway_requests_total",
			Help: "Total number of remote config gateway calls by method and outcome.",
		}, []string{"method", "outcome"})

		configSavesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "site_config_saves_total",
			Help: "Total number of site configuration saves by outcome.",
		}, []string{"outcome"})

		configDivergence = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "site_config_divergence",
			Help: "Set to 1 while the local site configuration is ahead of the remote store.",
		})

		adminRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_requests_total",
			Help: "Total number of admin API requests served.",
		}, []string{"method", "route", "status"})

		adminLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "admin_latency_seconds",
			Help:    "Latency distribution for admin API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		adminErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_errors_total",
			Help: "Total number of error responses returned by admin endpoints.",
		}, []string{"method", "route", "status"})

		prometheus.MustRegister(
			registrationsTotal,
			gatewayRequests,
			configSavesTotal,
			configDivergence,
			adminRequestsTotal,
			adminLatencySeconds,
			adminErrorsTotal,
		)
	})
}

// MetricsHandler exposes the Prometheus scrape endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	RegisterMetrics()
	return adaptor.HTTPHandler(promhttp.Handler())
}

// Registrations exposes the counter for registration attempts.
func Registrations() *prometheus.CounterVec {
	RegisterMetrics()
	return registrationsTotal
}

// GatewayRequests exposes the counter for remote gateway calls.
func GatewayRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return gatewayRequests
}

// ConfigSaves exposes the counter for site configuration saves.
func ConfigSaves() *prometheus.CounterVec {
	RegisterMetrics()
	return configSavesTotal
}

// ConfigDivergence exposes the local-vs-remote divergence gauge.
func ConfigDivergence() prometheus.Gauge {
	RegisterMetrics()
	return configDivergence
}

// AdminRequests exposes the counter for admin requests.
func AdminRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return adminRequestsTotal
}

// AdminLatency exposes the latency histogram for admin requests.
func AdminLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return adminLatencySeconds
}

// AdminErrors exposes the counter for admin error responses.
func AdminErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return adminErrorsTotal
}
