// Package metrics expone métricas Prometheus de las llamadas al backend SEVA.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Nombres de métricas.
const (
	MetricAPIRequestsTotal   = "seva_api_requests_total"
	MetricAPIRequestDuration = "seva_api_request_duration_seconds"
	MetricSessionActive      = "seva_session_active"
)

// Registry agrupa las métricas de la consola en un registro propio.
type Registry struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	sessionActive   prometheus.Gauge
}

// NewRegistry crea el registro con los colectores de proceso y de Go.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricAPIRequestsTotal,
			Help: "Solicitudes emitidas al backend por endpoint, método y estado (0 = fallo de red).",
		}, []string{"endpoint", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricAPIRequestDuration,
			Help:    "Latencia de las solicitudes al backend.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint", "method"}),
		sessionActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricSessionActive,
			Help: "1 si la consola tiene una sesión autenticada.",
		}),
	}
	r.registry.MustRegister(
		r.requestsTotal,
		r.requestDuration,
		r.sessionActive,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveRequest implementa api.Observer.
func (r *Registry) ObserveRequest(endpoint, method string, status int, elapsed time.Duration) {
	r.requestsTotal.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(endpoint, method).Observe(elapsed.Seconds())
}

// SetSessionActive refleja si hay sesión.
func (r *Registry) SetSessionActive(active bool) {
	if active {
		r.sessionActive.Set(1)
		return
	}
	r.sessionActive.Set(0)
}

// Handler sirve /metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
