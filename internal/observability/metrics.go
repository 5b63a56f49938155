// Package observability expone métricas Prometheus de la API.
package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// RequestsTotal cuenta las peticiones HTTP por método y status.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regutech_requests_total",
			Help: "Total de peticiones HTTP",
		},
		[]string{"method", "status"},
	)

	// RequestDuration registra la duración de cada petición en segundos.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "regutech_request_duration_seconds",
			Help:    "Duración de las peticiones",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(RequestsTotal, RequestDuration)
}
