package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by method, route template and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "posts_api_http_requests_total",
		Help: "Total number of HTTP requests handled",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration records request latency by method and route template.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "posts_api_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// DatastoreErrors counts failed datastore operations.
	DatastoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "posts_api_datastore_errors_total",
		Help: "Total number of datastore errors by operation",
	}, []string{"operation"})
)

// ObserveRequest records one handled request.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordDatastoreError increments the datastore error counter for operation.
func RecordDatastoreError(operation string) {
	DatastoreErrors.WithLabelValues(operation).Inc()
}
