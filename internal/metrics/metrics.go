// Package metrics holds the Prometheus collectors shared across the service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "eventlistings"

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests served, by method, route pattern and status code.",
	}, []string{"method", "path", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency, by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"path"})

	EventWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_writes_total",
		Help:      "Event write attempts, by operation and result.",
	}, []string{"operation", "result"})

	BookingWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_writes_total",
		Help:      "Booking write attempts, by result.",
	}, []string{"result"})

	ValidationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Candidate records rejected before reaching the store.",
	}, []string{"entity", "reason"})

	DanglingBookings = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dangling_bookings",
		Help:      "Bookings whose referenced event is missing, as of the last sweep.",
	})
)

// Register adds every collector to the default registry. Call once at startup.
func Register() {
	prometheus.MustRegister(
		HTTPRequests,
		HTTPDuration,
		EventWrites,
		BookingWrites,
		ValidationFailures,
		DanglingBookings,
	)
}
