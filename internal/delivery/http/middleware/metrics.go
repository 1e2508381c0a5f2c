package middleware

import (
	"net/http"
	"strconv"
	"time"

	"eventlistings/internal/metrics"
)

// Metrics records request count and latency for one route. The route pattern
// is passed in at registration time so the label set stays bounded no matter
// what raw paths clients send.
func Metrics(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.status)).Inc()
		metrics.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
