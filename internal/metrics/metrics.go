package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and status.",
		},
		[]string{"endpoint", "status"},
	)

	bookings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "bookings_total",
			Help:      "Booking lifecycle transitions.",
		},
		[]string{"event"},
	)

	comments = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "comments_total",
			Help:      "Comments created.",
		},
	)

	cacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "cache_ops_total",
			Help:      "View cache lookups by result.",
		},
		[]string{"result"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookings, comments, cacheOps)
	})
}

// IncHTTP increments the counter for an endpoint/status pair.
func IncHTTP(endpoint, status string) {
	httpRequests.WithLabelValues(endpoint, status).Inc()
}

// IncBooking counts a booking lifecycle event (created, approved, rejected).
func IncBooking(event string) {
	bookings.WithLabelValues(event).Inc()
}

// IncComment counts a created comment.
func IncComment() {
	comments.Inc()
}

// IncCache counts a cache lookup result (hit, miss, error).
func IncCache(result string) {
	cacheOps.WithLabelValues(result).Inc()
}
