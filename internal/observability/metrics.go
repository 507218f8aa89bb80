package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReservationsCreated   = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ecoride", Name: "reservations_created_total", Help: "Reservations created (pending)"})
	ReservationsConfirmed = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ecoride", Name: "reservations_confirmed_total", Help: "Reservations confirmed"})
	CapacityConflicts     = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ecoride", Name: "capacity_conflicts_total", Help: "Reservation attempts rejected for insufficient seats"})
	ReviewsSubmitted      = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ecoride", Name: "reviews_submitted_total", Help: "Reviews accepted"})
	RidesPublished        = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ecoride", Name: "rides_published_total", Help: "Rides published"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ecoride", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ecoride",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
