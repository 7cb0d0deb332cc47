package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ParcelsBookedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parcel_delivery_parcels_booked_total",
		Help: "Total number of parcels successfully booked.",
	})

	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parcel_delivery_transitions_total",
		Help: "Lifecycle transitions confirmed by the backend.",
	},
		[]string{"transition"},
	)

	TrackingFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parcel_delivery_tracking_failures_total",
		Help: "Tracking events that could not be appended.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parcel_delivery_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "parcel_delivery_http_request_duration_seconds",
		Help:    "Latency of requests served by this app.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"method", "route", "status"},
	)

	RoleCacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parcel_delivery_role_cache_results_total",
		Help: "Role lookups served from cache (hit) or the backend (miss).",
	},
		[]string{"result"},
	)
)
