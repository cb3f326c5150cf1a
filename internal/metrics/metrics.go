package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewPickupTransitionsTotal returns a counter of pickup operations by operation and outcome
func NewPickupTransitionsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pickup_transitions_total",
		Help: "Total number of pickup operations by operation and outcome",
	}, []string{"operation", "outcome"})
}

// NewEventsPublishFailedTotal returns a counter of pickup events that could not be published
func NewEventsPublishFailedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pickup_events_publish_failed_total",
		Help: "Total number of pickup events that could not be published",
	})
}

// NewEventsConsumedTotal returns a counter of pickup events recorded by the audit worker
func NewEventsConsumedTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pickup_events_consumed_total",
		Help: "Total number of pickup events recorded by the audit worker by operation",
	}, []string{"operation"})
}

// NewRateLimitExceededTotal returns a counter of requests rejected by the rate limiter
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of requests rejected by the rate limiter",
	})
}
