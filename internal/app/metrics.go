package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-pickup/internal/metrics"
)

type metricsOut struct {
	dig.Out

	Transitions   *prometheus.CounterVec `name:"pickup_transitions_total"`
	PublishFailed prometheus.Counter     `name:"pickup_events_publish_failed_total"`
	RateLimited   prometheus.Counter     `name:"rate_limit_exceeded_total"`
}

func provideMetrics() (metricsOut, error) {
	transitions, err := register(metrics.NewPickupTransitionsTotal(), "pickup_transitions_total")
	if err != nil {
		return metricsOut{}, err
	}
	failed, err := register(metrics.NewEventsPublishFailedTotal(), "pickup_events_publish_failed_total")
	if err != nil {
		return metricsOut{}, err
	}
	limited, err := register(metrics.NewRateLimitExceededTotal(), "rate_limit_exceeded_total")
	if err != nil {
		return metricsOut{}, err
	}
	return metricsOut{Transitions: transitions, PublishFailed: failed, RateLimited: limited}, nil
}

type workerMetricsOut struct {
	dig.Out

	Consumed *prometheus.CounterVec `name:"pickup_events_consumed_total"`
}

func provideWorkerMetrics() (workerMetricsOut, error) {
	consumed, err := register(metrics.NewEventsConsumedTotal(), "pickup_events_consumed_total")
	if err != nil {
		return workerMetricsOut{}, err
	}
	return workerMetricsOut{Consumed: consumed}, nil
}

// register adds c to the default registry, reusing a collector that is
// already registered under the same descriptor.
func register[T prometheus.Collector](c T, name string) (T, error) {
	if err := prometheus.DefaultRegisterer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}
