package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether one more request for key fits the budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Clock provides current time.
type Clock interface {
	Now() time.Time
}

// RealClock is the default clock.
type RealClock struct{}

// Now returns current time.
func (RealClock) Now() time.Time { return time.Now() }

// NopLimiter allows everything.
type NopLimiter struct{}

// Allow always returns true
func (NopLimiter) Allow(context.Context, string) (bool, error) { return true, nil }
