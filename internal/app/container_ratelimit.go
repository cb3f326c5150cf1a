package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"service-pickup/internal/config"
	"service-pickup/internal/http/middleware"
	"service-pickup/internal/http/middleware/ratelimit"
	"service-pickup/internal/logx"
)

func newRateLimiter(cfg *config.Config, rdb *redis.Client, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.NopLimiter{}
	}
	rc := ratelimit.Config{
		Rate:       rl.Rate,
		Burst:      rl.Burst,
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	}
	if rl.Backend == config.RateLimitRedis {
		return ratelimit.NewRedisWindow(rdb, cfg.Redis.KeyPrefix, clock, rc)
	}
	return ratelimit.NewTokenBucket(clock, rc)
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

type rateLimitIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

type rateLimitOut struct {
	dig.Out

	Handler func(http.Handler) http.Handler `name:"rate_limit"`
}

// newRateLimitMiddleware yields a nil handler when limiting is disabled.
func newRateLimitMiddleware(in rateLimitIn) rateLimitOut {
	if !in.Cfg.RateLimit.Enabled {
		return rateLimitOut{}
	}
	in.Logger.Info("rate limiting enabled",
		logx.String("backend", in.Cfg.RateLimit.Backend),
		logx.Any("rate", in.Cfg.RateLimit.Rate),
		logx.Int("burst", in.Cfg.RateLimit.Burst),
	)
	m := ratelimit.New(in.Logger, in.Counter, in.Limiter, middleware.CallerKey)
	return rateLimitOut{Handler: m.Handler()}
}
