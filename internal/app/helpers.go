package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"service-pickup/internal/logx"
	"service-pickup/internal/repository"
)

var (
	newPool  = repository.NewPool
	newRedis = repository.NewRedis
)

const attemptTimeout = 3 * time.Second

func connectDbWithRetry(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error) {
	return withRetry(ctx, logger, "db", retries, delay, func(ctx context.Context) (*pgxpool.Pool, error) {
		return newPool(ctx, dsn)
	})
}

func connectRedisWithRetry(ctx context.Context, logger logx.Logger, opts repository.RedisOptions, retries int, delay time.Duration) (*redis.Client, error) {
	return withRetry(ctx, logger, "redis", retries, delay, func(ctx context.Context) (*redis.Client, error) {
		return newRedis(ctx, opts)
	})
}

func withRetry[T any](ctx context.Context, logger logx.Logger, what string, retries int, delay time.Duration, connect func(context.Context) (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)
	for i := 1; i <= retries; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		v, err := connect(attemptCtx)
		cancel()
		if err == nil {
			logger.Info(what+" connected", logx.Int("attempt", i))
			return v, nil
		}
		lastErr = err
		logger.Warn(what+" connect failed",
			logx.Int("attempt", i),
			logx.Int("retries", retries),
			logx.Err(err),
		)
		if i < retries {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return zero, fmt.Errorf("%s connect failed after %d attempts: %w", what, retries, lastErr)
}
