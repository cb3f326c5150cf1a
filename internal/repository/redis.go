package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the pickup store client.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedis creates and pings a Redis client.
func NewRedis(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
