package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// windowScript increments the counter of the current window and sets its
// expiry on first use. Returns the count after the increment.
var windowScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// RedisWindow is a fixed-window limiter shared by every replica through Redis.
// Each window allows Burst requests and lasts Burst/Rate seconds.
type RedisWindow struct {
	rdb    redis.Scripter
	prefix string
	limit  int64
	window time.Duration
	clock  Clock
}

// NewRedisWindow returns a RedisWindow storing counters under "<prefix>:rl:".
func NewRedisWindow(rdb redis.Scripter, prefix string, clock Clock, cfg Config) *RedisWindow {
	cfg = cfg.normalized()
	if clock == nil {
		clock = RealClock{}
	}
	window := time.Duration(float64(cfg.Burst) / cfg.Rate * float64(time.Second))
	if window < time.Millisecond {
		window = time.Millisecond
	}
	return &RedisWindow{
		rdb:    rdb,
		prefix: prefix + ":rl:",
		limit:  int64(cfg.Burst),
		window: window,
		clock:  clock,
	}
}

// Allow counts the request in the window that contains now.
func (l *RedisWindow) Allow(ctx context.Context, key string) (bool, error) {
	slot := l.clock.Now().UnixNano() / int64(l.window)
	k := l.prefix + key + ":" + strconv.FormatInt(slot, 10)

	n, err := windowScript.Run(ctx, l.rdb, []string{k}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return n <= l.limit, nil
}
