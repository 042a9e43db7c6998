package repo

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

type Redis struct{ C *redis.Client }

func NewRedis(addr string) *Redis {
	return &Redis{C: redis.NewClient(&redis.Options{Addr: addr})}
}

func (r *Redis) Ping(ctx context.Context) error { return r.C.Ping(ctx).Err() }
func (r *Redis) Close() error                   { return r.C.Close() }

// Allow is a fixed-window counter: at most limit hits per key per window.
// Fails open on Redis errors so auth stays available when Redis is down.
func (r *Redis) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	n, err := r.C.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if n == 1 {
		r.C.Expire(ctx, key, window)
	}
	return n <= int64(limit)
}
