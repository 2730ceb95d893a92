package metrics

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Counter tracks per-operation usage. Counts are observability only and
// never affect routing or correctness, so increments are best-effort.
type Counter interface {
	Increment(ctx context.Context, name string)
}

type RedisCounter struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisCounter(rdb *redis.Client, prefix string) *RedisCounter {
	return &RedisCounter{rdb: rdb, prefix: prefix}
}

func (c *RedisCounter) Increment(ctx context.Context, name string) {
	c.rdb.Incr(ctx, c.prefix+name)
}

type NoopCounter struct{}

func (NoopCounter) Increment(context.Context, string) {}
