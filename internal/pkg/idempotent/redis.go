package idempotent

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ Guard = (*RedisGuard)(nil)

// RedisGuard 基于 SET NX EX
type RedisGuard struct {
	client redis.Cmdable
}

func NewRedisGuard(client redis.Cmdable) *RedisGuard {
	return &RedisGuard{client: client}
}

func (g *RedisGuard) TrySet(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return g.client.SetNX(ctx, key, 1, ttl).Result()
}
