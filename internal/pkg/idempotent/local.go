package idempotent

import (
	"context"
	"time"

	ca "github.com/patrickmn/go-cache"
)

var _ Guard = (*LocalGuard)(nil)

// LocalGuard 单机部署时使用，go-cache 的 Add 在键存在时返回错误，本身是原子的
type LocalGuard struct {
	c *ca.Cache
}

func NewLocalGuard(c *ca.Cache) *LocalGuard {
	return &LocalGuard{c: c}
}

func (g *LocalGuard) TrySet(_ context.Context, key string, ttl time.Duration) (bool, error) {
	if err := g.c.Add(key, struct{}{}, ttl); err != nil {
		return false, nil
	}
	return true, nil
}
