package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/repository/cache"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var _ cache.TemplateCache = (*Cache)(nil)

type Cache struct {
	rdb redis.Cmdable
}

func NewCache(rdb redis.Cmdable) *Cache {
	return &Cache{
		rdb: rdb,
	}
}

func (c *Cache) Get(ctx context.Context, templateID string) (domain.TemplateConfig, error) {
	val, err := c.rdb.Get(ctx, cache.TemplateKey(templateID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.TemplateConfig{}, cache.ErrKeyNotFound
		}
		return domain.TemplateConfig{}, fmt.Errorf("failed to get template from redis %w", err)
	}
	var cfg domain.TemplateConfig
	if err = json.Unmarshal([]byte(val), &cfg); err != nil {
		return domain.TemplateConfig{}, fmt.Errorf("failed to unmarshal template data %w", err)
	}
	return cfg, nil
}

func (c *Cache) Set(ctx context.Context, cfg domain.TemplateConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal template data %w", err)
	}
	err = c.rdb.Set(ctx, cache.TemplateKey(cfg.TemplateID), data, cache.DefaultExpiredTime).Err()
	if err != nil {
		return fmt.Errorf("failed to set template to redis %w", err)
	}
	return nil
}

func (c *Cache) Del(ctx context.Context, templateID string) error {
	return c.rdb.Del(ctx, cache.TemplateKey(templateID)).Err()
}
