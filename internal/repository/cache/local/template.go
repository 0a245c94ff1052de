package local

import (
	"context"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/repository/cache"
	ca "github.com/patrickmn/go-cache"
)

var _ cache.TemplateCache = (*Cache)(nil)

// Cache 进程内缓存，每个实例都监听模板变更，过期时间兜底
type Cache struct {
	c *ca.Cache
}

func NewCache(c *ca.Cache) *Cache {
	return &Cache{c: c}
}

func (l *Cache) Get(_ context.Context, templateID string) (domain.TemplateConfig, error) {
	v, ok := l.c.Get(cache.TemplateKey(templateID))
	if !ok {
		return domain.TemplateConfig{}, cache.ErrKeyNotFound
	}
	return v.(domain.TemplateConfig), nil
}

func (l *Cache) Set(_ context.Context, cfg domain.TemplateConfig) error {
	l.c.Set(cache.TemplateKey(cfg.TemplateID), cfg, ca.DefaultExpiration)
	return nil
}

func (l *Cache) Del(_ context.Context, templateID string) error {
	l.c.Delete(cache.TemplateKey(templateID))
	return nil
}
