package cache

import (
	"context"
	"errors"
	"time"

	"gitee.com/flycash/message-dispatch/internal/domain"
)

const (
	TemplatePrefix     = "template_config:"
	DefaultExpiredTime = 24 * time.Hour
)

var ErrKeyNotFound = errors.New("key not found")

// TemplateCache 模板配置缓存，未命中返回 ErrKeyNotFound
type TemplateCache interface {
	Get(ctx context.Context, templateID string) (domain.TemplateConfig, error)
	Set(ctx context.Context, cfg domain.TemplateConfig) error
	Del(ctx context.Context, templateID string) error
}

func TemplateKey(templateID string) string {
	return TemplatePrefix + templateID
}
