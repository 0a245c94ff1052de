package ioc

import (
	"os"
	"time"

	"gitee.com/flycash/message-dispatch/internal/pkg/idempotent"
	"gitee.com/flycash/message-dispatch/internal/repository"
	"gitee.com/flycash/message-dispatch/internal/repository/cache/local"
	rediscache "gitee.com/flycash/message-dispatch/internal/repository/cache/redis"
	"gitee.com/flycash/message-dispatch/internal/repository/dao"
	"github.com/gofrs/uuid"
	"github.com/gotomicro/ego/core/econf"
	ca "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// InitGoCache 本地缓存默认过期时间兜底，变更消息丢失时最多在这个时间内读到旧模板
func InitGoCache() *ca.Cache {
	type Config struct {
		LocalTTL time.Duration `yaml:"localTTL"`
	}
	cfg := Config{LocalTTL: 5 * time.Minute}
	if err := econf.UnmarshalKey("cache", &cfg); err != nil {
		panic(err)
	}
	const cleanupInterval = 10 * time.Minute
	return ca.New(cfg.LocalTTL, cleanupInterval)
}

// InstanceID 当前实例在集群内的唯一标识
type InstanceID string

// InitInstanceID 主机名在集群内唯一，拿不到时退化成随机 ID
func InitInstanceID() InstanceID {
	if name, err := os.Hostname(); err == nil && name != "" {
		return InstanceID(name)
	}
	return InstanceID(uuid.Must(uuid.NewV4()).String())
}

func InitTemplateRepository(d dao.TemplateConfigDAO, c *ca.Cache, rdb redis.Cmdable) repository.TemplateRepository {
	return repository.NewTemplateRepository(d, local.NewCache(c), rediscache.NewCache(rdb))
}

// InitGuard 单机部署时可以不依赖 redis
func InitGuard(rdb redis.Cmdable, c *ca.Cache) idempotent.Guard {
	type Config struct {
		Type string `yaml:"type"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("idempotent", &cfg); err != nil {
		panic(err)
	}
	if cfg.Type == "local" {
		return idempotent.NewLocalGuard(c)
	}
	return idempotent.NewRedisGuard(rdb)
}
