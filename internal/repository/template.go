package repository

import (
	"context"
	"encoding/json"
	"errors"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/repository/cache"
	"gitee.com/flycash/message-dispatch/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
)

// TemplateRepository 模板配置，读取顺序 本地缓存 -> redis -> 数据库
//
//go:generate mockgen -source=./template.go -destination=./mocks/template.mock.go -package=repomocks TemplateRepository
type TemplateRepository interface {
	Get(ctx context.Context, templateID string) (domain.TemplateConfig, error)
	// Refresh 从数据库重新加载并覆盖两级缓存
	Refresh(ctx context.Context, templateID string) error
	// Evict 删除两级缓存
	Evict(ctx context.Context, templateID string) error
	Save(ctx context.Context, cfg domain.TemplateConfig) error
}

type templateRepository struct {
	dao        dao.TemplateConfigDAO
	localCache cache.TemplateCache
	redisCache cache.TemplateCache
	logger     *elog.Component
}

func NewTemplateRepository(d dao.TemplateConfigDAO, localCache, redisCache cache.TemplateCache) TemplateRepository {
	return &templateRepository{
		dao:        d,
		localCache: localCache,
		redisCache: redisCache,
		logger:     elog.DefaultLogger,
	}
}

func (r *templateRepository) Get(ctx context.Context, templateID string) (domain.TemplateConfig, error) {
	cfg, err := r.localCache.Get(ctx, templateID)
	if err == nil {
		return cfg, nil
	}
	cfg, err = r.redisCache.Get(ctx, templateID)
	if err == nil {
		_ = r.localCache.Set(ctx, cfg)
		return cfg, nil
	}
	if !errors.Is(err, cache.ErrKeyNotFound) {
		// redis 出问题了，降级查库
		r.logger.Warn("从 redis 获取模板失败", elog.String("templateId", templateID), elog.FieldErr(err))
	}
	return r.load(ctx, templateID)
}

func (r *templateRepository) Refresh(ctx context.Context, templateID string) error {
	_, err := r.load(ctx, templateID)
	return err
}

func (r *templateRepository) Evict(ctx context.Context, templateID string) error {
	_ = r.localCache.Del(ctx, templateID)
	return r.redisCache.Del(ctx, templateID)
}

func (r *templateRepository) Save(ctx context.Context, cfg domain.TemplateConfig) error {
	entity, err := r.toEntity(cfg)
	if err != nil {
		return err
	}
	if err = r.dao.Upsert(ctx, entity); err != nil {
		return err
	}
	return r.Evict(ctx, cfg.TemplateID)
}

func (r *templateRepository) load(ctx context.Context, templateID string) (domain.TemplateConfig, error) {
	entity, err := r.dao.GetByTemplateID(ctx, templateID)
	if err != nil {
		return domain.TemplateConfig{}, err
	}
	cfg, err := r.toDomain(entity)
	if err != nil {
		return domain.TemplateConfig{}, err
	}
	if err = r.redisCache.Set(ctx, cfg); err != nil {
		r.logger.Warn("模板写入 redis 失败", elog.String("templateId", templateID), elog.FieldErr(err))
	}
	_ = r.localCache.Set(ctx, cfg)
	return cfg, nil
}

func (r *templateRepository) toDomain(entity dao.TemplateConfig) (domain.TemplateConfig, error) {
	var channelTemplates map[string]domain.ChannelTemplate
	if len(entity.ChannelTemplates) > 0 {
		if err := json.Unmarshal(entity.ChannelTemplates, &channelTemplates); err != nil {
			return domain.TemplateConfig{}, err
		}
	}
	return domain.TemplateConfig{
		TemplateID:       entity.TemplateID,
		Name:             entity.Name,
		Content:          entity.Content,
		ChannelIDs:       entity.ChannelIDs,
		ChannelTemplates: channelTemplates,
		EnableStatus:     domain.TemplateStatus(entity.EnableStatus),
		Ctime:            entity.Ctime,
		Utime:            entity.Utime,
	}, nil
}

func (r *templateRepository) toEntity(cfg domain.TemplateConfig) (dao.TemplateConfig, error) {
	channelTemplates, err := json.Marshal(cfg.ChannelTemplates)
	if err != nil {
		return dao.TemplateConfig{}, err
	}
	return dao.TemplateConfig{
		TemplateID:       cfg.TemplateID,
		Name:             cfg.Name,
		Content:          cfg.Content,
		ChannelIDs:       cfg.ChannelIDs,
		ChannelTemplates: channelTemplates,
		EnableStatus:     int8(cfg.EnableStatus),
	}, nil
}
