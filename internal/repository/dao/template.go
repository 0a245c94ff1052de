package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/message-dispatch/internal/errs"
	pkgdao "gitee.com/flycash/message-dispatch/internal/pkg/dao"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TemplateConfig 消息模板配置表
type TemplateConfig struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	TemplateID string `gorm:"type:VARCHAR(64);NOT NULL;uniqueIndex:uk_template_id;comment:'模板ID'"`
	Name       string `gorm:"type:VARCHAR(128);NOT NULL;comment:'模板名称'"`
	Content    string `gorm:"type:TEXT;NOT NULL;comment:'模板内容，参数占位符为 {1} {2}'"`
	ChannelIDs string `gorm:"type:VARCHAR(512);NOT NULL;comment:'逗号分隔的渠道ID'"`
	// 渠道ID到签名、渠道模板编码的映射
	ChannelTemplates pkgdao.JSON `gorm:"type:JSON;comment:'各渠道报备的模板'"`
	EnableStatus     int8        `gorm:"type:TINYINT;NOT NULL;DEFAULT:0;comment:'0-启用 1-禁用'"`
	Ctime            int64
	Utime            int64
}

func (TemplateConfig) TableName() string {
	return "template_config"
}

type TemplateConfigDAO interface {
	GetByTemplateID(ctx context.Context, templateID string) (TemplateConfig, error)
	// Upsert 按照 template_id 插入或者更新
	Upsert(ctx context.Context, cfg TemplateConfig) error
}

type templateConfigDAO struct {
	db *egorm.Component
}

func NewTemplateConfigDAO(db *egorm.Component) TemplateConfigDAO {
	return &templateConfigDAO{db: db}
}

func (d *templateConfigDAO) GetByTemplateID(ctx context.Context, templateID string) (TemplateConfig, error) {
	var res TemplateConfig
	err := d.db.WithContext(ctx).Where("template_id = ?", templateID).First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return TemplateConfig{}, fmt.Errorf("%w: templateId=%s", errs.ErrTemplateNotFound, templateID)
	}
	return res, err
}

func (d *templateConfigDAO) Upsert(ctx context.Context, cfg TemplateConfig) error {
	now := time.Now().UnixMilli()
	cfg.Ctime, cfg.Utime = now, now
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		DoUpdates: clause.Assignments(map[string]any{
			"name":              cfg.Name,
			"content":           cfg.Content,
			"channel_ids":       cfg.ChannelIDs,
			"channel_templates": cfg.ChannelTemplates,
			"enable_status":     cfg.EnableStatus,
			"utime":             now,
		}),
	}).Create(&cfg).Error
}
