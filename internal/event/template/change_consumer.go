package template

import (
	"context"
	"fmt"
	"strconv"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/pkg/mqx"
	"gitee.com/flycash/message-dispatch/internal/repository"
	"gitee.com/flycash/message-dispatch/internal/repository/dao"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
	"github.com/tidwall/gjson"
)

const (
	BinlogTopic = "message_template_binlog"
	changeGroup = "message_template_cache_group"
)

// ChangeConsumer 监听模板表的 binlog，维护模板缓存
// 消息格式为 canal 的 flat message
// 本地缓存每个实例都有一份，所以每个实例使用自己的消费者组，都能收到全部变更
type ChangeConsumer struct {
	*mqx.TagConsumer
	repo   repository.TemplateRepository
	table  string
	logger *elog.Component
}

// NewChangeConsumer instanceID 在集群内唯一，例如主机名
func NewChangeConsumer(q mq.MQ, repo repository.TemplateRepository, instanceID string) (*ChangeConsumer, error) {
	group := ChangeGroup(instanceID)
	c := &ChangeConsumer{
		repo:   repo,
		table:  dao.TemplateConfig{}.TableName(),
		logger: elog.DefaultLogger.With(elog.String("consumer", group)),
	}
	// 只有一个 goroutine 处理，保证同一模板的变更按顺序生效
	tc, err := mqx.NewTagConsumer(q, BinlogTopic, group, nil, 1, c.Handle)
	if err != nil {
		return nil, err
	}
	c.TagConsumer = tc
	return c, nil
}

func ChangeGroup(instanceID string) string {
	return changeGroup + "_" + instanceID
}

func (c *ChangeConsumer) Handle(ctx context.Context, msg *mq.Message) error {
	if !gjson.ValidBytes(msg.Value) {
		return fmt.Errorf("binlog 消息格式错误: %s", msg.Value)
	}
	res := gjson.ParseBytes(msg.Value)
	if res.Get("type").String() != "UPDATE" || res.Get("table").String() != c.table {
		return nil
	}
	for _, row := range res.Get("data").Array() {
		if err := c.apply(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

func (c *ChangeConsumer) apply(ctx context.Context, row gjson.Result) error {
	templateID := row.Get("template_id").String()
	if templateID == "" {
		return nil
	}
	// canal 里面的列值都是字符串
	status, err := strconv.Atoi(row.Get("enable_status").String())
	if err != nil {
		return fmt.Errorf("enable_status 格式错误 %s: %w", templateID, err)
	}
	if domain.TemplateStatus(status) == domain.TemplateStatusDisabled {
		c.logger.Info("模板被禁用，删除缓存", elog.String("templateId", templateID))
		return c.repo.Evict(ctx, templateID)
	}
	c.logger.Info("模板变更，刷新缓存", elog.String("templateId", templateID))
	return c.repo.Refresh(ctx, templateID)
}
