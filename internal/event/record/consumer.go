package record

import (
	"context"
	"encoding/json"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/errs"
	msgevt "gitee.com/flycash/message-dispatch/internal/event/message"
	"gitee.com/flycash/message-dispatch/internal/pkg/idempotent"
	"gitee.com/flycash/message-dispatch/internal/pkg/mqx"
	recordsvc "gitee.com/flycash/message-dispatch/internal/service/record"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

const SaveGroup = "message_record_save_group"

// SaveConsumer 发送记录入库，失败只记录日志不重试
type SaveConsumer struct {
	*mqx.TagConsumer
	guard  idempotent.Guard
	svc    recordsvc.Service
	logger *elog.Component
}

func NewSaveConsumer(q mq.MQ, guard idempotent.Guard, svc recordsvc.Service, limit int) (*SaveConsumer, error) {
	c := &SaveConsumer{
		guard:  guard,
		svc:    svc,
		logger: elog.DefaultLogger.With(elog.String("consumer", SaveGroup)),
	}
	tc, err := mqx.NewTagConsumer(q, msgevt.RecordTopic, SaveGroup, []string{msgevt.TagSave}, limit, c.Handle)
	if err != nil {
		return nil, err
	}
	c.TagConsumer = tc
	return c, nil
}

func (c *SaveConsumer) Handle(ctx context.Context, msg *mq.Message) error {
	w, err := msgevt.Decode[domain.SaveEvent](msg)
	if err != nil {
		return err
	}
	evt := w.Data
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	ok, err := c.guard.TrySet(ctx, idempotent.Key(idempotent.PrefixCommonSave, evt.MsgID, payload), idempotent.DefaultTTL)
	if err != nil {
		// 数据库唯一索引兜底
		c.logger.Warn("幂等判断失败", elog.String("msgId", evt.MsgID), elog.FieldErr(err))
	} else if !ok {
		c.logger.Info("跳过消息", elog.String("msgId", evt.MsgID), elog.FieldErr(errs.ErrDuplicateDelivery))
		return nil
	}
	return c.svc.Save(ctx, evt)
}
