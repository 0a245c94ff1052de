package message

import (
	"context"
	"encoding/json"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/errs"
	"gitee.com/flycash/message-dispatch/internal/pkg/idempotent"
	"gitee.com/flycash/message-dispatch/internal/pkg/mqx"
	msgsvc "gitee.com/flycash/message-dispatch/internal/service/message"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

const (
	VerificationSendGroup = "message_send_verification_group"
	OtherSendGroup        = "message_send_other_group"
)

// SendConsumer 消费待发送的消息
type SendConsumer struct {
	*mqx.TagConsumer
	guard   idempotent.Guard
	prefix  string
	handler *msgsvc.SendHandler
	logger  *elog.Component
}

// NewVerificationSendConsumer 只处理验证码短信
func NewVerificationSendConsumer(q mq.MQ, guard idempotent.Guard, handler *msgsvc.SendHandler, limit int) (*SendConsumer, error) {
	return newSendConsumer(q, VerificationSendGroup, TagVerificationSend, idempotent.PrefixSMSVerificationSend, guard, handler, limit)
}

func NewOtherSendConsumer(q mq.MQ, guard idempotent.Guard, handler *msgsvc.SendHandler, limit int) (*SendConsumer, error) {
	return newSendConsumer(q, OtherSendGroup, TagOtherSend, idempotent.PrefixOtherSend, guard, handler, limit)
}

func newSendConsumer(q mq.MQ, group, tag, prefix string,
	guard idempotent.Guard, handler *msgsvc.SendHandler, limit int,
) (*SendConsumer, error) {
	c := &SendConsumer{
		guard:   guard,
		prefix:  prefix,
		handler: handler,
		logger:  elog.DefaultLogger.With(elog.String("consumer", group)),
	}
	tc, err := mqx.NewTagConsumer(q, SendTopic, group, []string{tag}, limit, c.Handle)
	if err != nil {
		return nil, err
	}
	c.TagConsumer = tc
	return c, nil
}

func (c *SendConsumer) Handle(ctx context.Context, msg *mq.Message) error {
	w, err := Decode[domain.MessageSendEvent](msg)
	if err != nil {
		return err
	}
	evt := w.Data
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	ok, err := c.guard.TrySet(ctx, idempotent.Key(c.prefix, evt.MsgID, payload), idempotent.DefaultTTL)
	if err != nil {
		// 幂等判断失败时继续发送，宁可重复也不丢
		c.logger.Warn("幂等判断失败", elog.String("msgId", evt.MsgID), elog.FieldErr(err))
	} else if !ok {
		c.logger.Info("跳过消息", elog.String("msgId", evt.MsgID), elog.FieldErr(errs.ErrDuplicateDelivery), elog.String("traceId", w.TraceID))
		return nil
	}
	c.handler.Handle(ctx, evt)
	return nil
}
