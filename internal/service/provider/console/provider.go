package console

import (
	"context"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"github.com/gotomicro/ego/core/elog"
)

// Provider 只输出到日志，本地开发时替代真实的发送渠道
type Provider struct {
	logger *elog.Component
}

func NewProvider() *Provider {
	return &Provider{
		logger: elog.DefaultLogger,
	}
}

func (p *Provider) Send(_ context.Context, evt domain.MessageSendEvent, tmpl domain.TemplateConfig) (domain.SendOutcome, error) {
	p.logger.Info("发送消息",
		elog.String("msgId", evt.MsgID),
		elog.String("channel", evt.CurrentSendChannel),
		elog.String("receiver", evt.Request.Receiver),
		elog.String("content", tmpl.Render(evt.Request.ParamList)))
	return domain.SuccessOutcome(), nil
}
