package push

import (
	"context"
	"strconv"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/service/provider"
	"github.com/gotomicro/ego/core/elog"
)

// TemplateSender 发送公众号模板消息
type TemplateSender interface {
	SendTemplate(ctx context.Context, msg TemplateMessage) (WechatResult, error)
}

var _ provider.Provider = (*Provider)(nil)

// Provider 微信模板消息，接收者是 openid
type Provider struct {
	sender TemplateSender
	logger *elog.Component
}

func NewProvider(sender TemplateSender) *Provider {
	return &Provider{
		sender: sender,
		logger: elog.DefaultLogger.With(elog.String("provider", domain.PlatformPushTemplate)),
	}
}

func (p *Provider) Send(ctx context.Context, evt domain.MessageSendEvent, tmpl domain.TemplateConfig) (domain.SendOutcome, error) {
	ct := tmpl.ChannelTemplate(domain.PlatformPushTemplate)
	templateID := ct.TemplateCode
	if templateID == "" {
		templateID = tmpl.TemplateID
	}
	res, err := p.sender.SendTemplate(ctx, TemplateMessage{
		ToUser:     evt.Request.Receiver,
		TemplateID: templateID,
		Data:       ct.NamedParams(evt.Request.ParamList),
	})
	if err != nil {
		p.logger.Error("模板消息发送失败", elog.String("msgId", evt.MsgID), elog.FieldErr(err))
		return domain.FailedOutcome(domain.OutcomeCodeClientError, err.Error()), nil
	}
	if res.ErrCode != 0 {
		return domain.FailedOutcome(strconv.FormatInt(res.ErrCode, 10), res.ErrMsg), nil
	}
	return domain.SuccessOutcome(), nil
}
