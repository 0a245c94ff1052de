package sms

import (
	"context"
	"fmt"
	"strings"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/errs"
	"gitee.com/flycash/message-dispatch/internal/service/provider"
	"gitee.com/flycash/message-dispatch/internal/service/provider/sms/client"
	"github.com/gotomicro/ego/core/elog"
)

var _ provider.Provider = (*smsProvider)(nil)

// smsProvider 一个短信供应商，例如阿里云、腾讯云
type smsProvider struct {
	name   string
	client client.Client
	logger *elog.Component
}

// NewSMSProvider name 是供应商前缀，例如 ALI
func NewSMSProvider(name string, c client.Client) provider.Provider {
	return &smsProvider{
		name:   name,
		client: c,
		logger: elog.DefaultLogger.With(elog.String("provider", name)),
	}
}

// Send 调用供应商接口失败也只返回失败结果，由上层决定是否切换渠道
func (p *smsProvider) Send(ctx context.Context, evt domain.MessageSendEvent, tmpl domain.TemplateConfig) (domain.SendOutcome, error) {
	ct := tmpl.ChannelTemplate(evt.CurrentSendChannel)
	resp, err := p.client.Send(ctx, client.SendReq{
		PhoneNumbers:   []string{evt.Request.Receiver},
		SignName:       ct.SignName,
		TemplateID:     ct.TemplateCode,
		TemplateParams: evt.Request.ParamList,
		NamedParams:    ct.NamedParams(evt.Request.ParamList),
		OutID:          evt.MsgID,
	})
	if err != nil {
		p.logger.Error("短信供应商调用失败",
			elog.String("msgId", evt.MsgID),
			elog.String("channel", evt.CurrentSendChannel),
			elog.FieldErr(fmt.Errorf("%w: %w", errs.ErrProviderFailure, err)))
		return domain.FailedOutcome(domain.OutcomeCodeClientError, err.Error()), nil
	}

	status, ok := resp.PhoneNumbers[strings.TrimPrefix(evt.Request.Receiver, "+86")]
	if !ok {
		return domain.FailedOutcome(domain.OutcomeCodeClientError, "供应商没有返回手机号的发送状态"), nil
	}
	if status.Code != client.OK {
		return domain.FailedOutcome(status.Code, status.Message), nil
	}
	return domain.SuccessOutcome(), nil
}
