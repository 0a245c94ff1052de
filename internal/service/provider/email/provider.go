package email

import (
	"context"
	"strings"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/service/provider"
	"github.com/gotomicro/ego/core/elog"
)

var _ provider.Provider = (*Provider)(nil)

type Provider struct {
	mailer Mailer
	logger *elog.Component
}

func NewProvider(mailer Mailer) *Provider {
	return &Provider{
		mailer: mailer,
		logger: elog.DefaultLogger.With(elog.String("provider", domain.PlatformEmail)),
	}
}

// Send 模板名称作为标题，渲染之后的内容作为正文
func (p *Provider) Send(ctx context.Context, evt domain.MessageSendEvent, tmpl domain.TemplateConfig) (domain.SendOutcome, error) {
	body := tmpl.Render(evt.Request.ParamList)
	err := p.mailer.Send(ctx, Mail{
		To:      evt.Request.Receiver,
		Subject: tmpl.Name,
		Body:    body,
		HTML:    strings.HasPrefix(strings.TrimSpace(body), "<"),
	})
	if err != nil {
		p.logger.Error("邮件发送失败", elog.String("msgId", evt.MsgID), elog.FieldErr(err))
		return domain.FailedOutcome(domain.OutcomeCodeClientError, err.Error()), nil
	}
	return domain.SuccessOutcome(), nil
}
