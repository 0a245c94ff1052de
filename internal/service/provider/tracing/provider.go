package tracing

import (
	"context"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/service/provider"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ provider.Provider = (*Provider)(nil)

// Provider 为发送渠道添加链路追踪的装饰器
type Provider struct {
	provider provider.Provider
	tracer   trace.Tracer
}

func NewProvider(p provider.Provider) *Provider {
	return &Provider{
		provider: p,
		tracer:   otel.Tracer("message-dispatch/provider"),
	}
}

func (p *Provider) Send(ctx context.Context, evt domain.MessageSendEvent, tmpl domain.TemplateConfig) (domain.SendOutcome, error) {
	ctx, span := p.tracer.Start(ctx, "Provider.Send",
		trace.WithAttributes(
			attribute.String("message.id", evt.MsgID),
			attribute.String("message.type", evt.Request.MsgType.String()),
			attribute.String("message.templateId", evt.Request.TemplateID),
			attribute.String("message.channel", evt.CurrentSendChannel),
		))
	defer span.End()

	outcome, err := p.provider.Send(ctx, evt, tmpl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return outcome, err
	}
	span.SetAttributes(
		attribute.Bool("message.success", outcome.Success),
		attribute.String("message.code", outcome.ProviderCode),
	)
	if !outcome.Success {
		span.SetStatus(codes.Error, outcome.ErrMsg)
	}
	return outcome, nil
}
