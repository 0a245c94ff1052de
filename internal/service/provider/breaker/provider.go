package breaker

import (
	"context"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/service/provider"
	"github.com/go-kratos/aegis/circuitbreaker"
	"github.com/go-kratos/aegis/circuitbreaker/sre"
	"github.com/gotomicro/ego/core/elog"
)

var _ provider.Provider = (*Provider)(nil)

// Provider 熔断装饰器，熔断期间直接返回失败结果，让上层切换渠道
type Provider struct {
	provider provider.Provider
	breaker  circuitbreaker.CircuitBreaker
	name     string
	logger   *elog.Component
}

func NewProvider(name string, p provider.Provider, opts ...sre.Option) *Provider {
	return NewProviderWithBreaker(name, p, sre.NewBreaker(opts...))
}

func NewProviderWithBreaker(name string, p provider.Provider, b circuitbreaker.CircuitBreaker) *Provider {
	return &Provider{
		provider: p,
		breaker:  b,
		name:     name,
		logger:   elog.DefaultLogger.With(elog.String("provider", name)),
	}
}

func (p *Provider) Send(ctx context.Context, evt domain.MessageSendEvent, tmpl domain.TemplateConfig) (domain.SendOutcome, error) {
	if err := p.breaker.Allow(); err != nil {
		p.logger.Warn("发送渠道已熔断",
			elog.String("msgId", evt.MsgID),
			elog.String("channel", evt.CurrentSendChannel))
		return domain.FailedOutcome(domain.OutcomeCodeBreakerOpen, err.Error()), nil
	}
	outcome, err := p.provider.Send(ctx, evt, tmpl)
	// 业务上的失败码也算失败，例如供应商限流
	if err != nil || !outcome.Success {
		p.breaker.MarkFailed()
	} else {
		p.breaker.MarkSuccess()
	}
	return outcome, err
}
