package provider

import (
	"context"
	"errors"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/errs"
	"github.com/gotomicro/ego/core/elog"
)

// Dispatcher 对外伪装成 Provider，负责选择渠道和失败之后切换渠道
type Dispatcher struct {
	selector Selector
	logger   *elog.Component
}

func NewDispatcher(selector Selector) *Dispatcher {
	return &Dispatcher{
		selector: selector,
		logger:   elog.DefaultLogger,
	}
}

// Send 发送失败并且还有候选短信渠道时重新选择渠道再发
// 候选渠道每次都会减少，最多尝试 len(SmsOptionalChannels)+1 次
func (d *Dispatcher) Send(ctx context.Context, evt *domain.MessageSendEvent, tmpl domain.TemplateConfig) (domain.SendOutcome, error) {
	maxAttempts := len(evt.SmsOptionalChannels) + 1
	var last *domain.SendOutcome
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		outcome, err := d.sendOnce(ctx, evt, tmpl)
		switch {
		case errors.Is(err, errs.ErrSelectionExhausted):
			d.logger.Warn("没有可用的发送渠道",
				elog.String("msgId", evt.MsgID),
				elog.Int("attempt", attempt),
				elog.FieldErr(err))
			if last != nil {
				return *last, nil
			}
			return domain.FailedOutcome(domain.OutcomeCodeSelectionExhausted, err.Error()), nil
		case err != nil:
			return domain.SendOutcome{}, err
		}

		d.logger.Info("消息发送完成",
			elog.String("msgId", evt.MsgID),
			elog.String("channel", evt.CurrentSendChannel),
			elog.Int("attempt", attempt),
			elog.Any("outcome", outcome))
		if outcome.Success {
			return outcome, nil
		}
		last = &outcome
		if !evt.Request.MsgType.IsSMS() || len(evt.SmsOptionalChannels) == 0 {
			break
		}
	}
	return *last, nil
}

func (d *Dispatcher) sendOnce(ctx context.Context, evt *domain.MessageSendEvent, tmpl domain.TemplateConfig) (domain.SendOutcome, error) {
	p, err := d.selector.Select(ctx, evt)
	if errors.Is(err, errs.ErrStrategyNotFound) {
		// 配置问题，当作一次失败的发送，短信还可以换其它渠道
		d.logger.Error("发送渠道没有注册实现",
			elog.String("msgId", evt.MsgID),
			elog.String("channel", evt.CurrentSendChannel),
			elog.FieldErr(err))
		return domain.FailedOutcome(domain.OutcomeCodeStrategyNotFound, err.Error()), nil
	}
	if err != nil {
		return domain.SendOutcome{}, err
	}
	return p.Send(ctx, *evt, tmpl)
}
