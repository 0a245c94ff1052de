package message

import (
	"context"
	"errors"
	"fmt"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/errs"
	"gitee.com/flycash/message-dispatch/internal/repository"
	"github.com/gotomicro/ego/core/elog"
)

// SendHandler 处理一条待发送的消息：查模板、发送、投递回调和入库事件
// 消费者和同步发送共用
type SendHandler struct {
	templates  repository.TemplateRepository
	dispatcher Dispatcher
	callback   CallbackEventProducer
	save       SaveEventProducer
	logger     *elog.Component
}

func NewSendHandler(templates repository.TemplateRepository,
	dispatcher Dispatcher,
	callback CallbackEventProducer,
	save SaveEventProducer,
) *SendHandler {
	return &SendHandler{
		templates:  templates,
		dispatcher: dispatcher,
		callback:   callback,
		save:       save,
		logger:     elog.DefaultLogger,
	}
}

// Handle 内部错误时 outcome 为 nil，但是依旧会投递回调和入库事件
func (h *SendHandler) Handle(ctx context.Context, evt domain.MessageSendEvent) *domain.SendOutcome {
	outcome := h.send(ctx, &evt)
	h.emitCallback(ctx, evt, outcome)
	h.emitSave(ctx, evt, outcome)
	return outcome
}

func (h *SendHandler) send(ctx context.Context, evt *domain.MessageSendEvent) *domain.SendOutcome {
	tmpl, err := h.template(ctx, evt.Request.TemplateID)
	if errors.Is(err, errs.ErrTemplateNotFound) || errors.Is(err, errs.ErrTemplateDisabled) {
		h.logger.Warn("模板不可用",
			elog.String("msgId", evt.MsgID),
			elog.String("templateId", evt.Request.TemplateID),
			elog.FieldErr(err))
		outcome := domain.FailedOutcome(domain.OutcomeCodeTemplateUnavailable, err.Error())
		return &outcome
	}
	if err != nil {
		h.logger.Error("查询模板失败",
			elog.String("msgId", evt.MsgID),
			elog.String("templateId", evt.Request.TemplateID),
			elog.FieldErr(err))
		return nil
	}

	if evt.Request.MsgType.IsSMS() {
		evt.SmsOptionalChannels = tmpl.Channels()
	}
	outcome, err := h.dispatcher.Send(ctx, evt, tmpl)
	if err != nil {
		h.logger.Error("消息发送流程异常",
			elog.String("msgId", evt.MsgID),
			elog.String("channel", evt.CurrentSendChannel),
			elog.FieldErr(err))
		return nil
	}
	return &outcome
}

func (h *SendHandler) template(ctx context.Context, templateID string) (domain.TemplateConfig, error) {
	tmpl, err := h.templates.Get(ctx, templateID)
	if err != nil {
		return domain.TemplateConfig{}, err
	}
	if !tmpl.Enabled() {
		return domain.TemplateConfig{}, fmt.Errorf("%w: templateId=%s", errs.ErrTemplateDisabled, templateID)
	}
	return tmpl, nil
}

func (h *SendHandler) emitCallback(ctx context.Context, evt domain.MessageSendEvent, outcome *domain.SendOutcome) {
	cfg := evt.Request.CallbackConfig
	if cfg == nil {
		return
	}
	success := outcome != nil && outcome.Success
	if !domain.CallbackType(cfg.Type).Accept(success) {
		return
	}
	callbackEvt := domain.CallbackEvent{
		MsgID:   evt.MsgID,
		Success: success,
		Request: evt.Request,
	}
	if !success {
		callbackEvt.ErrMsg = domain.DefaultCallbackErrMsg
		if outcome != nil && outcome.ErrMsg != "" {
			callbackEvt.ErrMsg = outcome.ErrMsg
		}
	}
	if err := h.callback.Produce(ctx, callbackEvt); err != nil {
		h.logger.Error("投递回调事件失败", elog.String("msgId", evt.MsgID), elog.FieldErr(err))
	}
}

func (h *SendHandler) emitSave(ctx context.Context, evt domain.MessageSendEvent, outcome *domain.SendOutcome) {
	err := h.save.Produce(ctx, domain.SaveEvent{
		MsgID:              evt.MsgID,
		Request:            evt.Request,
		Outcome:            outcome,
		CurrentSendChannel: evt.CurrentSendChannel,
	})
	if err != nil {
		h.logger.Error("投递入库事件失败", elog.String("msgId", evt.MsgID), elog.FieldErr(err))
	}
}
