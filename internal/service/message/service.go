package message

import (
	"context"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/service/chain"
)

// IDGenerator 生成 msgId
type IDGenerator interface {
	NextMsgID() (string, error)
}

type messageService struct {
	runner   *chain.Runner
	idGen    IDGenerator
	producer SendEventProducer
	handler  *SendHandler
}

func NewService(runner *chain.Runner, idGen IDGenerator, producer SendEventProducer, handler *SendHandler) Service {
	return &messageService{
		runner:   runner,
		idGen:    idGen,
		producer: producer,
		handler:  handler,
	}
}

func (s *messageService) Send(ctx context.Context, req domain.MessageSendRequest) (string, error) {
	evt, err := s.buildEvent(ctx, req)
	if err != nil {
		return "", err
	}
	if err = s.producer.Produce(ctx, evt); err != nil {
		return "", err
	}
	return evt.MsgID, nil
}

func (s *messageService) SyncSend(ctx context.Context, req domain.MessageSendRequest) (string, *domain.SendOutcome, error) {
	evt, err := s.buildEvent(ctx, req)
	if err != nil {
		return "", nil, err
	}
	return evt.MsgID, s.handler.Handle(ctx, evt), nil
}

func (s *messageService) buildEvent(ctx context.Context, req domain.MessageSendRequest) (domain.MessageSendEvent, error) {
	if req.CallbackConfig != nil {
		// 统一转成小写，校验链里会检查取值
		cfg := *req.CallbackConfig
		if t, err := domain.ParseCallbackType(cfg.Type); err == nil {
			cfg.Type = string(t)
		}
		req.CallbackConfig = &cfg
	}
	if err := s.runner.Run(ctx, chain.PipelineMessageSend, req); err != nil {
		return domain.MessageSendEvent{}, err
	}
	msgID, err := s.idGen.NextMsgID()
	if err != nil {
		return domain.MessageSendEvent{}, err
	}
	return domain.MessageSendEvent{
		MsgID:   msgID,
		Request: req,
	}, nil
}
