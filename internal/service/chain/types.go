package chain

import (
	"context"

	"gitee.com/flycash/message-dispatch/internal/domain"
)

// PipelineMessageSend 消息发送前的参数校验链
const PipelineMessageSend = "MESSAGE_SEND_FILTER"

// Handler 校验器，不允许修改请求
type Handler interface {
	Validate(ctx context.Context, req domain.MessageSendRequest) error
}

// HandlerFunc 方便测试和简单的校验
type HandlerFunc func(ctx context.Context, req domain.MessageSendRequest) error

func (f HandlerFunc) Validate(ctx context.Context, req domain.MessageSendRequest) error {
	return f(ctx, req)
}
