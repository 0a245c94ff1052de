package message

import (
	"context"

	"gitee.com/flycash/message-dispatch/internal/domain"
)

//go:generate mockgen -source=./types.go -destination=./mocks/message.mock.go -package=messagemocks Service,SendEventProducer,SaveEventProducer,CallbackEventProducer,Dispatcher

// Service 消息发送服务
type Service interface {
	// Send 校验通过之后投递到消息队列，立刻返回 msgId
	Send(ctx context.Context, req domain.MessageSendRequest) (string, error)
	// SyncSend 校验通过之后在当前请求里完成发送
	SyncSend(ctx context.Context, req domain.MessageSendRequest) (string, *domain.SendOutcome, error)
}

// SendEventProducer 投递待发送的消息，tag 由消息类型决定
type SendEventProducer interface {
	Produce(ctx context.Context, evt domain.MessageSendEvent) error
}

// SaveEventProducer 投递发送记录入库事件
type SaveEventProducer interface {
	Produce(ctx context.Context, evt domain.SaveEvent) error
}

// CallbackEventProducer 投递回调调用方的事件，tag 为 serviceName_bizScene
type CallbackEventProducer interface {
	Produce(ctx context.Context, evt domain.CallbackEvent) error
}

// Dispatcher 选择渠道并发送，失败时切换渠道
type Dispatcher interface {
	Send(ctx context.Context, evt *domain.MessageSendEvent, tmpl domain.TemplateConfig) (domain.SendOutcome, error)
}
