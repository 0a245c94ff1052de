package provider

import (
	"context"

	"gitee.com/flycash/message-dispatch/internal/domain"
)

// Provider 一个具体的发送渠道
// 供应商侧的失败（参数、额度、网络）通过 SendOutcome 返回，只有内部错误才返回 error
//
//go:generate mockgen -source=./types.go -destination=./mocks/provider.mock.go -package=providermocks Provider,Selector
type Provider interface {
	Send(ctx context.Context, evt domain.MessageSendEvent, tmpl domain.TemplateConfig) (domain.SendOutcome, error)
}

// Selector 为事件选择本次的发送渠道
type Selector interface {
	// Select 短信会修改 evt 的候选渠道和当前渠道
	Select(ctx context.Context, evt *domain.MessageSendEvent) (Provider, error)
}
