package channel

import (
	"context"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/pkg/registry"
	"gitee.com/flycash/message-dispatch/internal/service/provider"
)

var _ provider.Selector = (*Selector)(nil)

// Selector 短信按权重选择渠道，其它类型直接按平台查找发送实现
type Selector struct {
	weighted  *WeightedSelector
	providers *registry.Registry[provider.Provider]
}

func NewSelector(weighted *WeightedSelector, providers *registry.Registry[provider.Provider]) *Selector {
	return &Selector{
		weighted:  weighted,
		providers: providers,
	}
}

func (s *Selector) Select(_ context.Context, evt *domain.MessageSendEvent) (provider.Provider, error) {
	msgType := evt.Request.MsgType
	if !msgType.IsSMS() {
		evt.CurrentSendChannel = msgType.Platform()
		return s.providers.Resolve(msgType.Platform())
	}

	channelID, err := s.weighted.Choose(msgType, evt.SmsOptionalChannels)
	if err != nil {
		return nil, err
	}
	// 选中的渠道从候选里去掉，重试时不会再选到
	evt.RemoveChannel(channelID)
	evt.CurrentSendChannel = channelID
	return s.providers.Resolve(SMSProviderKey(channelID))
}

// SMSProviderKey 短信渠道在注册表里的 key，例如 ALI_01 -> SMS_MESSAGE_ALI
func SMSProviderKey(channelID string) string {
	return domain.PlatformSMS + domain.ProviderOfChannel(channelID)
}
