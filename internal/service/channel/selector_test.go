//go:build unit

package channel

import (
	"context"
	"sync"
	"testing"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/errs"
	"gitee.com/flycash/message-dispatch/internal/pkg/registry"
	"gitee.com/flycash/message-dispatch/internal/service/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordProvider 记录调用过的渠道
type recordProvider struct {
	mu      sync.Mutex
	name    string
	fail    bool
	visited []string
}

func (p *recordProvider) Send(_ context.Context, evt domain.MessageSendEvent, _ domain.TemplateConfig) (domain.SendOutcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visited = append(p.visited, evt.CurrentSendChannel)
	if p.fail {
		return domain.FailedOutcome("isv.BUSINESS_LIMIT_CONTROL", p.name+" 发送失败"), nil
	}
	return domain.SuccessOutcome(), nil
}

func newTestRegistry(providers map[string]provider.Provider) *registry.Registry[provider.Provider] {
	r := registry.New[provider.Provider]("sender")
	for k, p := range providers {
		r.MustRegister(k, p)
	}
	return r
}

func TestSelector_Select(t *testing.T) {
	t.Parallel()

	ali := &recordProvider{name: "ali"}
	mail := &recordProvider{name: "mail"}
	s := NewSelector(NewWeightedSelector(testRules()).WithRand(fixedRand(0.1)), newTestRegistry(map[string]provider.Provider{
		"SMS_MESSAGE_ALI":    ali,
		domain.PlatformEmail: mail,
	}))

	t.Run("短信按权重选择并剔除候选", func(t *testing.T) {
		t.Parallel()
		evt := &domain.MessageSendEvent{
			Request:             domain.MessageSendRequest{MsgType: domain.MessageTypeSMSVerification},
			SmsOptionalChannels: []string{"ALI_01", "TX_01"},
		}
		p, err := s.Select(context.Background(), evt)
		require.NoError(t, err)
		assert.Same(t, ali, p)
		assert.Equal(t, "ALI_01", evt.CurrentSendChannel)
		assert.Equal(t, []string{"TX_01"}, evt.SmsOptionalChannels)
	})

	t.Run("短信渠道没有注册实现", func(t *testing.T) {
		t.Parallel()
		evt := &domain.MessageSendEvent{
			Request:             domain.MessageSendRequest{MsgType: domain.MessageTypeSMSInform},
			SmsOptionalChannels: []string{"TX_01"},
		}
		_, err := s.Select(context.Background(), evt)
		assert.ErrorIs(t, err, errs.ErrStrategyNotFound)
		assert.Empty(t, evt.SmsOptionalChannels)
	})

	t.Run("邮件直接按平台查找", func(t *testing.T) {
		t.Parallel()
		evt := &domain.MessageSendEvent{
			Request: domain.MessageSendRequest{MsgType: domain.MessageTypeEmail},
		}
		p, err := s.Select(context.Background(), evt)
		require.NoError(t, err)
		assert.Same(t, mail, p)
		assert.Equal(t, domain.PlatformEmail, evt.CurrentSendChannel)
	})

	t.Run("推送没有注册", func(t *testing.T) {
		t.Parallel()
		evt := &domain.MessageSendEvent{
			Request: domain.MessageSendRequest{MsgType: domain.MessageTypePushTemplate},
		}
		_, err := s.Select(context.Background(), evt)
		assert.ErrorIs(t, err, errs.ErrStrategyNotFound)
	})
}

// 渠道 A 权重 90 且一直失败，最终都会通过渠道 B 发送成功
func TestDispatcher_FailoverToSecondChannel(t *testing.T) {
	t.Parallel()

	rules := NewStaticRules([]domain.WeightRuleSet{{
		Name: domain.RuleSetGeneral,
		Weights: []domain.ChannelWeight{
			{ChannelID: "ALI_01", Weight: "90"},
			{ChannelID: "TX_01", Weight: "10"},
		},
	}})
	for i := 0; i < 200; i++ {
		ali := &recordProvider{name: "ali", fail: true}
		tx := &recordProvider{name: "tx"}
		d := provider.NewDispatcher(NewSelector(NewWeightedSelector(rules), newTestRegistry(map[string]provider.Provider{
			"SMS_MESSAGE_ALI": ali,
			"SMS_MESSAGE_TX":  tx,
		})))
		evt := &domain.MessageSendEvent{
			MsgID:               "1",
			Request:             domain.MessageSendRequest{MsgType: domain.MessageTypeSMSVerification, Receiver: "13800138000"},
			SmsOptionalChannels: []string{"ALI_01", "TX_01"},
		}
		outcome, err := d.Send(context.Background(), evt, domain.TemplateConfig{})
		require.NoError(t, err)
		assert.True(t, outcome.Success)
		assert.Equal(t, "TX_01", evt.CurrentSendChannel)
		assert.Equal(t, []string{"TX_01"}, tx.visited)
		assert.LessOrEqual(t, len(ali.visited), 1)
		assert.NotContains(t, evt.SmsOptionalChannels, "TX_01")
	}
}

// 所有渠道都失败时，每个渠道只尝试一次
func TestDispatcher_AllChannelsFailed(t *testing.T) {
	t.Parallel()

	rules := NewStaticRules([]domain.WeightRuleSet{{
		Name: domain.RuleSetGeneral,
		Weights: []domain.ChannelWeight{
			{ChannelID: "ALI_01", Weight: "50"},
			{ChannelID: "ALI_02", Weight: "30"},
			{ChannelID: "TX_01", Weight: "20"},
		},
	}})
	ali := &recordProvider{name: "ali", fail: true}
	tx := &recordProvider{name: "tx", fail: true}
	d := provider.NewDispatcher(NewSelector(NewWeightedSelector(rules), newTestRegistry(map[string]provider.Provider{
		"SMS_MESSAGE_ALI": ali,
		"SMS_MESSAGE_TX":  tx,
	})))
	evt := &domain.MessageSendEvent{
		Request:             domain.MessageSendRequest{MsgType: domain.MessageTypeSMSInform},
		SmsOptionalChannels: []string{"ALI_01", "ALI_02", "TX_01"},
	}
	outcome, err := d.Send(context.Background(), evt, domain.TemplateConfig{})
	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.NotEmpty(t, outcome.ErrMsg)

	visited := append(append([]string{}, ali.visited...), tx.visited...)
	assert.ElementsMatch(t, []string{"ALI_01", "ALI_02", "TX_01"}, visited)
	assert.Empty(t, evt.SmsOptionalChannels)
}
