package domain

import (
	"fmt"
	"strconv"
	"strings"

	"gitee.com/flycash/message-dispatch/internal/errs"
)

// 权重规则集合名称
const (
	RuleSetGeneral   = "general"
	RuleSetMarketing = "marketing"
)

// ChannelWeight 渠道权重配置，权重在配置里是字符串
type ChannelWeight struct {
	ChannelID string `yaml:"channelId" json:"channelId"`
	Weight    string `yaml:"weight" json:"weight"`
}

func (w ChannelWeight) WeightValue() (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(w.Weight))
	if err != nil {
		return 0, fmt.Errorf("%w: 渠道 %s 权重 %q 非法", errs.ErrInvalidParameter, w.ChannelID, w.Weight)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: 渠道 %s 权重 %d 为负数", errs.ErrInvalidParameter, w.ChannelID, v)
	}
	return v, nil
}

type WeightRuleSet struct {
	Name    string          `yaml:"name" json:"name"`
	Weights []ChannelWeight `yaml:"weights" json:"weights"`
}

// RuleSetName 营销短信使用营销规则，其余使用通用规则
func RuleSetName(t MessageType) string {
	if t == MessageTypeSMSMarketing {
		return RuleSetMarketing
	}
	return RuleSetGeneral
}

// ProviderOfChannel 渠道 ID 的第一段是供应商，例如 ALI_01 -> ALI
func ProviderOfChannel(channelID string) string {
	provider, _, _ := strings.Cut(channelID, "_")
	return provider
}
