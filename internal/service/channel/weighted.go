package channel

import (
	"fmt"
	"math/rand/v2"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/errs"
	"github.com/ecodeclub/ekit/slice"
)

// RuleSource 权重规则来源
type RuleSource interface {
	// RuleSet 不存在时返回 nil
	RuleSet(name string) []domain.ChannelWeight
}

type weighted struct {
	channelID string
	weight    int
}

// WeightedSelector 按权重随机选择短信渠道
// 候选集合每次请求都不一样，所以每次都重新计算累积分布
type WeightedSelector struct {
	rules RuleSource
	// 返回 [0,1) 的随机数
	rand func() float64
}

func NewWeightedSelector(rules RuleSource) *WeightedSelector {
	return &WeightedSelector{
		rules: rules,
		rand:  rand.Float64,
	}
}

// WithRand 替换随机源
func (s *WeightedSelector) WithRand(fn func() float64) *WeightedSelector {
	s.rand = fn
	return s
}

// Choose 在 available 和规则的交集里，按权重选择一个渠道
func (s *WeightedSelector) Choose(msgType domain.MessageType, available []string) (string, error) {
	ruleSet := domain.RuleSetName(msgType)
	candidates, total, err := s.intersect(s.rules.RuleSet(ruleSet), available)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 || total == 0 {
		return "", fmt.Errorf("%w: 规则 %s 候选渠道 %v", errs.ErrSelectionExhausted, ruleSet, available)
	}

	// 左闭右开的区间，按规则顺序累加
	r := s.rand()
	var lo float64
	for _, c := range candidates {
		hi := lo + float64(c.weight)/float64(total)
		if r >= lo && r < hi {
			return c.channelID, nil
		}
		lo = hi
	}
	// 各区间按实数算恰好铺满 [0, 1)，浮点累加可能让 lo 停在略小于 1 的位置。
	// [lo, 1) 这段空隙本属于最后一个权重非零的渠道，只有它走这里；
	// r 不在 [0, 1) 内仍然返回 ErrSelectionInternal
	if r >= lo && r < 1 {
		for i := len(candidates) - 1; i >= 0; i-- {
			if candidates[i].weight > 0 {
				return candidates[i].channelID, nil
			}
		}
	}
	return "", fmt.Errorf("%w: r=%f 候选渠道 %v", errs.ErrSelectionInternal, r, available)
}

// intersect 保持规则里的顺序
func (s *WeightedSelector) intersect(rules []domain.ChannelWeight, available []string) ([]weighted, int, error) {
	res := make([]weighted, 0, len(rules))
	total := 0
	for _, rule := range rules {
		if !slice.Contains(available, rule.ChannelID) {
			continue
		}
		w, err := rule.WeightValue()
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %w", errs.ErrSelectionExhausted, err)
		}
		res = append(res, weighted{channelID: rule.ChannelID, weight: w})
		total += w
	}
	return res, total, nil
}
