package channel

import (
	"context"
	"sync/atomic"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"github.com/gotomicro/ego/core/elog"
	clientv3 "go.etcd.io/etcd/client/v3"
	"gopkg.in/yaml.v2"
)

type ruleSets map[string][]domain.ChannelWeight

// buildRuleSets 同一个规则集合里渠道只保留第一次出现的配置，权重非法的渠道直接去掉
func buildRuleSets(sets []domain.WeightRuleSet, logger *elog.Component) ruleSets {
	res := make(ruleSets, len(sets))
	for _, set := range sets {
		seen := make(map[string]struct{}, len(set.Weights))
		weights := make([]domain.ChannelWeight, 0, len(set.Weights))
		for _, w := range set.Weights {
			if _, ok := seen[w.ChannelID]; ok {
				logger.Warn("权重规则里渠道重复，忽略",
					elog.String("ruleSet", set.Name),
					elog.String("channelId", w.ChannelID))
				continue
			}
			seen[w.ChannelID] = struct{}{}
			if _, err := w.WeightValue(); err != nil {
				logger.Warn("权重规则里权重非法，忽略",
					elog.String("ruleSet", set.Name),
					elog.FieldErr(err))
				continue
			}
			weights = append(weights, w)
		}
		res[set.Name] = weights
	}
	return res
}

// StaticRules 启动时从配置文件加载
type StaticRules struct {
	sets ruleSets
}

func NewStaticRules(sets []domain.WeightRuleSet) *StaticRules {
	return &StaticRules{sets: buildRuleSets(sets, elog.DefaultLogger)}
}

func (r *StaticRules) RuleSet(name string) []domain.ChannelWeight {
	return r.sets[name]
}

// EtcdKV clientv3.Client 的子集
type EtcdKV interface {
	Get(ctx context.Context, key string, opts ...clientv3.OpOption) (*clientv3.GetResponse, error)
	Watch(ctx context.Context, key string, opts ...clientv3.OpOption) clientv3.WatchChan
}

// EtcdRules 权重规则放在 etcd 里，修改之后实时生效
// 值是 yaml 格式的 []domain.WeightRuleSet
type EtcdRules struct {
	client EtcdKV
	key    string
	sets   atomic.Pointer[ruleSets]
	logger *elog.Component
}

// NewEtcdRules fallback 在 etcd 里没有配置时使用
func NewEtcdRules(client EtcdKV, key string, fallback []domain.WeightRuleSet) *EtcdRules {
	r := &EtcdRules{
		client: client,
		key:    key,
		logger: elog.DefaultLogger.With(elog.String("key", key)),
	}
	sets := buildRuleSets(fallback, r.logger)
	r.sets.Store(&sets)
	return r
}

func (r *EtcdRules) RuleSet(name string) []domain.ChannelWeight {
	return (*r.sets.Load())[name]
}

// Load 读取一次 etcd 里的配置
func (r *EtcdRules) Load(ctx context.Context) error {
	resp, err := r.client.Get(ctx, r.key)
	if err != nil {
		return err
	}
	if len(resp.Kvs) == 0 {
		return nil
	}
	return r.update(resp.Kvs[0].Value)
}

// Watch 阻塞直到 ctx 被取消
func (r *EtcdRules) Watch(ctx context.Context) {
	watchChan := r.client.Watch(ctx, r.key)
	for {
		select {
		case <-ctx.Done():
			return
		case watchResp, ok := <-watchChan:
			if !ok {
				return
			}
			if err := watchResp.Err(); err != nil {
				r.logger.Error("监听权重配置失败", elog.FieldErr(err))
				continue
			}
			for _, event := range watchResp.Events {
				if event.Type != clientv3.EventTypePut {
					// 删除配置时保留当前规则
					continue
				}
				if err := r.update(event.Kv.Value); err != nil {
					r.logger.Error("权重配置格式错误，忽略本次变更", elog.FieldErr(err))
				}
			}
		}
	}
}

func (r *EtcdRules) update(val []byte) error {
	var cfg []domain.WeightRuleSet
	if err := yaml.Unmarshal(val, &cfg); err != nil {
		return err
	}
	sets := buildRuleSets(cfg, r.logger)
	r.sets.Store(&sets)
	r.logger.Info("权重配置已更新", elog.Any("rules", cfg))
	return nil
}
