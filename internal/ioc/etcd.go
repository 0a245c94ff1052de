package ioc

import (
	"context"
	"time"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/pkg/registry"
	"gitee.com/flycash/message-dispatch/internal/service/channel"
	"gitee.com/flycash/message-dispatch/internal/service/provider"
	"github.com/ego-component/eetcd"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
)

func InitEtcdClient() *eetcd.Component {
	return eetcd.Load("etcd").Build()
}

// InitWeightRules 配置文件里的规则兜底，etcd 里有配置的时候以 etcd 为准
func InitWeightRules(client *eetcd.Component) *channel.EtcdRules {
	type Config struct {
		EtcdKey  string                 `yaml:"etcdKey"`
		RuleSets []domain.WeightRuleSet `yaml:"ruleSets"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("weight", &cfg); err != nil {
		panic(err)
	}
	rules := channel.NewEtcdRules(client, cfg.EtcdKey, cfg.RuleSets)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rules.Load(ctx); err != nil {
		elog.DefaultLogger.Warn("读取 etcd 里的权重配置失败，使用本地配置", elog.FieldErr(err))
	}
	return rules
}

func InitSelector(rules *channel.EtcdRules, providers *registry.Registry[provider.Provider]) *channel.Selector {
	return channel.NewSelector(channel.NewWeightedSelector(rules), providers)
}

// RulesTask 监听 etcd 里的权重配置
type RulesTask struct {
	rules *channel.EtcdRules
}

func InitRulesTask(rules *channel.EtcdRules) *RulesTask {
	return &RulesTask{rules: rules}
}

func (t *RulesTask) Start(ctx context.Context) {
	t.rules.Watch(ctx)
}
