package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/ekit/retry"
)

type Config struct {
	// fixed 或者 exponential
	Type               string                    `yaml:"type"`
	FixedInterval      *FixedIntervalConfig      `yaml:"fixedInterval"`
	ExponentialBackoff *ExponentialBackoffConfig `yaml:"exponentialBackoff"`
}

type ExponentialBackoffConfig struct {
	InitialInterval time.Duration `yaml:"initialInterval"`
	MaxInterval     time.Duration `yaml:"maxInterval"`
	MaxRetries      int32         `yaml:"maxRetries"`
}

type FixedIntervalConfig struct {
	Interval   time.Duration `yaml:"interval"`
	MaxRetries int32         `yaml:"maxRetries"`
}

// DefaultConfig 启动阶段等待依赖就绪
var DefaultConfig = Config{
	Type: "exponential",
	ExponentialBackoff: &ExponentialBackoffConfig{
		InitialInterval: time.Second,
		MaxInterval:     10 * time.Second,
		MaxRetries:      10,
	},
}

func NewStrategy(cfg Config) (retry.Strategy, error) {
	switch cfg.Type {
	case "fixed":
		if cfg.FixedInterval == nil {
			return nil, fmt.Errorf("缺少 fixedInterval 配置")
		}
		return retry.NewFixedIntervalRetryStrategy(cfg.FixedInterval.Interval, cfg.FixedInterval.MaxRetries)
	case "exponential":
		if cfg.ExponentialBackoff == nil {
			return nil, fmt.Errorf("缺少 exponentialBackoff 配置")
		}
		b := cfg.ExponentialBackoff
		return retry.NewExponentialBackoffRetryStrategy(b.InitialInterval, b.MaxInterval, b.MaxRetries)
	default:
		return nil, fmt.Errorf("未知的重试策略: %s", cfg.Type)
	}
}

// Do 直到 fn 成功或者重试次数耗尽，返回最后一次的错误
func Do(ctx context.Context, s retry.Strategy, fn func(ctx context.Context) error) error {
	for {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		next, ok := s.Next()
		if !ok {
			return fmt.Errorf("重试次数耗尽: %w", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(next):
		}
	}
}
