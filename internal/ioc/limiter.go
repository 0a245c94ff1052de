package ioc

import (
	"time"

	"gitee.com/flycash/message-dispatch/internal/pkg/ratelimit"
	"gitee.com/flycash/message-dispatch/internal/service/chain"
	"github.com/gotomicro/ego/core/econf"
	"github.com/redis/go-redis/v9"
)

// InitSendRunner 验证码短信按手机号限流
func InitSendRunner(rdb redis.Cmdable) *chain.Runner {
	type Config struct {
		Window time.Duration `yaml:"window"`
		Rate   int           `yaml:"rate"`
	}
	cfg := Config{Window: time.Minute, Rate: 1}
	if err := econf.UnmarshalKey("limit", &cfg); err != nil {
		panic(err)
	}
	limiter := ratelimit.NewRedisSlidingWindowLimiter(rdb, "sms_verification", cfg.Window, cfg.Rate)
	return chain.NewMessageSendRunner(limiter)
}
