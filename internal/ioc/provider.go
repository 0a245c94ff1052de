package ioc

import (
	"net/http"
	"time"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/pkg/registry"
	"gitee.com/flycash/message-dispatch/internal/service/channel"
	"gitee.com/flycash/message-dispatch/internal/service/provider"
	"gitee.com/flycash/message-dispatch/internal/service/provider/breaker"
	"gitee.com/flycash/message-dispatch/internal/service/provider/console"
	"gitee.com/flycash/message-dispatch/internal/service/provider/email"
	"gitee.com/flycash/message-dispatch/internal/service/provider/metrics"
	"gitee.com/flycash/message-dispatch/internal/service/provider/push"
	"gitee.com/flycash/message-dispatch/internal/service/provider/sms"
	"gitee.com/flycash/message-dispatch/internal/service/provider/sms/client"
	"gitee.com/flycash/message-dispatch/internal/service/provider/tracing"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
)

// decorate 熔断在最里层，熔断拒绝的请求也会计入指标
func decorate(name string, p provider.Provider) provider.Provider {
	return metrics.NewProvider(name, tracing.NewProvider(breaker.NewProvider(name, p)))
}

// InitProviderRegistry 没有配置的平台使用 console 实现，只打印日志
func InitProviderRegistry(smsClients map[string]client.Client) *registry.Registry[provider.Provider] {
	type Config struct {
		Email struct {
			SMTP email.SMTPConfig `yaml:"smtp"`
		} `yaml:"email"`
		Push struct {
			Wechat push.WechatConfig `yaml:"wechat"`
		} `yaml:"push"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("provider", &cfg); err != nil {
		panic(err)
	}

	reg := registry.New[provider.Provider]("provider")
	for _, name := range []string{SMSProviderAliyun, SMSProviderTencent} {
		key := channel.SMSProviderKey(name)
		var p provider.Provider
		if c, ok := smsClients[name]; ok {
			p = sms.NewSMSProvider(name, c)
		} else {
			elog.DefaultLogger.Warn("短信供应商没有配置，使用 console", elog.String("provider", name))
			p = console.NewProvider()
		}
		reg.MustRegister(key, decorate(key, p))
	}

	var mailP provider.Provider = console.NewProvider()
	if cfg.Email.SMTP.Host != "" {
		mailP = email.NewProvider(email.NewSMTPMailer(cfg.Email.SMTP))
	}
	reg.MustRegister(domain.PlatformEmail, decorate(domain.PlatformEmail, mailP))

	var pushP provider.Provider = console.NewProvider()
	if cfg.Push.Wechat.AppID != "" {
		pushP = push.NewProvider(push.NewWechatClient(cfg.Push.Wechat, &http.Client{Timeout: 5 * time.Second}))
	}
	reg.MustRegister(domain.PlatformPushTemplate, decorate(domain.PlatformPushTemplate, pushP))
	return reg
}

func InitDispatcher(selector *channel.Selector) *provider.Dispatcher {
	return provider.NewDispatcher(selector)
}
