// Package metrics 为发送渠道添加指标收集的装饰器
package metrics

import (
	"context"
	"strconv"
	"time"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/service/provider"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	sendDurationSummary = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "provider_send_duration_seconds",
			Help:       "发送渠道调用耗时统计（秒）",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.95: 0.005, 0.99: 0.001},
			MaxAge:     time.Minute * 5,
		},
		[]string{"provider", "channel", "success"},
	)
	sendStatusCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_send_status_total",
			Help: "发送渠道结果统计",
		},
		[]string{"provider", "channel", "success", "code"},
	)
)

func init() {
	prometheus.MustRegister(sendDurationSummary, sendStatusCounter)
}

var _ provider.Provider = (*Provider)(nil)

// Provider 为发送渠道添加指标收集的装饰器
type Provider struct {
	provider provider.Provider
	name     string
}

func NewProvider(name string, p provider.Provider) *Provider {
	return &Provider{
		provider: p,
		name:     name,
	}
}

func (p *Provider) Send(ctx context.Context, evt domain.MessageSendEvent, tmpl domain.TemplateConfig) (domain.SendOutcome, error) {
	startTime := time.Now()
	outcome, err := p.provider.Send(ctx, evt, tmpl)
	duration := time.Since(startTime).Seconds()

	code := outcome.ProviderCode
	if err != nil {
		code = "internal_error"
	}
	success := strconv.FormatBool(err == nil && outcome.Success)
	sendStatusCounter.WithLabelValues(p.name, evt.CurrentSendChannel, success, code).Inc()
	sendDurationSummary.WithLabelValues(p.name, evt.CurrentSendChannel, success).Observe(duration)
	return outcome, err
}
