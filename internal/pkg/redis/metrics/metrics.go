package metrics

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

var (
	commandCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "message_dispatch",
			Name:      "redis_commands_total",
			Help:      "Redis 命令执行次数",
		},
		[]string{"command", "status"},
	)

	commandDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace:  "message_dispatch",
			Name:       "redis_command_duration_seconds",
			Help:       "Redis 命令耗时",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"command"},
	)

	pipelineDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace:  "message_dispatch",
			Name:       "redis_pipeline_duration_seconds",
			Help:       "Redis 管道耗时",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"status"},
	)

	dialCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "message_dispatch",
			Name:      "redis_dials_total",
			Help:      "Redis 建立连接次数",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(commandCounter, commandDuration, pipelineDuration, dialCounter)
}

// Hook 幂等判断、限流和模板缓存都走 redis，这里统一采集耗时
type Hook struct{}

func (Hook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		commandDuration.WithLabelValues(cmd.Name()).Observe(time.Since(start).Seconds())
		commandCounter.WithLabelValues(cmd.Name(), status(err)).Inc()
		return err
	}
}

func (Hook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		st := status(err)
		for _, cmd := range cmds {
			if status(cmd.Err()) == statusError {
				st = statusError
				break
			}
		}
		pipelineDuration.WithLabelValues(st).Observe(time.Since(start).Seconds())
		return err
	}
}

func (Hook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		dialCounter.WithLabelValues(status(err)).Inc()
		return conn, err
	}
}

// redis.Nil 不算错误
func status(err error) string {
	if err != nil && !errors.Is(err, redis.Nil) {
		return statusError
	}
	return statusSuccess
}

func WithMetrics(client *redis.Client) *redis.Client {
	client.AddHook(Hook{})
	return client
}
