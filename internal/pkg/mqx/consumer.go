package mqx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

var consumedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "message_dispatch",
	Name:      "consumer_messages_total",
	Help:      "消费者处理的消息数",
}, []string{"consumer", "result"})

func init() {
	prometheus.MustRegister(consumedCounter)
}

// HeaderTag 消息头里的 tag，同一个 topic 用 tag 区分消息
const HeaderTag = "tag"

const retryInterval = time.Second

type Handler func(ctx context.Context, msg *mq.Message) error

// TagConsumer 只处理指定 tag 的消息，最多 limit 个消息并发处理
type TagConsumer struct {
	name     string
	consumer mq.Consumer
	tags     []string
	limit    int
	handler  Handler
	logger   *elog.Component
}

// NewTagConsumer tags 为空表示处理所有消息
func NewTagConsumer(q mq.MQ, topic, groupID string, tags []string, limit int, handler Handler) (*TagConsumer, error) {
	consumer, err := q.Consumer(topic, groupID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 1
	}
	return &TagConsumer{
		name:     groupID,
		consumer: consumer,
		tags:     tags,
		limit:    limit,
		handler:  handler,
		logger:   elog.DefaultLogger.With(elog.String("consumer", groupID)),
	}, nil
}

// Start 阻塞，ctx 被取消并且正在处理的消息都处理完之后返回
func (c *TagConsumer) Start(ctx context.Context) {
	for {
		er := c.Consume(ctx)
		if ctx.Err() != nil {
			c.logger.Info("消费者退出")
			return
		}
		if er != nil {
			c.logger.Error("消费消息失败", elog.FieldErr(er))
			sleep(ctx, retryInterval)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Consume ctx 结束之后等待正在处理的消息处理完毕再返回
func (c *TagConsumer) Consume(ctx context.Context) error {
	msgCh, err := c.consumer.ConsumeChan(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}
	// 正在处理的消息不受 ctx 取消的影响
	handleCtx := context.WithoutCancel(ctx)
	var eg errgroup.Group
	eg.SetLimit(c.limit)
	for {
		select {
		case <-ctx.Done():
			_ = eg.Wait()
			return ctx.Err()
		case msg, ok := <-msgCh:
			if !ok {
				_ = eg.Wait()
				return errors.New("消息通道已关闭")
			}
			if !c.accept(msg) {
				consumedCounter.WithLabelValues(c.name, "skipped").Inc()
				continue
			}
			eg.Go(func() error {
				if er := c.handler(handleCtx, msg); er != nil {
					consumedCounter.WithLabelValues(c.name, "failed").Inc()
					c.logger.Error("处理消息失败",
						elog.String("topic", msg.Topic),
						elog.Int64("offset", msg.Offset),
						elog.FieldErr(er))
					return nil
				}
				consumedCounter.WithLabelValues(c.name, "handled").Inc()
				return nil
			})
		}
	}
}

func (c *TagConsumer) accept(msg *mq.Message) bool {
	if len(c.tags) == 0 {
		return true
	}
	return slice.Contains(c.tags, msg.Header[HeaderTag])
}
