package mqx

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
	"github.com/hashicorp/go-multierror"
)

const pollTimeout = 100 * time.Millisecond

var _ mq.MQ = (*KafkaMQ)(nil)

// KafkaConsumer confluent 消费者里用到的方法
type KafkaConsumer interface {
	SubscribeTopics(topics []string, rebalanceCb kafka.RebalanceCb) error
	ReadMessage(timeout time.Duration) (*kafka.Message, error)
	Close() error
}

type KafkaConfig struct {
	Addr string `yaml:"addr"`
	// 没有提交过位点时从哪里开始消费
	AutoOffsetReset string `yaml:"autoOffsetReset"`
}

// KafkaMQ 基于 confluent-kafka-go 实现 mq.MQ，所有 topic 共用一个生产者
type KafkaMQ struct {
	cfg      KafkaConfig
	admin    *kafka.AdminClient
	producer *kafka.Producer

	mu        sync.Mutex
	consumers []KafkaConsumer
	logger    *elog.Component
}

func NewKafkaMQ(cfg KafkaConfig) (*KafkaMQ, error) {
	if cfg.AutoOffsetReset == "" {
		cfg.AutoOffsetReset = "earliest"
	}
	admin, err := kafka.NewAdminClient(&kafka.ConfigMap{"bootstrap.servers": cfg.Addr})
	if err != nil {
		return nil, fmt.Errorf("创建kafka连接失败: %w", err)
	}
	producer, err := kafka.NewProducer(&kafka.ConfigMap{"bootstrap.servers": cfg.Addr})
	if err != nil {
		admin.Close()
		return nil, fmt.Errorf("创建生产者失败: %w", err)
	}
	return &KafkaMQ{
		cfg:      cfg,
		admin:    admin,
		producer: producer,
		logger:   elog.DefaultLogger,
	}, nil
}

// CreateTopic topic 已经存在不算错误
func (m *KafkaMQ) CreateTopic(ctx context.Context, topic string, partitions int) error {
	results, err := m.admin.CreateTopics(ctx, []kafka.TopicSpecification{
		{Topic: topic, NumPartitions: partitions, ReplicationFactor: 1},
	})
	if err != nil {
		return err
	}
	for _, result := range results {
		if result.Error.Code() != kafka.ErrNoError && result.Error.Code() != kafka.ErrTopicAlreadyExists {
			return fmt.Errorf("创建topic失败 %s: %w", result.Topic, result.Error)
		}
	}
	return nil
}

func (m *KafkaMQ) DeleteTopics(ctx context.Context, topics ...string) error {
	results, err := m.admin.DeleteTopics(ctx, topics)
	if err != nil {
		return err
	}
	var errs error
	for _, result := range results {
		if result.Error.Code() != kafka.ErrNoError && result.Error.Code() != kafka.ErrUnknownTopicOrPart {
			errs = multierror.Append(errs, fmt.Errorf("删除topic失败 %s: %w", result.Topic, result.Error))
		}
	}
	return errs
}

func (m *KafkaMQ) Producer(topic string) (mq.Producer, error) {
	return &kafkaProducer{producer: m.producer, topic: topic}, nil
}

func (m *KafkaMQ) Consumer(topic, groupID string) (mq.Consumer, error) {
	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  m.cfg.Addr,
		"group.id":           groupID,
		"auto.offset.reset":  m.cfg.AutoOffsetReset,
		"enable.auto.commit": true,
	})
	if err != nil {
		return nil, err
	}
	return m.newConsumer(c, topic)
}

func (m *KafkaMQ) newConsumer(c KafkaConsumer, topic string) (mq.Consumer, error) {
	if err := c.SubscribeTopics([]string{topic}, nil); err != nil {
		_ = c.Close()
		return nil, err
	}
	m.mu.Lock()
	m.consumers = append(m.consumers, c)
	m.mu.Unlock()
	return &kafkaConsumer{consumer: c, logger: m.logger}, nil
}

func (m *KafkaMQ) Close() error {
	var errs error
	m.mu.Lock()
	for _, c := range m.consumers {
		if err := c.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	m.consumers = nil
	m.mu.Unlock()
	m.producer.Flush(int(time.Second.Milliseconds()))
	m.producer.Close()
	m.admin.Close()
	return errs
}

type kafkaProducer struct {
	producer *kafka.Producer
	topic    string
}

func (p *kafkaProducer) Produce(ctx context.Context, m *mq.Message) (*mq.ProducerResult, error) {
	return p.produce(ctx, m, kafka.PartitionAny)
}

func (p *kafkaProducer) ProduceWithPartition(ctx context.Context, m *mq.Message, partition int) (*mq.ProducerResult, error) {
	return p.produce(ctx, m, int32(partition))
}

// produce 等待 broker 确认或者 ctx 超时
func (p *kafkaProducer) produce(ctx context.Context, m *mq.Message, partition int32) (*mq.ProducerResult, error) {
	deliveryChan := make(chan kafka.Event, 1)
	err := p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: partition},
		Key:            m.Key,
		Value:          m.Value,
		Headers:        toKafkaHeaders(m.Header),
	}, deliveryChan)
	if err != nil {
		return nil, err
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case e := <-deliveryChan:
		km, ok := e.(*kafka.Message)
		if !ok {
			return nil, fmt.Errorf("未知的投递事件 %v", e)
		}
		if km.TopicPartition.Error != nil {
			return nil, km.TopicPartition.Error
		}
		return &mq.ProducerResult{}, nil
	}
}

type kafkaConsumer struct {
	consumer KafkaConsumer
	logger   *elog.Component
}

// Consume 阻塞直到拿到消息或者 ctx 结束
func (c *kafkaConsumer) Consume(ctx context.Context) (*mq.Message, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		km, err := c.consumer.ReadMessage(pollTimeout)
		if err != nil {
			var kerr kafka.Error
			if errors.As(err, &kerr) && kerr.IsTimeout() {
				continue
			}
			return nil, err
		}
		return fromKafkaMessage(km), nil
	}
}

// ConsumeChan ctx 结束之后关闭 channel
func (c *kafkaConsumer) ConsumeChan(ctx context.Context) (<-chan *mq.Message, error) {
	ch := make(chan *mq.Message)
	go func() {
		defer close(ch)
		for {
			msg, err := c.Consume(ctx)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				c.logger.Error("读取kafka消息失败", elog.FieldErr(err))
				continue
			}
			select {
			case ch <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func toKafkaHeaders(h mq.Header) []kafka.Header {
	if len(h) == 0 {
		return nil
	}
	res := make([]kafka.Header, 0, len(h))
	for k, v := range h {
		res = append(res, kafka.Header{Key: k, Value: []byte(v)})
	}
	return res
}

func fromKafkaMessage(km *kafka.Message) *mq.Message {
	header := make(mq.Header, len(km.Headers))
	for _, h := range km.Headers {
		header[h.Key] = string(h.Value)
	}
	var topic string
	if km.TopicPartition.Topic != nil {
		topic = *km.TopicPartition.Topic
	}
	return &mq.Message{
		Value:     km.Value,
		Key:       km.Key,
		Header:    header,
		Topic:     topic,
		Partition: int64(km.TopicPartition.Partition),
		Offset:    int64(km.TopicPartition.Offset),
	}
}
