package ioc

import (
	"context"
	"fmt"
	"time"

	msgevt "gitee.com/flycash/message-dispatch/internal/event/message"
	tmplevt "gitee.com/flycash/message-dispatch/internal/event/template"
	"gitee.com/flycash/message-dispatch/internal/pkg/mqx"
	"gitee.com/flycash/message-dispatch/internal/pkg/retry"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/econf"
)

func InitMQ() mq.MQ {
	type Topic struct {
		Name       string `yaml:"name"`
		Partitions int    `yaml:"partitions"`
	}
	type Config struct {
		Addr            string  `yaml:"addr"`
		AutoOffsetReset string  `yaml:"autoOffsetReset"`
		Topics          []Topic `yaml:"topics"`
	}
	cfg := Config{
		Topics: []Topic{
			{Name: msgevt.SendTopic, Partitions: 4},
			{Name: msgevt.RecordTopic, Partitions: 4},
			{Name: msgevt.CallbackTopic, Partitions: 4},
			{Name: tmplevt.BinlogTopic, Partitions: 1},
		},
	}
	if err := econf.UnmarshalKey("kafka", &cfg); err != nil {
		panic(err)
	}
	strategy, err := retry.NewStrategy(retry.DefaultConfig)
	if err != nil {
		panic(err)
	}
	var q *mqx.KafkaMQ
	err = retry.Do(context.Background(), strategy, func(ctx context.Context) error {
		kq, er := mqx.NewKafkaMQ(mqx.KafkaConfig{Addr: cfg.Addr, AutoOffsetReset: cfg.AutoOffsetReset})
		if er != nil {
			return er
		}
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		for _, t := range cfg.Topics {
			if er = kq.CreateTopic(ctx, t.Name, t.Partitions); er != nil {
				_ = kq.Close()
				return er
			}
		}
		q = kq
		return nil
	})
	if err != nil {
		panic(fmt.Errorf("初始化 kafka 失败: %w", err))
	}
	return q
}
