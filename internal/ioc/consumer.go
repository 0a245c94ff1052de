package ioc

import (
	msgevt "gitee.com/flycash/message-dispatch/internal/event/message"
	recordevt "gitee.com/flycash/message-dispatch/internal/event/record"
	tmplevt "gitee.com/flycash/message-dispatch/internal/event/template"
	"gitee.com/flycash/message-dispatch/internal/pkg/idempotent"
	"gitee.com/flycash/message-dispatch/internal/repository"
	msgsvc "gitee.com/flycash/message-dispatch/internal/service/message"
	recordsvc "gitee.com/flycash/message-dispatch/internal/service/record"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/econf"
)

// ConsumerConfig 每个消费者同时处理的消息数
type ConsumerConfig struct {
	VerificationLimit int `yaml:"verificationLimit"`
	OtherLimit        int `yaml:"otherLimit"`
	SaveLimit         int `yaml:"saveLimit"`
}

func InitConsumerConfig() ConsumerConfig {
	cfg := ConsumerConfig{VerificationLimit: 32, OtherLimit: 16, SaveLimit: 16}
	if err := econf.UnmarshalKey("consumer", &cfg); err != nil {
		panic(err)
	}
	return cfg
}

func InitSendEventProducer(q mq.MQ) msgsvc.SendEventProducer {
	p, err := msgevt.NewSendEventProducer(q)
	if err != nil {
		panic(err)
	}
	return p
}

func InitSaveEventProducer(q mq.MQ) msgsvc.SaveEventProducer {
	p, err := msgevt.NewSaveEventProducer(q)
	if err != nil {
		panic(err)
	}
	return p
}

func InitCallbackEventProducer(q mq.MQ) msgsvc.CallbackEventProducer {
	p, err := msgevt.NewCallbackEventProducer(q)
	if err != nil {
		panic(err)
	}
	return p
}

func InitTasks(q mq.MQ,
	cfg ConsumerConfig,
	guard idempotent.Guard,
	handler *msgsvc.SendHandler,
	records recordsvc.Service,
	templates repository.TemplateRepository,
	shardTask *recordsvc.ShardTableTask,
	receiptTask *recordsvc.ReceiptTask,
	rules *RulesTask,
	instanceID InstanceID,
) []Task {
	verification, err := msgevt.NewVerificationSendConsumer(q, guard, handler, cfg.VerificationLimit)
	if err != nil {
		panic(err)
	}
	other, err := msgevt.NewOtherSendConsumer(q, guard, handler, cfg.OtherLimit)
	if err != nil {
		panic(err)
	}
	save, err := recordevt.NewSaveConsumer(q, guard, records, cfg.SaveLimit)
	if err != nil {
		panic(err)
	}
	change, err := tmplevt.NewChangeConsumer(q, templates, string(instanceID))
	if err != nil {
		panic(err)
	}
	return []Task{verification, other, save, change, shardTask, receiptTask, rules}
}
