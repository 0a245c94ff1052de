package message

import (
	"context"
	"time"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/pkg/mqx"
	msgsvc "gitee.com/flycash/message-dispatch/internal/service/message"
	"github.com/ecodeclub/mq-api"
	"github.com/gofrs/uuid"
	"github.com/gotomicro/ego/core/elog"
	"go.opentelemetry.io/otel/trace"
)

const defaultProduceTimeout = 2 * time.Second

// WrapperProducer 用 MessageWrapper 包装之后投递
type WrapperProducer[T any] struct {
	producer *mqx.GeneralProducer[domain.MessageWrapper[T]]
	timeout  time.Duration
	logger   *elog.Component
}

func NewWrapperProducer[T any](q mq.MQ, topic string) (*WrapperProducer[T], error) {
	p, err := mqx.NewGeneralProducer[domain.MessageWrapper[T]](q, topic)
	if err != nil {
		return nil, err
	}
	return &WrapperProducer[T]{
		producer: p,
		timeout:  defaultProduceTimeout,
		logger:   elog.DefaultLogger.With(elog.String("topic", topic)),
	}, nil
}

// Produce keys 为空时随机生成
func (p *WrapperProducer[T]) Produce(ctx context.Context, tag, keys string, data T) error {
	if keys == "" {
		keys = newUUID()
	}
	w := domain.MessageWrapper[T]{
		UUID:      newUUID(),
		TraceID:   traceID(ctx),
		Timestamp: time.Now().UnixMilli(),
		Keys:      keys,
		Data:      data,
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	err := p.producer.ProduceWithHeader(ctx, keys, mq.Header{mqx.HeaderTag: tag}, w)
	if err != nil {
		p.logger.Error("投递消息失败",
			elog.String("tag", tag),
			elog.String("keys", keys),
			elog.FieldErr(err))
	}
	return err
}

func newUUID() string {
	return uuid.Must(uuid.NewV4()).String()
}

func traceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}

var (
	_ msgsvc.SendEventProducer     = (*SendEventProducer)(nil)
	_ msgsvc.SaveEventProducer     = (*SaveEventProducer)(nil)
	_ msgsvc.CallbackEventProducer = (*CallbackEventProducer)(nil)
)

type SendEventProducer struct {
	p *WrapperProducer[domain.MessageSendEvent]
}

func NewSendEventProducer(q mq.MQ) (*SendEventProducer, error) {
	p, err := NewWrapperProducer[domain.MessageSendEvent](q, SendTopic)
	if err != nil {
		return nil, err
	}
	return &SendEventProducer{p: p}, nil
}

func (s *SendEventProducer) Produce(ctx context.Context, evt domain.MessageSendEvent) error {
	return s.p.Produce(ctx, SendTag(evt.Request.MsgType), evt.MsgID, evt)
}

type SaveEventProducer struct {
	p *WrapperProducer[domain.SaveEvent]
}

func NewSaveEventProducer(q mq.MQ) (*SaveEventProducer, error) {
	p, err := NewWrapperProducer[domain.SaveEvent](q, RecordTopic)
	if err != nil {
		return nil, err
	}
	return &SaveEventProducer{p: p}, nil
}

func (s *SaveEventProducer) Produce(ctx context.Context, evt domain.SaveEvent) error {
	return s.p.Produce(ctx, TagSave, evt.MsgID, evt)
}

type CallbackEventProducer struct {
	p *WrapperProducer[domain.CallbackEvent]
}

func NewCallbackEventProducer(q mq.MQ) (*CallbackEventProducer, error) {
	p, err := NewWrapperProducer[domain.CallbackEvent](q, CallbackTopic)
	if err != nil {
		return nil, err
	}
	return &CallbackEventProducer{p: p}, nil
}

// Produce 调用方按 serviceName_bizScene 订阅
func (s *CallbackEventProducer) Produce(ctx context.Context, evt domain.CallbackEvent) error {
	var tag string
	if evt.Request.CallbackConfig != nil {
		tag = evt.Request.CallbackConfig.Tag()
	}
	return s.p.Produce(ctx, tag, evt.MsgID, evt)
}
