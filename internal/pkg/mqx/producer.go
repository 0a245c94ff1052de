package mqx

import (
	"context"
	"encoding/json"

	"github.com/ecodeclub/mq-api"
)

// GeneralProducer 把事件编码成 JSON 之后投递到固定的 topic
type GeneralProducer[T any] struct {
	producer mq.Producer
	topic    string
}

func NewGeneralProducer[T any](q mq.MQ, topic string) (*GeneralProducer[T], error) {
	producer, err := q.Producer(topic)
	if err != nil {
		return nil, err
	}
	return &GeneralProducer[T]{producer: producer, topic: topic}, nil
}

func (p *GeneralProducer[T]) Produce(ctx context.Context, evt T) error {
	return p.ProduceWithHeader(ctx, "", nil, evt)
}

func (p *GeneralProducer[T]) ProduceWithHeader(ctx context.Context, key string, header mq.Header, evt T) error {
	val, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	msg := &mq.Message{
		Topic:  p.topic,
		Value:  val,
		Header: header,
	}
	if key != "" {
		msg.Key = []byte(key)
	}
	_, err = p.producer.Produce(ctx, msg)
	return err
}
