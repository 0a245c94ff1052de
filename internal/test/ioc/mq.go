package ioc

import (
	"context"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/memory"
)

// InitMemoryMQ 每次返回一个新的内存队列，测试之间互不影响
func InitMemoryMQ(topics ...string) mq.MQ {
	q := memory.NewMQ()
	for _, t := range topics {
		if err := q.CreateTopic(context.Background(), t, 1); err != nil {
			panic(err)
		}
	}
	return q
}
