//go:build unit

package mqx

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagConsumer(t *testing.T) {
	t.Parallel()

	q := memory.NewMQ()
	const topic = "tag_consumer_test"
	require.NoError(t, q.CreateTopic(context.Background(), topic, 1))

	var (
		mu   sync.Mutex
		got  []string
		done = make(chan struct{})
		cnt  atomic.Int32
	)
	c, err := NewTagConsumer(q, topic, "group", []string{"A"}, 2, func(_ context.Context, msg *mq.Message) error {
		mu.Lock()
		got = append(got, string(msg.Value))
		mu.Unlock()
		if cnt.Add(1) == 2 {
			close(done)
		}
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Start(ctx)

	producer, err := q.Producer(topic)
	require.NoError(t, err)
	for _, m := range []struct{ tag, val string }{{"A", "1"}, {"B", "2"}, {"A", "3"}} {
		_, err = producer.Produce(context.Background(), &mq.Message{
			Value:  []byte(m.val),
			Header: mq.Header{HeaderTag: m.tag},
		})
		require.NoError(t, err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("等待消费超时")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"1", "3"}, got)
}

func TestTagConsumer_StartWaitsInFlight(t *testing.T) {
	t.Parallel()

	q := memory.NewMQ()
	const topic = "tag_consumer_stop_test"
	require.NoError(t, q.CreateTopic(context.Background(), topic, 1))

	var (
		started  = make(chan struct{})
		release  = make(chan struct{})
		finished atomic.Bool
	)
	c, err := NewTagConsumer(q, topic, "group", nil, 1, func(ctx context.Context, _ *mq.Message) error {
		close(started)
		<-release
		// 处理消息使用的 ctx 不会跟着取消
		if ctx.Err() == nil {
			finished.Store(true)
		}
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		c.Start(ctx)
		close(stopped)
	}()

	producer, err := q.Producer(topic)
	require.NoError(t, err)
	_, err = producer.Produce(context.Background(), &mq.Message{Value: []byte("1")})
	require.NoError(t, err)

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("等待消费超时")
	}
	cancel()

	select {
	case <-stopped:
		t.Fatal("消息还没处理完，Start 不应该返回")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Start 没有退出")
	}
	assert.True(t, finished.Load())
}
