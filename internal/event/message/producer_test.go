//go:build unit

package message

import (
	"context"
	"testing"
	"time"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/pkg/mqx"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendTag(t *testing.T) {
	t.Parallel()
	assert.Equal(t, TagVerificationSend, SendTag(domain.MessageTypeSMSVerification))
	assert.Equal(t, TagOtherSend, SendTag(domain.MessageTypeSMSMarketing))
	assert.Equal(t, TagOtherSend, SendTag(domain.MessageTypeEmail))
}

func TestProducers(t *testing.T) {
	t.Parallel()

	req := domain.MessageSendRequest{
		MsgType:        domain.MessageTypeSMSVerification,
		Receiver:       "13800138000",
		TemplateID:     "T1",
		ParamList:      []string{"1234"},
		CallbackConfig: &domain.CallbackConfig{Type: "all", ServiceName: "order", BizScene: "pay"},
	}

	testCases := []struct {
		name    string
		topic   string
		produce func(ctx context.Context, q mq.MQ) error
		wantTag string
		check   func(t *testing.T, msg *mq.Message)
	}{
		{
			name:  "发送事件按消息类型打 tag",
			topic: SendTopic,
			produce: func(ctx context.Context, q mq.MQ) error {
				p, err := NewSendEventProducer(q)
				if err != nil {
					return err
				}
				return p.Produce(ctx, domain.MessageSendEvent{MsgID: "100", Request: req})
			},
			wantTag: TagVerificationSend,
			check: func(t *testing.T, msg *mq.Message) {
				w, err := Decode[domain.MessageSendEvent](msg)
				require.NoError(t, err)
				assert.Equal(t, "100", w.Keys)
				assert.Equal(t, "100", w.Data.MsgID)
				assert.Equal(t, req, w.Data.Request)
				assert.NotEmpty(t, w.UUID)
				assert.NotZero(t, w.Timestamp)
			},
		},
		{
			name:  "入库事件",
			topic: RecordTopic,
			produce: func(ctx context.Context, q mq.MQ) error {
				p, err := NewSaveEventProducer(q)
				if err != nil {
					return err
				}
				return p.Produce(ctx, domain.SaveEvent{MsgID: "101", Request: req, CurrentSendChannel: "ALI_01"})
			},
			wantTag: TagSave,
			check: func(t *testing.T, msg *mq.Message) {
				w, err := Decode[domain.SaveEvent](msg)
				require.NoError(t, err)
				assert.Equal(t, "ALI_01", w.Data.CurrentSendChannel)
			},
		},
		{
			name:  "回调事件按调用方打 tag",
			topic: CallbackTopic,
			produce: func(ctx context.Context, q mq.MQ) error {
				p, err := NewCallbackEventProducer(q)
				if err != nil {
					return err
				}
				return p.Produce(ctx, domain.CallbackEvent{MsgID: "102", Success: true, Request: req})
			},
			wantTag: "order_pay",
			check: func(t *testing.T, msg *mq.Message) {
				w, err := Decode[domain.CallbackEvent](msg)
				require.NoError(t, err)
				assert.True(t, w.Data.Success)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			q := memory.NewMQ()
			require.NoError(t, q.CreateTopic(ctx, tc.topic, 1))
			consumer, err := q.Consumer(tc.topic, "test")
			require.NoError(t, err)

			require.NoError(t, tc.produce(ctx, q))
			msg, err := consumer.Consume(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.wantTag, msg.Header[mqx.HeaderTag])
			tc.check(t, msg)
		})
	}
}
