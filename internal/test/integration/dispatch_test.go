//go:build unit

package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"gitee.com/flycash/message-dispatch/internal/domain"
	msgevt "gitee.com/flycash/message-dispatch/internal/event/message"
	id "gitee.com/flycash/message-dispatch/internal/pkg/id_generator"
	"gitee.com/flycash/message-dispatch/internal/pkg/idempotent"
	"gitee.com/flycash/message-dispatch/internal/pkg/mqx"
	"gitee.com/flycash/message-dispatch/internal/pkg/registry"
	"gitee.com/flycash/message-dispatch/internal/service/chain"
	"gitee.com/flycash/message-dispatch/internal/service/channel"
	msgsvc "gitee.com/flycash/message-dispatch/internal/service/message"
	"gitee.com/flycash/message-dispatch/internal/service/provider"
	testioc "gitee.com/flycash/message-dispatch/internal/test/ioc"
	"github.com/ecodeclub/mq-api"
	ca "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type noLimit struct{}

func (noLimit) Limit(context.Context, string) (bool, error) {
	return false, nil
}

type staticTemplates map[string]domain.TemplateConfig

func (s staticTemplates) Get(_ context.Context, templateID string) (domain.TemplateConfig, error) {
	return s[templateID], nil
}

func (s staticTemplates) Refresh(context.Context, string) error { return nil }

func (s staticTemplates) Evict(context.Context, string) error { return nil }

func (s staticTemplates) Save(context.Context, domain.TemplateConfig) error { return nil }

type countingProvider struct {
	mu   sync.Mutex
	fail bool
	cnt  int
}

func (p *countingProvider) Send(context.Context, domain.MessageSendEvent, domain.TemplateConfig) (domain.SendOutcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cnt++
	if p.fail {
		return domain.FailedOutcome("isv.BUSINESS_LIMIT_CONTROL", "触发流控"), nil
	}
	return domain.SuccessOutcome(), nil
}

func (p *countingProvider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cnt
}

// DispatchTestSuite 从接口入口到消费者、发送、入库事件和回调事件的完整链路
type DispatchTestSuite struct {
	suite.Suite
	q       mq.MQ
	svc     msgsvc.Service
	ali     *countingProvider
	tx      *countingProvider
	cancel  context.CancelFunc
	records mq.Consumer
	calls   mq.Consumer
}

func TestDispatch(t *testing.T) {
	suite.Run(t, new(DispatchTestSuite))
}

func (s *DispatchTestSuite) SetupTest() {
	s.q = testioc.InitMemoryMQ(msgevt.SendTopic, msgevt.RecordTopic, msgevt.CallbackTopic)
	var err error
	s.records, err = s.q.Consumer(msgevt.RecordTopic, "test_record")
	s.Require().NoError(err)
	s.calls, err = s.q.Consumer(msgevt.CallbackTopic, "test_callback")
	s.Require().NoError(err)

	s.ali = &countingProvider{fail: true}
	s.tx = &countingProvider{}
	providers := registry.New[provider.Provider]("provider").
		MustRegister(channel.SMSProviderKey("ALI_01"), s.ali).
		MustRegister(channel.SMSProviderKey("TX_01"), s.tx)
	rules := channel.NewStaticRules([]domain.WeightRuleSet{{
		Name: domain.RuleSetGeneral,
		Weights: []domain.ChannelWeight{
			{ChannelID: "ALI_01", Weight: "90"},
			{ChannelID: "TX_01", Weight: "10"},
		},
	}})
	dispatcher := provider.NewDispatcher(channel.NewSelector(channel.NewWeightedSelector(rules), providers))

	sendProducer, err := msgevt.NewSendEventProducer(s.q)
	s.Require().NoError(err)
	saveProducer, err := msgevt.NewSaveEventProducer(s.q)
	s.Require().NoError(err)
	callbackProducer, err := msgevt.NewCallbackEventProducer(s.q)
	s.Require().NoError(err)

	templates := staticTemplates{"T1": {TemplateID: "T1", Content: "验证码 {1}", ChannelIDs: "ALI_01,TX_01"}}
	handler := msgsvc.NewSendHandler(templates, dispatcher, callbackProducer, saveProducer)
	gen, err := id.NewGenerator(time.Time{}, func() (uint16, error) { return 7, nil })
	s.Require().NoError(err)
	s.svc = msgsvc.NewService(chain.NewMessageSendRunner(noLimit{}), gen, sendProducer, handler)

	guard := idempotent.NewLocalGuard(ca.New(time.Minute, time.Minute))
	consumer, err := msgevt.NewVerificationSendConsumer(s.q, guard, handler, 4)
	s.Require().NoError(err)
	var ctx context.Context
	ctx, s.cancel = context.WithCancel(context.Background())
	go consumer.Start(ctx)
}

func (s *DispatchTestSuite) TearDownTest() {
	s.cancel()
	_ = s.q.Close()
}

func (s *DispatchTestSuite) TestSendFailoverToSecondChannel() {
	t := s.T()
	req := domain.MessageSendRequest{
		MsgType:        domain.MessageTypeSMSVerification,
		Receiver:       "13800138000",
		TemplateID:     "T1",
		ParamList:      []string{"1234"},
		CallbackConfig: &domain.CallbackConfig{Type: "all", ServiceName: "order", BizScene: "login"},
	}
	msgID, err := s.svc.Send(context.Background(), req)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	msg, err := s.records.Consume(ctx)
	require.NoError(t, err)
	save, err := msgevt.Decode[domain.SaveEvent](msg)
	require.NoError(t, err)
	assert.Equal(t, msgID, save.Data.MsgID)
	assert.Equal(t, "TX_01", save.Data.CurrentSendChannel)
	require.NotNil(t, save.Data.Outcome)
	assert.True(t, save.Data.Outcome.Success)

	msg, err = s.calls.Consume(ctx)
	require.NoError(t, err)
	callback, err := msgevt.Decode[domain.CallbackEvent](msg)
	require.NoError(t, err)
	assert.True(t, callback.Data.Success)
	assert.Equal(t, "order_login", msg.Header[mqx.HeaderTag])

	assert.Equal(t, 1, s.tx.count())
	assert.LessOrEqual(t, s.ali.count(), 1)

	// 不会再有第二个入库事件
	shortCtx, shortCancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer shortCancel()
	_, err = s.records.Consume(shortCtx)
	assert.Error(t, err)
}

func (s *DispatchTestSuite) TestSyncSend() {
	t := s.T()
	req := domain.MessageSendRequest{
		MsgType:    domain.MessageTypeSMSVerification,
		Receiver:   "13800138001",
		TemplateID: "T1",
		ParamList:  []string{"5678"},
	}
	msgID, outcome, err := s.svc.SyncSend(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, msgID)
	require.NotNil(t, outcome)
	assert.True(t, outcome.Success)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	msg, err := s.records.Consume(ctx)
	require.NoError(t, err)
	save, err := msgevt.Decode[domain.SaveEvent](msg)
	require.NoError(t, err)
	assert.Equal(t, msgID, save.Data.MsgID)
}

func (s *DispatchTestSuite) TestInvalidMobileRejected() {
	_, err := s.svc.Send(context.Background(), domain.MessageSendRequest{
		MsgType:    domain.MessageTypeSMSVerification,
		Receiver:   "abc",
		TemplateID: "T1",
	})
	s.Error(err)
}
