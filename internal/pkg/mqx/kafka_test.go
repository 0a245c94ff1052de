//go:build e2e

package mqx

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ecodeclub/mq-api"
	"github.com/stretchr/testify/suite"
)

type MockUserEvent struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type KafkaMQTestSuite struct {
	suite.Suite
	q *KafkaMQ
}

func (s *KafkaMQTestSuite) SetupSuite() {
	q, err := NewKafkaMQ(KafkaConfig{Addr: "localhost:9092"})
	s.Require().NoError(err)
	s.q = q
}

func (s *KafkaMQTestSuite) TearDownSuite() {
	s.NoError(s.q.Close())
}

func (s *KafkaMQTestSuite) TestProduceAndConsume() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	topic := fmt.Sprintf("mock_user_events_%d", time.Now().UnixNano())
	s.Require().NoError(s.q.CreateTopic(ctx, topic, 1))
	// 重复创建不报错
	s.Require().NoError(s.q.CreateTopic(ctx, topic, 1))
	defer func() {
		s.NoError(s.q.DeleteTopics(context.Background(), topic))
	}()

	producer, err := NewGeneralProducer[MockUserEvent](s.q, topic)
	s.Require().NoError(err)
	err = producer.ProduceWithHeader(ctx, "alex", mq.Header{"tag": "user"}, MockUserEvent{Name: "alex", Age: 18})
	s.Require().NoError(err)

	consumer, err := s.q.Consumer(topic, "test-group")
	s.Require().NoError(err)
	msg, err := consumer.Consume(ctx)
	s.Require().NoError(err)
	s.JSONEq(`{"name":"alex","age":18}`, string(msg.Value))
	s.Equal("alex", string(msg.Key))
	s.Equal("user", msg.Header["tag"])
	s.Equal(topic, msg.Topic)
}

func TestKafkaMQ(t *testing.T) {
	suite.Run(t, new(KafkaMQTestSuite))
}
