package kafka

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Shopify/sarama"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common/dlq_publisher/mock"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
)

func TestMain(m *testing.M) {
	xlog.InitForTest()
	os.Exit(m.Run())
}

type fakeSession struct {
	sarama.ConsumerGroupSession
	marked []*sarama.ConsumerMessage
}

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg)
}

func TestBaseHandler_Ack(t *testing.T) {
	session := &fakeSession{}
	msg := &sarama.ConsumerMessage{Topic: "ledger.notification", Partition: 1, Offset: 7}

	h := &BaseHandler{LogPrefix: "[TEST]"}
	h.Ack(context.Background(), session, msg)

	assert.Equal(t, []*sarama.ConsumerMessage{msg}, session.marked)
}

func TestBaseHandler_Nack(t *testing.T) {
	msg := &sarama.ConsumerMessage{
		Topic:     "ledger.audit-log",
		Key:       []byte("42"),
		Value:     []byte(`{"eventType":"ACCOUNT_CREATED"}`),
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	wantFailed := models.FailedMessage{
		Topic:      msg.Topic,
		Key:        "42",
		Payload:    msg.Value,
		Timestamp:  msg.Timestamp,
		CauseError: assert.AnError,
	}

	tests := []struct {
		name   string
		dlqErr error
		noDLQ  bool
	}{
		{name: "dlq success"},
		{name: "dlq failed still marks the message", dlqErr: assert.AnError},
		{name: "no dlq configured", noDLQ: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &fakeSession{}
			h := &BaseHandler{LogPrefix: "[TEST]"}
			if !tt.noDLQ {
				dlq := mock.NewMockPublisher(gomock.NewController(t))
				dlq.EXPECT().Publish(gomock.Any(), wantFailed).Return(tt.dlqErr)
				h.DLQ = dlq
			}

			h.Nack(context.Background(), session, msg, assert.AnError)

			assert.Len(t, session.marked, 1)
		})
	}
}

func TestBaseHandler_RecordMetrics_NilMetrics(t *testing.T) {
	h := &BaseHandler{}
	assert.NotPanics(t, func() {
		h.RecordMetrics(time.Now(), &sarama.ConsumerMessage{}, nil)
	})
}

func TestMessageContext(t *testing.T) {
	t.Run("reuses the producer request id", func(t *testing.T) {
		msg := &sarama.ConsumerMessage{Headers: []*sarama.RecordHeader{
			{Key: []byte("X-Request-Id"), Value: []byte("req-1")},
		}}

		ctx := MessageContext(context.Background(), msg)

		assert.Equal(t, "req-1", xlog.RequestIDFromContext(ctx))
	})

	t.Run("generates a correlation id without header", func(t *testing.T) {
		ctx := MessageContext(context.Background(), &sarama.ConsumerMessage{})

		assert.NotEmpty(t, xlog.RequestIDFromContext(ctx))
	})
}
