package kafka

import (
	"context"
	"time"

	"github.com/Shopify/sarama"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	dlqpublisher "bitbucket.org/Amartha/go-fp-ledger/internal/common/dlq_publisher"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/metrics"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
)

// BaseHandler carries the ack/nack plumbing shared by every consumer handler.
type BaseHandler struct {
	ClientID        string
	ConsumerMetrics *metrics.ConsumerMetrics
	DLQ             dlqpublisher.Publisher
	LogPrefix       string
}

// MessageContext derives the per-message context. The producer's request id
// header is reused as correlation id, otherwise a fresh one is generated.
func MessageContext(parent context.Context, msg *sarama.ConsumerMessage) context.Context {
	for _, header := range msg.Headers {
		if header != nil && string(header.Key) == echo.HeaderXRequestID && len(header.Value) > 0 {
			return xlog.NewContext(parent, string(header.Value))
		}
	}
	return xlog.NewContext(parent, uuid.NewString())
}

func (b *BaseHandler) CreateLogField(msg *sarama.ConsumerMessage) []xlog.Field {
	return []xlog.Field{
		xlog.Time("timestamp", msg.Timestamp),
		xlog.String("topic", msg.Topic),
		xlog.String("key", string(msg.Key)),
		xlog.Int32("partition", msg.Partition),
		xlog.Int64("offset", msg.Offset),
		xlog.String("message-claimed", string(msg.Value)),
	}
}

func (b *BaseHandler) Ack(ctx context.Context, session sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) {
	session.MarkMessage(message, "")
	xlog.Debug(
		ctx,
		b.LogPrefix+"[ACK]",
		xlog.String("topic", message.Topic),
		xlog.Int32("partition", message.Partition),
		xlog.Int64("offset", message.Offset),
	)
}

// Nack parks the message on the dead letter topic and still marks it, so one
// poison message never blocks the partition.
func (b *BaseHandler) Nack(ctx context.Context, session sarama.ConsumerGroupSession, message *sarama.ConsumerMessage, causeErr error) {
	logField := b.CreateLogField(message)
	logField = append(logField, xlog.Err(causeErr))

	if b.DLQ != nil {
		err := b.DLQ.Publish(ctx, models.FailedMessage{
			Topic:      message.Topic,
			Key:        string(message.Key),
			Payload:    message.Value,
			Timestamp:  message.Timestamp,
			CauseError: causeErr,
		})
		if err != nil {
			logField = append(logField, xlog.String("dlq_status", "failed"))
			xlog.Error(ctx, b.LogPrefix+"[NACK-DLQ-FAILED]", logField...)
		} else {
			logField = append(logField, xlog.String("dlq_status", "success"))
			xlog.Info(ctx, b.LogPrefix+"[NACK-DLQ-SUCCESS]", logField...)
		}
	}

	session.MarkMessage(message, "")
	xlog.Warn(ctx, b.LogPrefix+"[NACK]", logField...)
}

func (b *BaseHandler) RecordMetrics(startTime time.Time, message *sarama.ConsumerMessage, err error) {
	if b.ConsumerMetrics != nil {
		b.ConsumerMetrics.GenerateMetrics(startTime, message, err)
	}
}
