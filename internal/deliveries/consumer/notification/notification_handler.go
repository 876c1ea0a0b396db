package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Shopify/sarama"

	dlqpublisher "bitbucket.org/Amartha/go-fp-ledger/internal/common/dlq_publisher"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/kafka"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/metrics"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
)

type NotificationHandler struct {
	kafka.BaseHandler

	metricsSource func() *metrics.ConsumerMetrics
}

func NewNotificationHandler(dlq dlqpublisher.Publisher) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler: kafka.BaseHandler{
			DLQ:       dlq,
			LogPrefix: logMessage,
		},
	}
}

// Setup is run at the beginning of a new session, before ConsumeClaim
func (h *NotificationHandler) Setup(_ sarama.ConsumerGroupSession) error {
	if h.metricsSource != nil {
		h.ConsumerMetrics = h.metricsSource()
	}
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited
func (h *NotificationHandler) Cleanup(_ sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim must start a consumer loop of ConsumerGroupClaim's Messages().
func (h *NotificationHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			ctx := kafka.MessageContext(session.Context(), message)

			start := time.Now()
			err := h.processMessage(ctx, message)
			h.RecordMetrics(start, message, err)

			if err != nil {
				h.Nack(ctx, session, message, err)
				continue
			}

			h.Ack(ctx, session, message)
		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *NotificationHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var raw models.RawEvent
	if err := json.Unmarshal(message.Value, &raw); err != nil {
		return fmt.Errorf("error unmarshal json: %w", err)
	}

	xlog.Info(ctx, logMessage,
		xlog.String("status", "received notification event"),
		xlog.String("event_id", raw.EventID),
		xlog.String("event_type", string(raw.EventType)))

	event, err := models.DecodeEvent[models.AccountCreatedNotification](raw)
	if err != nil {
		return err
	}

	// delivery to the customer channel is stubbed by the log line
	xlog.Info(ctx, logMessage,
		xlog.String("status", "notification sent"),
		xlog.String("event_id", event.EventID),
		xlog.Int64("account_id", event.EventData.AccountID),
		xlog.String("balance", event.EventData.Balance.StringFixed(models.MoneyScale)))

	return nil
}
