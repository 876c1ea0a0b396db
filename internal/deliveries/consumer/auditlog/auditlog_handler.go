package auditlog

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

type AuditLogHandler struct {
	kafka.BaseHandler

	metricsSource func() *metrics.ConsumerMetrics
}

func NewAuditLogHandler(dlq dlqpublisher.Publisher) *AuditLogHandler {
	return &AuditLogHandler{
		BaseHandler: kafka.BaseHandler{
			DLQ:       dlq,
			LogPrefix: logMessage,
		},
	}
}

func (h *AuditLogHandler) Setup(_ sarama.ConsumerGroupSession) error {
	if h.metricsSource != nil {
		h.ConsumerMetrics = h.metricsSource()
	}
	return nil
}

func (h *AuditLogHandler) Cleanup(_ sarama.ConsumerGroupSession) error {
	return nil
}

func (h *AuditLogHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
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

// processMessage accepts every event type. Known types are decoded so their
// fields land in the audit record, unknown ones are recorded raw.
func (h *AuditLogHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var raw models.RawEvent
	if err := json.Unmarshal(message.Value, &raw); err != nil {
		return fmt.Errorf("error unmarshal json: %w", err)
	}

	fields := []xlog.Field{
		xlog.String("event_id", raw.EventID),
		xlog.String("event_type", string(raw.EventType)),
		xlog.Time("event_date", raw.EventDate),
		xlog.String("source", raw.Metadata.Source),
	}

	switch raw.EventType {
	case models.EventTypeAccountCreated:
		event, err := models.DecodeEvent[models.AccountCreatedAudit](raw)
		if err != nil {
			return err
		}
		fields = append(fields,
			xlog.Int64("account_id", event.EventData.AccountID),
			xlog.String("document_number", event.EventData.DocumentNumber))
	case models.EventTypeTransactionCreated:
		event, err := models.DecodeEvent[models.TransactionCreatedAudit](raw)
		if err != nil {
			return err
		}
		description, _ := models.DescribeOperationType(event.EventData.OperationTypeID)
		fields = append(fields,
			xlog.Int64("transaction_id", event.EventData.TransactionID),
			xlog.Int64("account_id", event.EventData.AccountID),
			xlog.String("operation_type", description),
			xlog.String("amount", event.EventData.Amount.StringFixed(models.MoneyScale)),
			xlog.String("outstanding_balance", event.EventData.OutstandingBalance.StringFixed(models.MoneyScale)))
	default:
		fields = append(fields, xlog.String("event_data", string(raw.EventData)))
	}

	xlog.Info(ctx, logMessage+"[RECORDED]", fields...)

	return nil
}
