package auditlog

import (
	"context"

	dlqpublisher "bitbucket.org/Amartha/go-fp-ledger/internal/common/dlq_publisher"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/kafka"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/metrics"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/config"
)

const logMessage = "[KAFKA-CONSUMER] [AUDIT-LOG]"

// Consumer reads the audit log topic and records every ledger event.
type Consumer struct {
	*kafka.BaseConsumer
}

func New(ctx context.Context, cfg config.Config, dlq dlqpublisher.Publisher, mtc metrics.Metrics) *Consumer {
	handler := NewAuditLogHandler(dlq)

	base := kafka.NewBaseConsumer(kafka.BaseConsumerConfig{
		Ctx:           ctx,
		Config:        cfg,
		Metrics:       mtc,
		Handler:       handler,
		LogPrefix:     logMessage,
		Topic:         cfg.MessageBroker.Kafka.TopicAuditLog,
		ConsumerGroup: cfg.MessageBroker.Kafka.ConsumerGroupAuditLog,
	})
	handler.metricsSource = base.ConsumerMetrics

	xlog.Info(ctx, logMessage, xlog.String("status", "success init kafka consumer"))

	return &Consumer{BaseConsumer: base}
}
