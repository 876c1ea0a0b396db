package notification

import (
	"context"

	dlqpublisher "bitbucket.org/Amartha/go-fp-ledger/internal/common/dlq_publisher"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/kafka"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/metrics"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/config"
)

const logMessage = "[KAFKA-CONSUMER] [NOTIFICATION]"

// Consumer reads the notification topic and sends the account notifications.
type Consumer struct {
	*kafka.BaseConsumer
}

func New(ctx context.Context, cfg config.Config, dlq dlqpublisher.Publisher, mtc metrics.Metrics) *Consumer {
	handler := NewNotificationHandler(dlq)

	base := kafka.NewBaseConsumer(kafka.BaseConsumerConfig{
		Ctx:           ctx,
		Config:        cfg,
		Metrics:       mtc,
		Handler:       handler,
		LogPrefix:     logMessage,
		Topic:         cfg.MessageBroker.Kafka.TopicNotification,
		ConsumerGroup: cfg.MessageBroker.Kafka.ConsumerGroupNotification,
	})
	handler.metricsSource = base.ConsumerMetrics

	xlog.Info(ctx, logMessage, xlog.String("status", "success init kafka consumer"))

	return &Consumer{BaseConsumer: base}
}
