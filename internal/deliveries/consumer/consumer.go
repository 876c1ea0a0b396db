package consumer

import (
	"context"
	"fmt"

	dlqpublisher "bitbucket.org/Amartha/go-fp-ledger/internal/common/dlq_publisher"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/graceful"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/metrics"
	"bitbucket.org/Amartha/go-fp-ledger/internal/config"
	"bitbucket.org/Amartha/go-fp-ledger/internal/deliveries/consumer/auditlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/deliveries/consumer/notification"
)

const (
	NameNotification = "notification"
	NameAuditLog     = "audit_log"
)

// Names lists the consumers NewKafkaConsumer knows how to build.
func Names() []string {
	return []string{NameNotification, NameAuditLog}
}

func NewKafkaConsumer(
	ctx context.Context,
	consumerName string,
	conf config.Config,
	dlq dlqpublisher.Publisher,
	mtc metrics.Metrics,
) (graceful.ProcessStartStopper, error) {
	switch consumerName {
	case NameNotification:
		return notification.New(ctx, conf, dlq, mtc), nil
	case NameAuditLog:
		return auditlog.New(ctx, conf, dlq, mtc), nil
	default:
		return nil, fmt.Errorf("consumer type name for %s not found", consumerName)
	}
}
