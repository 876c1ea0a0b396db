package setup

import (
	dlqpublisher "bitbucket.org/Amartha/go-fp-ledger/internal/common/dlq_publisher"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/publisher"
)

// PublisherClient groups the topic publishers sharing one sync producer.
type PublisherClient struct {
	Notification publisher.Publisher
	AuditLog     publisher.Publisher
	DLQ          dlqpublisher.Publisher
}
