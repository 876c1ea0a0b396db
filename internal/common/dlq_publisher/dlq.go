package dlqpublisher

import (
	"context"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common/publisher"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
)

const prefixLogMessage = "[DLQ]"

//go:generate mockgen -source=dlq.go -destination=mock/dlq_mock.go -package=mock

type Publisher interface {
	Publish(ctx context.Context, message models.FailedMessage) error
}

type kafkaDlq struct {
	pub publisher.Publisher
}

// New parks failed messages on the topic of pub, keyed like the original
// message so a replay keeps per-account ordering.
func New(pub publisher.Publisher) Publisher {
	return kafkaDlq{pub: pub}
}

func (d kafkaDlq) Publish(ctx context.Context, message models.FailedMessage) error {
	if message.CauseError != nil && message.Error == "" {
		message.Error = message.CauseError.Error()
	}

	var opts []publisher.PublishOption
	if message.Key != "" {
		opts = append(opts, publisher.WithKey(message.Key))
	}

	if err := d.pub.Publish(ctx, message, opts...); err != nil {
		xlog.Error(ctx, prefixLogMessage,
			xlog.String("status", "publish dlq failed"),
			xlog.String("source_topic", message.Topic),
			xlog.Err(err))
		return err
	}

	xlog.Info(ctx, prefixLogMessage,
		xlog.String("status", "success publish dlq message"),
		xlog.String("source_topic", message.Topic),
		xlog.String("topic", d.pub.Topic()),
		xlog.Time("timestamp", message.Timestamp),
	)
	return nil
}
