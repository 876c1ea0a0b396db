package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/Shopify/sarama"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common/metrics"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
)

const logIdentifier = "[GENERAL-PUBLISHER]"

//go:generate mockgen -source=publisher.go -destination=mock/publisher_mock.go -package=mock

type Publisher interface {
	Publish(ctx context.Context, message any, opts ...PublishOption) error
	Topic() string
}

type publishOptions struct {
	key     string
	headers map[string]string
}

type PublishOption func(*publishOptions)

// WithKey sets the partition key. Messages sharing a key keep their order.
func WithKey(key string) PublishOption {
	return func(opts *publishOptions) {
		opts.key = key
	}
}

func WithHeaders(headers map[string]string) PublishOption {
	return func(opts *publishOptions) {
		opts.headers = headers
	}
}

type publisher struct {
	producer sarama.SyncProducer
	topic    string
	metrics  *metrics.PublisherPrometheusMetrics
}

func NewPublisher(p sarama.SyncProducer, topic string, mtc metrics.Metrics) Publisher {
	pub := publisher{
		producer: p,
		topic:    topic,
	}
	if mtc != nil {
		pub.metrics = mtc.GetPublisherPrometheus()
	}
	return pub
}

func (d publisher) Topic() string {
	return d.topic
}

func (d publisher) Publish(ctx context.Context, message any, opts ...PublishOption) (err error) {
	start := time.Now()
	defer func() {
		if d.metrics != nil {
			d.metrics.GenerateMetrics(start, d.topic, err)
		}
	}()

	options := &publishOptions{}
	for _, opt := range opts {
		opt(options)
	}

	msg, err := d.prepareMessage(message, options)
	if err != nil {
		xlog.Error(
			ctx,
			logIdentifier,
			xlog.String("status", "failed prepare message"),
			xlog.String("topic", d.topic),
			xlog.Err(err))
		return err
	}

	partition, offset, err := d.producer.SendMessage(msg)
	if err != nil {
		xlog.Error(
			ctx,
			logIdentifier,
			xlog.String("status", "failed send message"),
			xlog.String("topic", d.topic),
			xlog.Err(err))
		return err
	}

	xlog.Info(ctx,
		logIdentifier,
		xlog.String("status", "success publish message"),
		xlog.String("topic", d.topic),
		xlog.Int64("partition", int64(partition)),
		xlog.Int64("offset", offset),
	)

	return nil
}

func (d publisher) prepareMessage(message any, opts *publishOptions) (*sarama.ProducerMessage, error) {
	msgByte, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	producerMsg := &sarama.ProducerMessage{
		Topic: d.topic,
		Value: sarama.ByteEncoder(msgByte),
	}

	if opts.key != "" {
		producerMsg.Key = sarama.StringEncoder(opts.key)
	}

	if len(opts.headers) > 0 {
		keys := make([]string, 0, len(opts.headers))
		for key := range opts.headers {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		headers := make([]sarama.RecordHeader, 0, len(keys))
		for _, key := range keys {
			headers = append(headers, sarama.RecordHeader{
				Key:   []byte(key),
				Value: []byte(opts.headers[key]),
			})
		}
		producerMsg.Headers = headers
	}

	return producerMsg, nil
}
