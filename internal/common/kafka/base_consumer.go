package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	goMetrics "github.com/rcrowley/go-metrics"
	"golang.org/x/sync/errgroup"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common/graceful"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/messaging"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/metrics"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/config"
)

var (
	ErrNoTopic         = errors.New("no topics given to be consumed, please set the topic")
	ErrNoConsumerGroup = errors.New("no kafka consumer group defined, please set the group")
)

// ConsumerGroupFactory opens the sarama consumer group. Tests swap it out.
type ConsumerGroupFactory func(brokers []string, group string, cfg *sarama.Config) (sarama.ConsumerGroup, error)

type BaseConsumer struct {
	ctx             context.Context
	appName         string
	clientID        string
	consumerCfg     config.ConsumerConfig
	cg              sarama.ConsumerGroup
	newGroup        ConsumerGroupFactory
	handler         sarama.ConsumerGroupHandler
	metrics         metrics.Metrics
	consumerMetrics *metrics.ConsumerMetrics
	logPrefix       string
	topic           string
	consumerGroup   string
}

type BaseConsumerConfig struct {
	Ctx           context.Context
	Config        config.Config
	Metrics       metrics.Metrics
	Handler       sarama.ConsumerGroupHandler
	LogPrefix     string
	Topic         string
	ConsumerGroup string
	NewGroup      ConsumerGroupFactory
}

func NewBaseConsumer(cfg BaseConsumerConfig) *BaseConsumer {
	newGroup := cfg.NewGroup
	if newGroup == nil {
		newGroup = sarama.NewConsumerGroup
	}
	return &BaseConsumer{
		ctx:           cfg.Ctx,
		appName:       cfg.Config.App.Name,
		consumerCfg:   cfg.Config.MessageBroker.Kafka,
		newGroup:      newGroup,
		handler:       cfg.Handler,
		metrics:       cfg.Metrics,
		logPrefix:     cfg.LogPrefix,
		topic:         cfg.Topic,
		consumerGroup: cfg.ConsumerGroup,
	}
}

// ConsumerMetrics is nil until PreStart ran with metrics enabled.
func (c *BaseConsumer) ConsumerMetrics() *metrics.ConsumerMetrics {
	return c.consumerMetrics
}

func (c *BaseConsumer) PreStart() error {
	if c.topic == "" {
		return ErrNoTopic
	}
	if c.consumerGroup == "" {
		return ErrNoConsumerGroup
	}

	if c.metrics != nil && c.consumerMetrics == nil {
		c.consumerMetrics = metrics.NewConsumerMetrics(c.consumerGroup, c.appName, 1*time.Second, c.metrics.PrometheusRegisterer())
		c.consumerMetrics.Run()
	}

	saramaCfg, err := messaging.CreateSaramaConsumerConfig(c.consumerCfg, c.logPrefix, c.metricRegistry())
	if err != nil {
		xlog.Error(c.ctx, c.logPrefix, xlog.Err(err))
		return fmt.Errorf("failed to create consumer config: %w", err)
	}
	c.clientID = saramaCfg.ClientID

	client, err := c.newGroup(c.consumerCfg.Brokers, c.consumerGroup, saramaCfg)
	if err != nil {
		return err
	}
	c.cg = client

	return nil
}

func (c *BaseConsumer) metricRegistry() goMetrics.Registry {
	if c.consumerMetrics == nil {
		return nil
	}
	return c.consumerMetrics.Registry()
}

func (c *BaseConsumer) Start() graceful.ProcessStarter {
	return func() error {
		if err := c.PreStart(); err != nil {
			return err
		}

		go func() {
			for errCg := range c.cg.Errors() {
				xlog.Error(c.ctx, c.logPrefix, xlog.Err(fmt.Errorf("client error: %w", errCg)))
			}
		}()

		eg, ctx := errgroup.WithContext(c.ctx)

		eg.Go(func() error {
			for {
				if err := c.cg.Consume(ctx, []string{c.topic}, c.handler); err != nil {
					if errors.Is(err, sarama.ErrClosedConsumerGroup) {
						return nil
					}
					xlog.Warn(c.ctx, c.logPrefix, xlog.Err(fmt.Errorf("error start consumer: %w", err)))
				}
				if err := ctx.Err(); err != nil {
					return fmt.Errorf("context was canceled: %w", err)
				}
			}
		})

		return eg.Wait()
	}
}

func (c *BaseConsumer) Stop() graceful.ProcessStopper {
	return func(ctx context.Context) error {
		if c.cg == nil {
			return nil
		}
		return c.cg.Close()
	}
}
