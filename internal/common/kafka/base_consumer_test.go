package kafka

import (
	"context"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common/messaging"
	"bitbucket.org/Amartha/go-fp-ledger/internal/config"
)

func TestBaseConsumer_PreStart(t *testing.T) {
	cfg := config.Config{}
	cfg.App.Name = "go-fp-ledger"
	cfg.MessageBroker.Kafka.Brokers = []string{"localhost:9092"}

	noBrokers := config.Config{}

	tests := []struct {
		name    string
		cfg     BaseConsumerConfig
		wantErr error
	}{
		{
			name:    "missing topic",
			cfg:     BaseConsumerConfig{Ctx: context.Background(), Config: cfg, ConsumerGroup: "g"},
			wantErr: ErrNoTopic,
		},
		{
			name:    "missing group",
			cfg:     BaseConsumerConfig{Ctx: context.Background(), Config: cfg, Topic: "t"},
			wantErr: ErrNoConsumerGroup,
		},
		{
			name:    "missing brokers",
			cfg:     BaseConsumerConfig{Ctx: context.Background(), Config: noBrokers, Topic: "t", ConsumerGroup: "g"},
			wantErr: messaging.ErrNoBrokers,
		},
		{
			name: "group factory error",
			cfg: BaseConsumerConfig{
				Ctx: context.Background(), Config: cfg, Topic: "t", ConsumerGroup: "g",
				NewGroup: func([]string, string, *sarama.Config) (sarama.ConsumerGroup, error) {
					return nil, assert.AnError
				},
			},
			wantErr: assert.AnError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewBaseConsumer(tt.cfg).PreStart()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBaseConsumer_PreStart_Success(t *testing.T) {
	cfg := config.Config{}
	cfg.MessageBroker.Kafka.Brokers = []string{"localhost:9092"}

	var gotGroup string
	c := NewBaseConsumer(BaseConsumerConfig{
		Ctx: context.Background(), Config: cfg, Topic: "t", ConsumerGroup: "g",
		NewGroup: func(brokers []string, group string, _ *sarama.Config) (sarama.ConsumerGroup, error) {
			gotGroup = group
			return nil, nil
		},
	})

	require.NoError(t, c.PreStart())
	assert.Equal(t, "g", gotGroup)
	assert.NoError(t, c.Stop()(context.Background()))
}
