package messaging

import (
	"errors"
	"log"
	"os"

	"github.com/Shopify/sarama"
	goMetrics "github.com/rcrowley/go-metrics"

	"bitbucket.org/Amartha/go-fp-ledger/internal/config"
)

var ErrNoBrokers = errors.New("no kafka bootstrap brokers defined, please set the brokers")

// CreateSaramaConsumerConfig builds the consumer group config. registry may be
// nil, in which case sarama keeps its own.
func CreateSaramaConsumerConfig(cfg config.ConsumerConfig, logPrefix string, registry goMetrics.Registry) (*sarama.Config, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}

	saramaCfg := sarama.NewConfig()
	saramaCfg.Version = sarama.V3_0_0_0
	saramaCfg.ClientID, _ = os.Hostname()
	saramaCfg.Consumer.Return.Errors = true
	if registry != nil {
		saramaCfg.MetricRegistry = registry
	}

	if cfg.IsVerbose {
		sarama.Logger = log.New(os.Stdout, logPrefix, log.LstdFlags)
	}

	if cfg.IsOldest {
		saramaCfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	}

	switch cfg.Assignor {
	case "sticky":
		saramaCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.BalanceStrategySticky}
	case "roundrobin":
		saramaCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.BalanceStrategyRoundRobin}
	default:
		saramaCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.BalanceStrategyRange}
	}

	return saramaCfg, nil
}
