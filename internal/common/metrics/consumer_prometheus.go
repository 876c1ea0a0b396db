package metrics

import (
	"strconv"
	"time"

	"github.com/Shopify/sarama"
	prometheusmetrics "github.com/deathowl/go-metrics-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	goMetrics "github.com/rcrowley/go-metrics"
)

var defaultBuckets = []float64{0, 0.0001, 0.001, 0.010, 0.100, 0.200, 0.500, 1, 2, 5, 10, 100, 1000}

type ConsumerMetrics struct {
	namespace          string
	subsystem          string
	flushInterval      time.Duration
	registerer         prometheus.Registerer
	metrics            goMetrics.Registry
	consumeTimeHist    *prometheus.HistogramVec
	processingTimeHist *prometheus.HistogramVec
}

func NewConsumerMetrics(namespace, subsystem string, flushInterval time.Duration, reg prometheus.Registerer) *ConsumerMetrics {
	consumeTimeHist := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kafka_consumer_consume_time",
		Help:    "time from message production to handler completion",
		Buckets: defaultBuckets,
	}, []string{"topic", "consumer_group"})

	processingTimeHist := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kafka_consumer_processing_time",
		Help:    "processing time of kafka consumer handler",
		Buckets: defaultBuckets,
	}, []string{"topic", "success", "consumer_group"})

	reg.MustRegister(consumeTimeHist, processingTimeHist)

	return &ConsumerMetrics{
		namespace:          namespace,
		subsystem:          subsystem,
		flushInterval:      flushInterval,
		registerer:         reg,
		metrics:            goMetrics.NewPrefixedRegistry(FlattenName(namespace) + "_"),
		consumeTimeHist:    consumeTimeHist,
		processingTimeHist: processingTimeHist,
	}
}

// Registry is meant for sarama.Config.MetricRegistry.
func (m *ConsumerMetrics) Registry() goMetrics.Registry {
	return m.metrics
}

// Run starts mirroring the sarama registry into prometheus.
func (m *ConsumerMetrics) Run() {
	prometheusClient := prometheusmetrics.NewPrometheusProvider(
		m.metrics, FlattenName(m.namespace), FlattenName(m.subsystem), m.registerer, m.flushInterval,
	)
	go prometheusClient.UpdatePrometheusMetrics()
}

func (m *ConsumerMetrics) GenerateMetrics(startTime time.Time, message *sarama.ConsumerMessage, processErr error) {
	if message == nil {
		return
	}
	endTime := time.Now()

	m.consumeTimeHist.WithLabelValues(message.Topic, m.namespace).
		Observe(endTime.Sub(message.Timestamp).Seconds())

	m.processingTimeHist.WithLabelValues(message.Topic, strconv.FormatBool(processErr == nil), m.namespace).
		Observe(endTime.Sub(startTime).Seconds())
}
