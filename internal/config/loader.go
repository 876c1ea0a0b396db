package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const envPrefix = "GO_FP_LEDGER"

type loaderOptions struct {
	fileName    string
	searchPaths []string
}

type LoaderOption func(*loaderOptions)

func WithConfigFileName(name string) LoaderOption {
	return func(o *loaderOptions) { o.fileName = name }
}

func WithConfigFileSearchPaths(paths ...string) LoaderOption {
	return func(o *loaderOptions) { o.searchPaths = append(o.searchPaths, paths...) }
}

// Load reads the yaml config file (optional) and overlays env vars such as
// GO_FP_LEDGER_POSTGRES_WRITE_DB_HOST on top of it.
func Load(opts ...LoaderOption) (Config, error) {
	o := loaderOptions{fileName: "config"}
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName(o.fileName)
	v.SetConfigType("yaml")
	for _, p := range o.searchPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "json"
	})
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err = validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// setDefaults also registers every key with viper, which AutomaticEnv needs
// to resolve env vars during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http_port", 8080)
	v.SetDefault("app.http_timeout", 10*time.Second)
	v.SetDefault("app.graceful_timeout", 10*time.Second)
	v.SetDefault("app.name", "go-fp-ledger")
	v.SetDefault("app.log_level", "info")

	for _, side := range []string{"write", "read"} {
		prefix := "postgres." + side + "."
		v.SetDefault(prefix+"db_host", "localhost")
		v.SetDefault(prefix+"db_port", "5432")
		v.SetDefault(prefix+"db_user", "postgres")
		v.SetDefault(prefix+"db_pass", "")
		v.SetDefault(prefix+"db_name", "ledger")
		v.SetDefault(prefix+"db_schema", "public")
		v.SetDefault(prefix+"max_open_connections", 10)
		v.SetDefault(prefix+"max_idle_connections", 10)
		v.SetDefault(prefix+"conn_max_lifetime", 3)
	}

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("new_relic_license_key", "")

	v.SetDefault("message_broker.http_port", 8081)
	v.SetDefault("message_broker.kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("message_broker.kafka.consumer_group_notification", "go-fp-ledger-notification")
	v.SetDefault("message_broker.kafka.consumer_group_audit_log", "go-fp-ledger-audit-log")
	v.SetDefault("message_broker.kafka.topic_notification", "ledger.notification")
	v.SetDefault("message_broker.kafka.topic_audit_log", "ledger.audit-log")
	v.SetDefault("message_broker.kafka.topic_dlq", "ledger.dlq")
	v.SetDefault("message_broker.kafka.assignor", "range")
	v.SetDefault("message_broker.kafka.is_oldest", true)
	v.SetDefault("message_broker.kafka.is_verbose", false)

	v.SetDefault("cache.account_ttl", 10*time.Minute)
	v.SetDefault("idempotency.ttl", 24*time.Hour)
	v.SetDefault("idempotency.pending_ttl", 30*time.Second)

	v.SetDefault("dispatcher.workers", 4)
	v.SetDefault("dispatcher.queue_size", 1024)
	v.SetDefault("dispatcher.task_timeout", 5*time.Second)

	v.SetDefault("exponential_backoff.max_retries", 3)
	v.SetDefault("exponential_backoff.max_backoff_time", 2*time.Second)
	v.SetDefault("exponential_backoff.backoff_multiplier", 2.0)
}
