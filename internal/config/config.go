package config

import (
	"time"
)

type (
	Config struct {
		App                App                      `json:"app"`
		Postgres           Postgres                 `json:"postgres"`
		Redis              Redis                    `json:"redis"`
		NewRelicLicenseKey string                   `json:"new_relic_license_key"`
		MessageBroker      MessageBroker            `json:"message_broker"`
		Cache              CacheConfig              `json:"cache"`
		Idempotency        IdempotencyConfig        `json:"idempotency"`
		Dispatcher         DispatcherConfig         `json:"dispatcher"`
		ExponentialBackoff ExponentialBackOffConfig `json:"exponential_backoff"`
	}

	App struct {
		Env             string        `json:"env"`
		HTTPPort        int           `json:"http_port" validate:"required"`
		HTTPTimeout     time.Duration `json:"http_timeout"`
		GracefulTimeout time.Duration `json:"graceful_timeout"`
		Name            string        `json:"name" validate:"required"`
		LogLevel        string        `json:"log_level"`
	}

	Postgres struct {
		Write Database `json:"write"`
		Read  Database `json:"read"`
	}

	Database struct {
		DbHost            string `json:"db_host"`
		DbPort            string `json:"db_port"`
		DbUser            string `json:"db_user"`
		DbPass            string `json:"db_pass"`
		DbName            string `json:"db_name"`
		DbSchema          string `json:"db_schema"`
		MaxOpenConnection int    `json:"max_open_connections"`
		MaxIdleConnection int    `json:"max_idle_connections"`
		ConnMaxLifetime   int    `json:"conn_max_lifetime"`
	}

	Redis struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		Password string `json:"password"`
		Db       int    `json:"db"`
	}

	MessageBroker struct {
		HTTPPort int            `json:"http_port"`
		Kafka    ConsumerConfig `json:"kafka"`
	}

	ConsumerConfig struct {
		Brokers                   []string `json:"brokers"`
		ConsumerGroupNotification string   `json:"consumer_group_notification"`
		ConsumerGroupAuditLog     string   `json:"consumer_group_audit_log"`
		TopicNotification         string   `json:"topic_notification"`
		TopicAuditLog             string   `json:"topic_audit_log"`
		TopicDLQ                  string   `json:"topic_dlq"`
		Assignor                  string   `json:"assignor"`
		IsOldest                  bool     `json:"is_oldest"`
		IsVerbose                 bool     `json:"is_verbose"`
	}

	CacheConfig struct {
		AccountTTL time.Duration `json:"account_ttl"`
	}

	// PendingTTL bounds an in-progress marker, TTL a stored response.
	IdempotencyConfig struct {
		TTL        time.Duration `json:"ttl"`
		PendingTTL time.Duration `json:"pending_ttl"`
	}

	// DispatcherConfig sizes the background pool running post-creation side effects.
	DispatcherConfig struct {
		Workers     int           `json:"workers"`
		QueueSize   int           `json:"queue_size"`
		TaskTimeout time.Duration `json:"task_timeout"`
	}

	ExponentialBackOffConfig struct {
		MaxRetries        uint64        `json:"max_retries"`
		MaxBackoffTime    time.Duration `json:"max_backoff_time"`
		BackoffMultiplier float64       `json:"backoff_multiplier"`
	}
)
