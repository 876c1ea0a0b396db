package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(WithConfigFileSearchPaths(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, "go-fp-ledger", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.HTTPPort)
	assert.Equal(t, 10*time.Minute, cfg.Cache.AccountTTL)
	assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
	assert.Equal(t, 30*time.Second, cfg.Idempotency.PendingTTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.MessageBroker.Kafka.Brokers)
	assert.Equal(t, uint64(3), cfg.ExponentialBackoff.MaxRetries)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
app:
  name: ledger-test
  http_port: 9090
cache:
  account_ttl: 1m
postgres:
  write:
    db_host: db.internal
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))
	t.Setenv("GO_FP_LEDGER_REDIS_HOST", "redis.internal")
	t.Setenv("GO_FP_LEDGER_DISPATCHER_WORKERS", "9")

	cfg, err := Load(WithConfigFileSearchPaths(dir))
	require.NoError(t, err)

	assert.Equal(t, "ledger-test", cfg.App.Name)
	assert.Equal(t, 9090, cfg.App.HTTPPort)
	assert.Equal(t, time.Minute, cfg.Cache.AccountTTL)
	assert.Equal(t, "db.internal", cfg.Postgres.Write.DbHost)
	assert.Equal(t, "redis.internal", cfg.Redis.Host)
	assert.Equal(t, 9, cfg.Dispatcher.Workers)
}

func TestStringToEnvironment(t *testing.T) {
	assert.Equal(t, PROD_ENV, StringToEnvironment("PROD"))
	assert.Equal(t, LOCAL_ENV, StringToEnvironment("local"))
	assert.Equal(t, UNDEFINED_ENV, StringToEnvironment("staging"))
}
