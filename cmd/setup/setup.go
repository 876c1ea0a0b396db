package setup

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/newrelic/go-agent/v3/integrations/nrzap"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	_ "github.com/lib/pq"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common/cache"
	dlqpublisher "bitbucket.org/Amartha/go-fp-ledger/internal/common/dlq_publisher"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/graceful"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/idgenerator"
	cMetrics "bitbucket.org/Amartha/go-fp-ledger/internal/common/metrics"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/publisher"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/retry"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/worker"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/config"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
	"bitbucket.org/Amartha/go-fp-ledger/internal/repositories"
	"bitbucket.org/Amartha/go-fp-ledger/internal/services"
)

const saramaFlushInterval = 1 * time.Second

type Setup struct {
	Config          config.Config
	NewRelic        *newrelic.Application
	WriteDB         *sql.DB
	ReadDB          *sql.DB
	Cache           *redis.Client
	RepoSQL         repositories.SQLRepository
	RepoCache       repositories.CacheRepository
	WorkerPool      *worker.Pool
	Service         *services.Services
	PublisherClient *PublisherClient
	Metrics         cMetrics.Metrics
}

// Init wires every dependency of a process. The returned stoppers release
// them and are valid even when err is not nil.
func Init(command string) (setup *Setup, stopper []graceful.ProcessStopper, err error) {
	ctx := context.Background()

	cfg, err := config.Load(
		config.WithConfigFileName("config"),
		config.WithConfigFileSearchPaths(".", "./config", "/etc/go-fp-ledger"),
	)
	if err != nil {
		return
	}

	setup = &Setup{
		Config: cfg,
	}

	xlog.Init(cfg.App.Name+"-"+command,
		xlog.WithEnv(cfg.App.Env),
		xlog.WithCaller(true),
		xlog.AddCallerSkip(2),
		xlog.WithLevel(cfg.App.LogLevel))

	stopper = append(stopper, func(ctx context.Context) error {
		xlog.Sync()
		return nil
	})

	newRelic := setupNR(ctx, cfg)
	if newRelic != nil {
		stopper = append(stopper, func(ctx context.Context) error {
			newRelic.Shutdown(10 * time.Second)
			return nil
		})
	}

	mtc := cMetrics.New(prometheus.DefaultRegisterer)

	writeDB, readDB, err := setupPostgres(cfg)
	stopper = append(stopper, func(ctx context.Context) error {
		var errs *multierror.Error
		if writeDB != nil {
			if err := writeDB.Close(); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("failed to close writeDB: %w", err))
			}
		}
		if readDB != nil {
			if err := readDB.Close(); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("failed to close readDB: %w", err))
			}
		}
		return errs.ErrorOrNil()
	})
	if err != nil {
		err = fmt.Errorf("failed connect to database: %w", err)
		return
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Db,
	})
	stopper = append(stopper, func(ctx context.Context) error { return rdb.Close() })
	if err = rdb.Ping(ctx).Err(); err != nil {
		err = fmt.Errorf("failed connect to redis: %w", err)
		return
	}

	if err = mtc.RegisterDB(writeDB, cfg.App.Name+"-"+command+"-write", cfg.Postgres.Write.DbName); err != nil {
		err = fmt.Errorf("failed register DB stat prometheus: %w", err)
		return
	}
	if err = mtc.RegisterDB(readDB, cfg.App.Name+"-"+command+"-read", cfg.Postgres.Read.DbName); err != nil {
		err = fmt.Errorf("failed register DB stat prometheus: %w", err)
		return
	}
	if err = mtc.RegisterRedis(rdb, cfg.App.Name, command); err != nil {
		err = fmt.Errorf("failed register redis prometheus: %w", err)
		return
	}

	producer, err := publisher.NewKafkaSyncProducer(
		cfg.MessageBroker.Kafka.Brokers,
		publisher.WithClientID(cfg.App.Name+"-"+command),
		publisher.WithMetricRegistry(mtc.SaramaRegistry(cfg.App.Name+"_"+command+"_producer", saramaFlushInterval)),
	)
	if err != nil {
		err = fmt.Errorf("unable to create client kafka sync producer: %w", err)
		return
	}
	stopper = append(stopper, func(ctx context.Context) error { return producer.Close() })

	publisherClient := PublisherClient{
		Notification: publisher.NewPublisher(producer, cfg.MessageBroker.Kafka.TopicNotification, mtc),
		AuditLog:     publisher.NewPublisher(producer, cfg.MessageBroker.Kafka.TopicAuditLog, mtc),
		DLQ:          dlqpublisher.New(publisher.NewPublisher(producer, cfg.MessageBroker.Kafka.TopicDLQ, mtc)),
	}

	sqlRepo := repositories.NewSQLRepository(writeDB, readDB)
	cacheRepo := repositories.NewCacheRepository(rdb)
	accountCache := cache.NewRedisClient[models.AccountOut](rdb)

	// post-creation side effects run on the pool, its stopper drains the
	// queue before the producer and redis above are closed
	pool := worker.New(cfg.Dispatcher)
	stopper = append(stopper, pool.Stop())

	dispatcher := services.NewPostCreationDispatcher(services.DispatcherConfig{
		Pool:                  pool,
		Retryer:               retry.NewExponentialBackOff(cfg.ExponentialBackoff),
		AccountCache:          accountCache,
		AccountTTL:            cfg.Cache.AccountTTL,
		NotificationPublisher: publisherClient.Notification,
		AuditPublisher:        publisherClient.AuditLog,
		IDGenerator:           idgenerator.New(),
		NewRelic:              newRelic,
		Metrics:               mtc,
	})

	srv := services.New(cfg, sqlRepo, accountCache, dispatcher, mtc)

	return &Setup{
		Config:          cfg,
		NewRelic:        newRelic,
		WriteDB:         writeDB,
		ReadDB:          readDB,
		Cache:           rdb,
		RepoSQL:         sqlRepo,
		RepoCache:       cacheRepo,
		WorkerPool:      pool,
		Service:         srv,
		PublisherClient: &publisherClient,
		Metrics:         mtc,
	}, stopper, nil
}

func setupPostgres(conf config.Config) (writeDB *sql.DB, readDB *sql.DB, err error) {
	writeDB, err = initDB(conf.Postgres.Write)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init write DB: %w", err)
	}

	readDB, err = initDB(conf.Postgres.Read)
	if err != nil {
		return writeDB, nil, fmt.Errorf("failed to init read DB: %w", err)
	}

	return writeDB, readDB, nil
}

func initDB(pgConf config.Database) (*sql.DB, error) {
	const (
		DefaultMaxOpen     = 10
		DefaultMaxIdle     = 10
		DefaultMaxLifetime = 3 // minutes
	)

	dsName := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s search_path=%s sslmode=disable",
		pgConf.DbHost, pgConf.DbPort, pgConf.DbUser, pgConf.DbPass, pgConf.DbName, pgConf.DbSchema,
	)

	db, err := sql.Open("postgres", dsName)
	if err != nil {
		return nil, err
	}

	if pgConf.MaxOpenConnection > 0 {
		db.SetMaxOpenConns(pgConf.MaxOpenConnection)
	} else {
		db.SetMaxOpenConns(DefaultMaxOpen)
	}

	if pgConf.MaxIdleConnection > 0 {
		db.SetMaxIdleConns(pgConf.MaxIdleConnection)
	} else {
		db.SetMaxIdleConns(DefaultMaxIdle)
	}

	if pgConf.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(pgConf.ConnMaxLifetime) * time.Minute)
	} else {
		db.SetConnMaxLifetime(time.Duration(DefaultMaxLifetime) * time.Minute)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// setupNR only reports from prod, other envs run without an agent.
func setupNR(ctx context.Context, cfg config.Config) *newrelic.Application {
	if config.StringToEnvironment(cfg.App.Env) != config.PROD_ENV {
		return nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.App.Name),
		newrelic.ConfigLicense(cfg.NewRelicLicenseKey),
		func(nrCfg *newrelic.Config) {
			nrCfg.Logger = nrzap.Transform(xlog.Logger())
		},
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		xlog.Errorf(ctx, "setupNR.NewApplication - %v", err)
		return nil
	}
	if err = app.WaitForConnection(15 * time.Second); err != nil {
		xlog.Errorf(ctx, "setupNR.WaitForConnection - %v", err)
	}
	return app
}
