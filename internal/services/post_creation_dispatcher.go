package services

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/cache"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/idgenerator"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/metrics"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/publisher"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/retry"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/worker"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
	"bitbucket.org/Amartha/go-fp-ledger/internal/monitoring"
)

const logPrefixDispatcher = "[POST-CREATION]"

const (
	TaskAccountCacheRefresh     = "account_cache_refresh"
	TaskNotifyAccountCreated    = "notify_account_created"
	TaskAuditAccountCreated     = "audit_account_created"
	TaskAuditTransactionCreated = "audit_transaction_created"
)

const (
	taskStatusSuccess = "success"
	taskStatusFailed  = "failed"
	taskStatusDropped = "dropped"
)

//go:generate mockgen -source=post_creation_dispatcher.go -destination=mock/post_creation_dispatcher_mock.go -package=mock

// PostCreationDispatcher schedules the side effects of a successful create.
// Calls never block on and never fail because of those side effects.
type PostCreationDispatcher interface {
	AccountCreated(ctx context.Context, acc models.Account)
	TransactionCreated(ctx context.Context, trx models.Transaction)
}

type DispatcherConfig struct {
	Pool    worker.Submitter
	Retryer retry.Retryer

	AccountCache cache.Client[models.AccountOut]
	AccountTTL   time.Duration

	NotificationPublisher publisher.Publisher
	AuditPublisher        publisher.Publisher

	IDGenerator idgenerator.Generator

	// optional
	NewRelic *newrelic.Application
	Metrics  metrics.Metrics
}

type dispatcher struct {
	cfg DispatcherConfig
}

var _ PostCreationDispatcher = (*dispatcher)(nil)

func NewPostCreationDispatcher(cfg DispatcherConfig) PostCreationDispatcher {
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = idgenerator.New()
	}
	return &dispatcher{cfg: cfg}
}

func (d *dispatcher) AccountCreated(ctx context.Context, acc models.Account) {
	key := strconv.FormatInt(acc.ID, 10)

	d.submit(ctx, TaskAccountCacheRefresh, func(ctx context.Context) error {
		return d.cfg.AccountCache.Set(ctx, models.AccountCacheKey(acc.ID), acc.ToModelResponse(), d.cfg.AccountTTL)
	})

	d.submit(ctx, TaskNotifyAccountCreated, func(ctx context.Context) error {
		event := models.NewEvent(d.cfg.IDGenerator.Generate(), models.NewAccountCreatedNotification(acc), common.Now())
		return d.cfg.NotificationPublisher.Publish(ctx, event, publishOptions(ctx, key)...)
	})

	d.submit(ctx, TaskAuditAccountCreated, func(ctx context.Context) error {
		event := models.NewEvent(d.cfg.IDGenerator.Generate(), models.NewAccountCreatedAudit(acc), common.Now())
		return d.cfg.AuditPublisher.Publish(ctx, event, publishOptions(ctx, key)...)
	})
}

func (d *dispatcher) TransactionCreated(ctx context.Context, trx models.Transaction) {
	d.submit(ctx, TaskAuditTransactionCreated, func(ctx context.Context) error {
		event := models.NewEvent(d.cfg.IDGenerator.Generate(), models.NewTransactionCreatedAudit(trx), common.Now())
		return d.cfg.AuditPublisher.Publish(ctx, event, publishOptions(ctx, strconv.FormatInt(trx.AccountID, 10))...)
	})
}

func (d *dispatcher) submit(ctx context.Context, name string, op func(ctx context.Context) error) {
	task := worker.Task{
		Name: name,
		Run: func(ctx context.Context) (err error) {
			ctx, end := monitoring.StartBackground(ctx, d.cfg.NewRelic, "PostCreation/"+name)
			defer func() { end(err) }()

			monitor := monitoring.New(ctx, monitoring.WithLayer(monitoring.LayerWorker), monitoring.WithSegmentName(name))
			defer func() {
				monitor.Finish(monitoring.WithFinishCheckError(err), monitoring.WithFinishXlogFields(xlog.String("task", name)))
			}()

			err = d.cfg.Retryer.Retry(ctx, func() error { return op(ctx) }, nil)
			if err != nil {
				d.observe(name, taskStatusFailed)
				return err
			}

			d.observe(name, taskStatusSuccess)
			return nil
		},
	}

	if err := d.cfg.Pool.Submit(ctx, task); err != nil {
		xlog.Warn(ctx, logPrefixDispatcher,
			xlog.String("task", name),
			xlog.String("status", taskStatusDropped),
			xlog.Err(err))
		d.observe(name, taskStatusDropped)
	}
}

// publishOptions keys events by account so one account's events stay ordered
// on a partition, and forwards the request id for consumer side correlation.
func publishOptions(ctx context.Context, key string) []publisher.PublishOption {
	opts := []publisher.PublishOption{publisher.WithKey(key)}
	if requestID := xlog.RequestIDFromContext(ctx); requestID != "" {
		opts = append(opts, publisher.WithHeaders(map[string]string{echo.HeaderXRequestID: requestID}))
	}
	return opts
}

func (d *dispatcher) observe(task, status string) {
	if d.cfg.Metrics == nil {
		return
	}
	d.cfg.Metrics.GetLedgerPrometheus().ObservePostCreationTask(task, status)
}
