package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common"
	mockCache "bitbucket.org/Amartha/go-fp-ledger/internal/common/cache/mock"
	mockIDGenerator "bitbucket.org/Amartha/go-fp-ledger/internal/common/idgenerator/mock"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/metrics"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/publisher"
	mockPublisher "bitbucket.org/Amartha/go-fp-ledger/internal/common/publisher/mock"
	mockRetry "bitbucket.org/Amartha/go-fp-ledger/internal/common/retry/mock"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/worker"
	mockWorker "bitbucket.org/Amartha/go-fp-ledger/internal/common/worker/mock"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/config"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
	"bitbucket.org/Amartha/go-fp-ledger/internal/services"
)

type dispatcherHelper struct {
	pool          *mockWorker.MockSubmitter
	retryer       *mockRetry.MockRetryer
	cache         *mockCache.MockClient[models.AccountOut]
	notification  *mockPublisher.MockPublisher
	audit         *mockPublisher.MockPublisher
	idgen         *mockIDGenerator.MockGenerator
	registry      *prometheus.Registry
	sut           services.PostCreationDispatcher
	cancelRequest context.CancelFunc
	requestCtx    context.Context
}

func newDispatcherHelper(t *testing.T) dispatcherHelper {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := dispatcherHelper{
		pool:         mockWorker.NewMockSubmitter(ctrl),
		retryer:      mockRetry.NewMockRetryer(ctrl),
		cache:        mockCache.NewMockClient[models.AccountOut](ctrl),
		notification: mockPublisher.NewMockPublisher(ctrl),
		audit:        mockPublisher.NewMockPublisher(ctrl),
		idgen:        mockIDGenerator.NewMockGenerator(ctrl),
		registry:     prometheus.NewRegistry(),
	}
	h.requestCtx, h.cancelRequest = context.WithCancel(context.Background())

	h.idgen.EXPECT().Generate().Return("evt-1").AnyTimes()
	h.retryer.EXPECT().Retry(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, op func() error, _ func(error) error) error {
			return op()
		}).AnyTimes()

	h.sut = services.NewPostCreationDispatcher(services.DispatcherConfig{
		Pool:                  h.pool,
		Retryer:               h.retryer,
		AccountCache:          h.cache,
		AccountTTL:            10 * time.Minute,
		NotificationPublisher: h.notification,
		AuditPublisher:        h.audit,
		IDGenerator:           h.idgen,
		Metrics:               metrics.New(h.registry),
	})
	return h
}

// runInline executes submitted tasks on the caller goroutine after the
// request context is cancelled, mimicking a response that already went out.
func (h dispatcherHelper) runInline(t *testing.T) {
	h.pool.EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, task worker.Task) error {
			h.cancelRequest()
			_ = task.Run(context.WithoutCancel(ctx))
			return nil
		}).AnyTimes()
}

func (h dispatcherHelper) taskCount(t *testing.T, task, status string) float64 {
	t.Helper()
	mfs, err := h.registry.Gather()
	require.NoError(t, err)

	for _, mf := range mfs {
		if mf.GetName() != "ledger_post_creation_tasks_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["task"] == task && labels["status"] == status {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestPostCreationDispatcher_AccountCreated(t *testing.T) {
	h := newDispatcherHelper(t)
	h.runInline(t)

	acc := models.Account{ID: 42, DocumentNumber: "12345678900", AvailableBalance: decimal.Zero}

	h.cache.EXPECT().Set(gomock.Any(), "account:42", models.AccountOut{AccountID: 42, DocumentNumber: "12345678900"}, 10*time.Minute).Return(nil)
	h.notification.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, msg any, opts ...publisher.PublishOption) error {
			assert.NoError(t, ctx.Err())
			event, ok := msg.(models.Event[models.AccountCreatedNotification])
			require.True(t, ok)
			assert.Equal(t, "evt-1", event.EventID)
			assert.Equal(t, models.EventTypeNotifyAccountCreated, event.EventType)
			assert.Equal(t, int64(42), event.EventData.AccountID)
			assert.Equal(t, common.Now(), event.EventDate)
			assert.Len(t, opts, 1)
			return nil
		})
	h.audit.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg any, _ ...publisher.PublishOption) error {
			event, ok := msg.(models.Event[models.AccountCreatedAudit])
			require.True(t, ok)
			assert.Equal(t, models.EventTypeAccountCreated, event.EventType)
			assert.Equal(t, "12345678900", event.EventData.DocumentNumber)
			return nil
		})

	h.sut.AccountCreated(h.requestCtx, acc)

	assert.Equal(t, float64(1), h.taskCount(t, services.TaskAccountCacheRefresh, "success"))
	assert.Equal(t, float64(1), h.taskCount(t, services.TaskNotifyAccountCreated, "success"))
	assert.Equal(t, float64(1), h.taskCount(t, services.TaskAuditAccountCreated, "success"))
}

func TestPostCreationDispatcher_TransactionCreated(t *testing.T) {
	h := newDispatcherHelper(t)
	h.runInline(t)

	trx := models.Transaction{
		ID:                 7,
		AccountID:          42,
		OperationTypeID:    models.OperationTypeWithdrawal,
		Amount:             decimal.RequireFromString("50"),
		SignedAmount:       decimal.RequireFromString("-50"),
		OutstandingBalance: decimal.RequireFromString("-50"),
		EventTimestamp:     fixedNow,
	}

	h.audit.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg any, _ ...publisher.PublishOption) error {
			event, ok := msg.(models.Event[models.TransactionCreatedAudit])
			require.True(t, ok)
			assert.Equal(t, models.EventTypeTransactionCreated, event.EventType)
			assert.Equal(t, int64(7), event.EventData.TransactionID)
			assert.Equal(t, "-50.00", event.EventData.Amount.StringFixed(2))
			return nil
		})

	h.sut.TransactionCreated(h.requestCtx, trx)
}

func TestPostCreationDispatcher_FailuresStayOffTheCaller(t *testing.T) {
	t.Run("one failing side effect does not stop the others", func(t *testing.T) {
		h := newDispatcherHelper(t)
		h.runInline(t)

		h.cache.EXPECT().Set(gomock.Any(), "account:1", gomock.Any(), gomock.Any()).Return(assert.AnError)
		h.notification.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)
		h.audit.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		h.sut.AccountCreated(context.Background(), models.Account{ID: 1})

		assert.Equal(t, float64(1), h.taskCount(t, services.TaskAccountCacheRefresh, "failed"))
		assert.Equal(t, float64(1), h.taskCount(t, services.TaskNotifyAccountCreated, "failed"))
		assert.Equal(t, float64(1), h.taskCount(t, services.TaskAuditAccountCreated, "success"))
	})

	t.Run("full queue drops the task", func(t *testing.T) {
		h := newDispatcherHelper(t)
		h.pool.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(common.ErrQueueFull)

		h.sut.TransactionCreated(context.Background(), models.Transaction{ID: 1, AccountID: 1})
		assert.Equal(t, float64(1), h.taskCount(t, services.TaskAuditTransactionCreated, "dropped"))
	})

	t.Run("stopped pool drops the task", func(t *testing.T) {
		h := newDispatcherHelper(t)
		h.pool.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(common.ErrWorkerStopped)

		h.sut.TransactionCreated(context.Background(), models.Transaction{ID: 1, AccountID: 1})
	})
}

func TestPostCreationDispatcher_WithWorkerPool(t *testing.T) {
	ctrl := gomock.NewController(t)
	audit := mockPublisher.NewMockPublisher(ctrl)
	retryer := mockRetry.NewMockRetryer(ctrl)
	retryer.EXPECT().Retry(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, op func() error, _ func(error) error) error {
			return op()
		}).AnyTimes()

	pool := worker.New(config.DispatcherConfig{Workers: 2, QueueSize: 16, TaskTimeout: time.Second})
	require.NoError(t, pool.Start()())

	var (
		mu  sync.Mutex
		ids []int64
		wg  sync.WaitGroup
	)
	audit.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg any, _ ...publisher.PublishOption) error {
			defer wg.Done()
			event := msg.(models.Event[models.TransactionCreatedAudit])
			mu.Lock()
			ids = append(ids, event.EventData.TransactionID)
			mu.Unlock()
			return nil
		}).Times(5)

	sut := services.NewPostCreationDispatcher(services.DispatcherConfig{
		Pool:           pool,
		Retryer:        retryer,
		AuditPublisher: audit,
	})

	wg.Add(5)
	for i := int64(1); i <= 5; i++ {
		sut.TransactionCreated(context.Background(), models.Transaction{ID: i, AccountID: 1})
	}
	wg.Wait()
	require.NoError(t, pool.Stop()(context.Background()))

	assert.ElementsMatch(t, []int64{1, 2, 3, 4, 5}, ids)
}

func TestPostCreationDispatcher_ForwardsRequestID(t *testing.T) {
	h := newDispatcherHelper(t)
	h.runInline(t)

	h.audit.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ any, opts ...publisher.PublishOption) error {
			assert.Equal(t, "req-1", xlog.RequestIDFromContext(ctx))
			assert.Len(t, opts, 2)
			return nil
		})

	h.sut.TransactionCreated(xlog.NewContext(h.requestCtx, "req-1"), models.Transaction{ID: 8, AccountID: 42})
}
