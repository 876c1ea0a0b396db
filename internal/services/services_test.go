package services_test

import (
	"os"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/mock/gomock"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/cache"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/metrics"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/config"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
	"bitbucket.org/Amartha/go-fp-ledger/internal/repositories/mock"
	"bitbucket.org/Amartha/go-fp-ledger/internal/services"

	mockServices "bitbucket.org/Amartha/go-fp-ledger/internal/services/mock"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestMain(m *testing.M) {
	xlog.InitForTest()
	common.Now = func() time.Time { return fixedNow }
	os.Exit(m.Run())
}

type testServiceHelper struct {
	mockCtrl          *gomock.Controller
	config            config.Config
	mockSQLRepository *mock.MockSQLRepository
	mockAccRepository *mock.MockAccountRepository
	mockTrxRepository *mock.MockTransactionRepository
	mockRedis         redismock.ClientMock
	mockDispatcher    *mockServices.MockPostCreationDispatcher

	accountService     services.AccountService
	transactionService services.TransactionService
}

func serviceTestHelper(t *testing.T) testServiceHelper {
	t.Helper()

	mockCtrl := gomock.NewController(t)

	mockSQLRepository := mock.NewMockSQLRepository(mockCtrl)
	mockAccountRepository := mock.NewMockAccountRepository(mockCtrl)
	mockTransactionRepository := mock.NewMockTransactionRepository(mockCtrl)
	mockDispatcher := mockServices.NewMockPostCreationDispatcher(mockCtrl)

	mockSQLRepository.EXPECT().GetAccountRepository().Return(mockAccountRepository).AnyTimes()
	mockSQLRepository.EXPECT().GetTransactionRepository().Return(mockTransactionRepository).AnyTimes()

	rdb, mockRedis := redismock.NewClientMock()

	conf := config.Config{
		Cache: config.CacheConfig{AccountTTL: 10 * time.Minute},
	}

	srv := services.New(
		conf,
		mockSQLRepository,
		cache.NewRedisClient[models.AccountOut](rdb),
		mockDispatcher,
		metrics.New(prometheus.NewRegistry()),
	)

	return testServiceHelper{
		mockCtrl:          mockCtrl,
		config:            conf,
		mockSQLRepository: mockSQLRepository,
		mockAccRepository: mockAccountRepository,
		mockTrxRepository: mockTransactionRepository,
		mockRedis:         mockRedis,
		mockDispatcher:    mockDispatcher,

		accountService:     srv.Account,
		transactionService: srv.Transaction,
	}
}
