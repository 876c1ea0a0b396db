package transaction

import (
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/mock/gomock"

	commonhttp "bitbucket.org/Amartha/go-fp-ledger/internal/common/http"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/http/middleware"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/config"
	mockRepo "bitbucket.org/Amartha/go-fp-ledger/internal/repositories/mock"
	"bitbucket.org/Amartha/go-fp-ledger/internal/services/mock"
)

type testTransactionHelper struct {
	router                 *echo.Echo
	mockCtrl               *gomock.Controller
	mockTransactionService *mock.MockTransactionService
	mockCacheRepository    *mockRepo.MockCacheRepository
}

func transactionTestHelper(t *testing.T) testTransactionHelper {
	t.Helper()

	mockCtrl := gomock.NewController(t)
	mockTransactionSvc := mock.NewMockTransactionService(mockCtrl)
	mockCacheRepo := mockRepo.NewMockCacheRepository(mockCtrl)

	app := echo.New()
	app.HTTPErrorHandler = commonhttp.ErrorHandler
	v1Group := app.Group("/api/v1")
	m := middleware.NewMiddleware(config.Config{}, mockCacheRepo)

	New(v1Group, mockTransactionSvc, m)

	return testTransactionHelper{
		router:                 app,
		mockCtrl:               mockCtrl,
		mockTransactionService: mockTransactionSvc,
		mockCacheRepository:    mockCacheRepo,
	}
}

func TestMain(m *testing.M) {
	xlog.InitForTest()
	os.Exit(m.Run())
}
