package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common/metrics"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/config"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
	mockRepo "bitbucket.org/Amartha/go-fp-ledger/internal/repositories/mock"
	mockSvc "bitbucket.org/Amartha/go-fp-ledger/internal/services/mock"
)

func TestMain(m *testing.M) {
	xlog.InitForTest()
	os.Exit(m.Run())
}

func TestNewHTTPServer_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	sqlRepo := mockRepo.NewMockSQLRepository(ctrl)
	cacheRepo := mockRepo.NewMockCacheRepository(ctrl)
	accountSvc := mockSvc.NewMockAccountService(ctrl)
	trxSvc := mockSvc.NewMockTransactionService(ctrl)

	srv := NewHTTPServer(config.Config{App: config.App{Name: "go-fp-ledger", Env: "prod", HTTPPort: 8080}}, Dependencies{
		Metrics:            metrics.New(prometheus.NewRegistry()),
		SQLRepo:            sqlRepo,
		CacheRepo:          cacheRepo,
		AccountService:     accountSvc,
		TransactionService: trxSvc,
	})

	t.Run("trailing slash is ignored", func(t *testing.T) {
		accountSvc.EXPECT().GetByID(gomock.Any(), int64(5)).Return(models.AccountOut{AccountID: 5, DocumentNumber: "1"}, nil)

		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/api/v1/accounts/5/", nil))

		assert.Equal(t, nethttp.StatusOK, rec.Code)
		assert.Equal(t, `{"accountId":5,"documentNumber":"1"}`, strings.TrimSuffix(rec.Body.String(), "\n"))
		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/api/v1/unknown", nil))

		assert.Equal(t, nethttp.StatusNotFound, rec.Code)
	})

	t.Run("pprof is not exposed in prod", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/debug/pprof/", nil))

		assert.Equal(t, nethttp.StatusNotFound, rec.Code)
	})
}
