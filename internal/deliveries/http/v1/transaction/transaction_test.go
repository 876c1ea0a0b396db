package transaction

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
)

func Test_Handler_createTransaction(t *testing.T) {
	eventDate := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	type expectation struct {
		wantRes  string
		wantCode int
	}
	tests := []struct {
		name        string
		body        string
		headers     map[string]string
		expectation expectation
		doMock      func(th testTransactionHelper)
	}{
		{
			name: "success - debit answers with the signed amount",
			body: `{"accountId":1,"operationTypeId":1,"amount":50}`,
			expectation: expectation{
				wantRes:  `{"transactionId":10,"accountId":1,"operationTypeId":1,"amount":-50.00,"eventDate":"2026-01-02T03:04:05Z"}`,
				wantCode: http.StatusCreated,
			},
			doMock: func(th testTransactionHelper) {
				th.mockTransactionService.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, in models.CreateTransactionIn) (*models.Transaction, error) {
						assert.Equal(t, int64(1), in.AccountID)
						assert.Equal(t, models.OperationTypeCashPurchase, in.OperationTypeID)
						assert.Equal(t, "50", in.Amount.String())
						return &models.Transaction{
							ID:                 10,
							AccountID:          1,
							OperationTypeID:    models.OperationTypeCashPurchase,
							Amount:             decimal.RequireFromString("50"),
							SignedAmount:       decimal.RequireFromString("-50"),
							OutstandingBalance: decimal.RequireFromString("-50"),
							EventTimestamp:     eventDate,
							Status:             models.TransactionStatusCompleted,
						}, nil
					})
			},
		},
		{
			name: "error - zero amount",
			body: `{"accountId":1,"operationTypeId":4,"amount":0}`,
			expectation: expectation{
				wantRes:  `{"status":"error","code":"VALIDATION_ERROR","message":"validation failed","errors":[{"code":"VALIDATION_ERROR","field":"amount","message":"amount must be greater than 0"}]}`,
				wantCode: http.StatusBadRequest,
			},
		},
		{
			name: "error - too many fractional digits",
			body: `{"accountId":1,"operationTypeId":4,"amount":10.123}`,
			expectation: expectation{
				wantRes:  `{"status":"error","code":"VALIDATION_ERROR","message":"validation failed","errors":[{"code":"VALIDATION_ERROR","field":"amount","message":"amount must have at most 2 decimal places"}]}`,
				wantCode: http.StatusBadRequest,
			},
		},
		{
			name: "error - amount above column precision",
			body: `{"accountId":1,"operationTypeId":4,"amount":1000000000000000000}`,
			expectation: expectation{
				wantRes:  `{"status":"error","code":"VALIDATION_ERROR","message":"validation failed","errors":[{"code":"VALIDATION_ERROR","field":"amount","message":"amount must be less than 1000000000000000000"}]}`,
				wantCode: http.StatusBadRequest,
			},
		},
		{
			name: "error - truncated body",
			body: `{"accountId":1,"operationTypeId":4,"amount":1`,
			expectation: expectation{
				wantRes:  `{"status":"error","code":"VALIDATION_ERROR","message":"validation failed","errors":[{"code":"VALIDATION_ERROR","message":"request is malformed"}]}`,
				wantCode: http.StatusBadRequest,
			},
		},
		{
			name: "error - amount is not a number",
			body: `{"accountId":1,"operationTypeId":4,"amount":"abc"}`,
			expectation: expectation{
				wantRes:  `{"status":"error","code":"VALIDATION_ERROR","message":"validation failed","errors":[{"code":"VALIDATION_ERROR","field":"amount","message":"amount must be a number"}]}`,
				wantCode: http.StatusBadRequest,
			},
		},
		{
			name: "error - account id is not an integer",
			body: `{"accountId":"x","operationTypeId":4,"amount":10}`,
			expectation: expectation{
				wantRes:  `{"status":"error","code":"VALIDATION_ERROR","message":"validation failed","errors":[{"code":"VALIDATION_ERROR","field":"accountId","message":"account id must be an integer"}]}`,
				wantCode: http.StatusBadRequest,
			},
		},
		{
			name: "error - invalid operation type",
			body: `{"accountId":1,"operationTypeId":9,"amount":10}`,
			expectation: expectation{
				wantRes:  `{"status":"error","code":"INVALID_OPERATION_TYPE","message":"invalid operation type"}`,
				wantCode: http.StatusBadRequest,
			},
			doMock: func(th testTransactionHelper) {
				th.mockTransactionService.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(nil, models.WrapErrMap(models.ErrKeyInvalidOperationType, common.ErrInvalidOperationType))
			},
		},
		{
			name: "error - account not found",
			body: `{"accountId":99,"operationTypeId":4,"amount":10}`,
			expectation: expectation{
				wantRes:  `{"status":"error","code":"ACCOUNT_NOT_FOUND","message":"account not found"}`,
				wantCode: http.StatusNotFound,
			},
			doMock: func(th testTransactionHelper) {
				th.mockTransactionService.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(nil, models.WrapErrMap(models.ErrKeyAccountNotFound, common.ErrAccountNotFound))
			},
		},
		{
			name:    "error - idempotency key in progress",
			body:    `{"accountId":1,"operationTypeId":4,"amount":10}`,
			headers: map[string]string{"Idempotency-Key": "k1"},
			expectation: expectation{
				wantRes:  `{"status":"error","code":"IDEMPOTENCY_IN_PROGRESS","message":"request with same idempotency key is being processed"}`,
				wantCode: http.StatusConflict,
			},
			doMock: func(th testTransactionHelper) {
				th.mockCacheRepository.EXPECT().Get(gomock.Any(), "idempotency:/api/v1/transactions:k1").Return("", common.ErrDataNotFound)
				th.mockCacheRepository.EXPECT().SetIfNotExists(gomock.Any(), "idempotency:/api/v1/transactions:k1", gomock.Any(), gomock.Any()).Return(false, nil)
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			th := transactionTestHelper(t)
			if tt.doMock != nil {
				tt.doMock(th)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()
			th.router.ServeHTTP(rec, req)

			require.Equal(t, tt.expectation.wantCode, rec.Code)
			require.Equal(t, tt.expectation.wantRes, strings.TrimSuffix(rec.Body.String(), "\n"))
		})
	}
}
