package services_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
	"bitbucket.org/Amartha/go-fp-ledger/internal/repositories"
)

func amountOf(t *testing.T, v string) models.Decimal {
	t.Helper()
	d, err := models.NewDecimal(v)
	require.NoError(t, err)
	return d
}

func unsettledDebit(id int64, amount string, minute int) *models.Transaction {
	d := decimal.RequireFromString(amount)
	return &models.Transaction{
		ID:                 id,
		AccountID:          1,
		OperationTypeID:    models.OperationTypeCashPurchase,
		Amount:             d.Abs(),
		SignedAmount:       d,
		OutstandingBalance: d,
		EventTimestamp:     fixedNow.Add(-time.Duration(minute) * time.Minute),
		Status:             models.TransactionStatusCompleted,
	}
}

func expectAtomic(th testServiceHelper) *gomock.Call {
	return th.mockSQLRepository.EXPECT().Atomic(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, steps func(context.Context, repositories.SQLRepository) error) error {
			return steps(ctx, th.mockSQLRepository)
		})
}

func expectInsert(th testServiceHelper, id int64) *gomock.Call {
	return th.mockTrxRepository.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, trx *models.Transaction) error {
			trx.ID = id
			return nil
		})
}

func TestTransactionService_Create(t *testing.T) {
	account := &models.Account{ID: 1, DocumentNumber: "12345678900"}

	type want struct {
		signed      string
		outstanding string
	}
	tests := []struct {
		name    string
		in      models.CreateTransactionIn
		doMock  func(th testServiceHelper)
		want    want
		wantErr error
	}{
		{
			name: "success - debit is stored negated and not discharged",
			in:   models.CreateTransactionIn{AccountID: 1, OperationTypeID: models.OperationTypeCashPurchase, Amount: amountOf(t, "50")},
			doMock: func(th testServiceHelper) {
				th.mockAccRepository.EXPECT().GetByID(gomock.Any(), int64(1)).Return(account, nil)
				expectInsert(th, 10)
				th.mockDispatcher.EXPECT().TransactionCreated(gomock.Any(), gomock.Any())
			},
			want: want{signed: "-50", outstanding: "-50"},
		},
		{
			name: "success - payment discharges the oldest debits first",
			in:   models.CreateTransactionIn{AccountID: 1, OperationTypeID: models.OperationTypePayment, Amount: amountOf(t, "60")},
			doMock: func(th testServiceHelper) {
				th.mockAccRepository.EXPECT().GetByID(gomock.Any(), int64(1)).Return(account, nil)
				expectInsert(th, 20)
				expectAtomic(th)
				th.mockAccRepository.EXPECT().LockByID(gomock.Any(), int64(1)).Return(nil)
				th.mockTrxRepository.EXPECT().GetUnsettledByAccountID(gomock.Any(), int64(1), fixedNow, int64(20)).
					Return([]*models.Transaction{
						unsettledDebit(1, "-50", 30),
						unsettledDebit(2, "-23.5", 20),
						unsettledDebit(3, "-18.7", 10),
					}, nil)
				th.mockTrxRepository.EXPECT().BulkUpdateOutstandingBalance(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, trxs []*models.Transaction) error {
						require.Len(t, trxs, 3)
						assert.Equal(t, int64(1), trxs[0].ID)
						assert.True(t, trxs[0].OutstandingBalance.IsZero())
						assert.Equal(t, int64(2), trxs[1].ID)
						assert.Equal(t, "-13.5", trxs[1].OutstandingBalance.String())
						assert.Equal(t, int64(20), trxs[2].ID)
						assert.True(t, trxs[2].OutstandingBalance.IsZero())
						return nil
					})
				th.mockDispatcher.EXPECT().TransactionCreated(gomock.Any(), gomock.Any())
			},
			want: want{signed: "60", outstanding: "0"},
		},
		{
			name: "success - payment without debits keeps its full outstanding balance",
			in:   models.CreateTransactionIn{AccountID: 1, OperationTypeID: models.OperationTypePayment, Amount: amountOf(t, "60")},
			doMock: func(th testServiceHelper) {
				th.mockAccRepository.EXPECT().GetByID(gomock.Any(), int64(1)).Return(account, nil)
				expectInsert(th, 20)
				expectAtomic(th)
				th.mockAccRepository.EXPECT().LockByID(gomock.Any(), int64(1)).Return(nil)
				th.mockTrxRepository.EXPECT().GetUnsettledByAccountID(gomock.Any(), int64(1), fixedNow, int64(20)).Return(nil, nil)
				th.mockTrxRepository.EXPECT().BulkUpdateOutstandingBalance(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, trxs []*models.Transaction) error {
						require.Len(t, trxs, 1)
						assert.Equal(t, int64(20), trxs[0].ID)
						return nil
					})
				th.mockDispatcher.EXPECT().TransactionCreated(gomock.Any(), gomock.Any())
			},
			want: want{signed: "60", outstanding: "60"},
		},
		{
			name: "error - account not found",
			in:   models.CreateTransactionIn{AccountID: 1, OperationTypeID: models.OperationTypePayment, Amount: amountOf(t, "60")},
			doMock: func(th testServiceHelper) {
				th.mockAccRepository.EXPECT().GetByID(gomock.Any(), int64(1)).Return(nil, sql.ErrNoRows)
			},
			wantErr: common.ErrAccountNotFound,
		},
		{
			name: "error - unknown operation type",
			in:   models.CreateTransactionIn{AccountID: 1, OperationTypeID: 9, Amount: amountOf(t, "60")},
			doMock: func(th testServiceHelper) {
				th.mockAccRepository.EXPECT().GetByID(gomock.Any(), int64(1)).Return(account, nil)
			},
			wantErr: common.ErrInvalidOperationType,
		},
		{
			name: "error - insert failed",
			in:   models.CreateTransactionIn{AccountID: 1, OperationTypeID: models.OperationTypeWithdrawal, Amount: amountOf(t, "60")},
			doMock: func(th testServiceHelper) {
				th.mockAccRepository.EXPECT().GetByID(gomock.Any(), int64(1)).Return(account, nil)
				th.mockTrxRepository.EXPECT().Create(gomock.Any(), gomock.Any()).Return(assert.AnError)
			},
			wantErr: assert.AnError,
		},
		{
			name: "error - account lock failed",
			in:   models.CreateTransactionIn{AccountID: 1, OperationTypeID: models.OperationTypePayment, Amount: amountOf(t, "60")},
			doMock: func(th testServiceHelper) {
				th.mockAccRepository.EXPECT().GetByID(gomock.Any(), int64(1)).Return(account, nil)
				expectInsert(th, 20)
				expectAtomic(th)
				th.mockAccRepository.EXPECT().LockByID(gomock.Any(), int64(1)).Return(assert.AnError)
			},
			wantErr: assert.AnError,
		},
		{
			name: "error - bulk update failed",
			in:   models.CreateTransactionIn{AccountID: 1, OperationTypeID: models.OperationTypePayment, Amount: amountOf(t, "60")},
			doMock: func(th testServiceHelper) {
				th.mockAccRepository.EXPECT().GetByID(gomock.Any(), int64(1)).Return(account, nil)
				expectInsert(th, 20)
				expectAtomic(th)
				th.mockAccRepository.EXPECT().LockByID(gomock.Any(), int64(1)).Return(nil)
				th.mockTrxRepository.EXPECT().GetUnsettledByAccountID(gomock.Any(), int64(1), fixedNow, int64(20)).
					Return([]*models.Transaction{unsettledDebit(1, "-50", 30)}, nil)
				th.mockTrxRepository.EXPECT().BulkUpdateOutstandingBalance(gomock.Any(), gomock.Any()).Return(common.ErrNoRowsAffected)
			},
			wantErr: common.ErrNoRowsAffected,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			th := serviceTestHelper(t)
			tt.doMock(th)

			got, err := th.transactionService.Create(context.Background(), tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want.signed, got.SignedAmount.String())
			assert.Equal(t, tt.want.outstanding, got.OutstandingBalance.String())
			assert.Equal(t, fixedNow, got.EventTimestamp)
			assert.Equal(t, models.TransactionStatusCompleted, got.Status)
		})
	}
}

func TestTransactionService_Create_DischargeCutoffIsLockTime(t *testing.T) {
	lockedAt := fixedNow.Add(time.Second)
	t.Cleanup(func() { common.Now = func() time.Time { return fixedNow } })

	th := serviceTestHelper(t)
	th.mockAccRepository.EXPECT().GetByID(gomock.Any(), int64(1)).
		Return(&models.Account{ID: 1, DocumentNumber: "12345678900"}, nil)
	th.mockTrxRepository.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, trx *models.Transaction) error {
			trx.ID = 20
			common.Now = func() time.Time { return lockedAt }
			return nil
		})
	expectAtomic(th)
	th.mockAccRepository.EXPECT().LockByID(gomock.Any(), int64(1)).Return(nil)
	th.mockTrxRepository.EXPECT().GetUnsettledByAccountID(gomock.Any(), int64(1), lockedAt, int64(20)).Return(nil, nil)
	th.mockTrxRepository.EXPECT().BulkUpdateOutstandingBalance(gomock.Any(), gomock.Any()).Return(nil)
	th.mockDispatcher.EXPECT().TransactionCreated(gomock.Any(), gomock.Any())

	got, err := th.transactionService.Create(context.Background(),
		models.CreateTransactionIn{AccountID: 1, OperationTypeID: models.OperationTypePayment, Amount: amountOf(t, "10")})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, got.EventTimestamp)
}
