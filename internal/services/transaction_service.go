package services

import (
	"context"
	"errors"
	"fmt"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
	"bitbucket.org/Amartha/go-fp-ledger/internal/monitoring"
	"bitbucket.org/Amartha/go-fp-ledger/internal/repositories"
)

//go:generate mockgen -source=transaction_service.go -destination=mock/transaction_service_mock.go -package=mock

type TransactionService interface {
	// Create records a transaction for an existing account. A payment is
	// discharged against the account's unsettled debits before returning.
	Create(ctx context.Context, in models.CreateTransactionIn) (out *models.Transaction, err error)
}

type transaction service

var _ TransactionService = (*transaction)(nil)

func (ts *transaction) Create(ctx context.Context, in models.CreateTransactionIn) (out *models.Transaction, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err),
			monitoring.WithFinishXlogFields(
				xlog.Int64("account_id", in.AccountID),
				xlog.String("operation_type", in.OperationTypeID.String())))
	}()

	_, err = ts.srv.sqlRepo.GetAccountRepository().GetByID(ctx, in.AccountID)
	if err != nil {
		return nil, checkDatabaseError(err, models.ErrKeyAccountNotFound, common.ErrAccountNotFound)
	}

	trx, err := models.NewTransaction(in.AccountID, in.OperationTypeID, in.Amount.Decimal, common.Now())
	if err != nil {
		if errors.Is(err, common.ErrInvalidOperationType) {
			return nil, models.WrapErrMap(models.ErrKeyInvalidOperationType, err)
		}
		return nil, err
	}

	if err = ts.srv.sqlRepo.GetTransactionRepository().Create(ctx, trx); err != nil {
		return nil, err
	}

	if trx.OperationTypeID.IsCredit() {
		if err = ts.discharge(ctx, trx); err != nil {
			return nil, fmt.Errorf("failed to discharge transaction %d: %w", trx.ID, err)
		}
	}

	ts.srv.dispatcher.TransactionCreated(ctx, *trx)

	return trx, nil
}

// discharge offsets payment against the account's unsettled debits, oldest
// first. The account row lock serialises concurrent discharges of one account.
func (ts *transaction) discharge(ctx context.Context, payment *models.Transaction) error {
	var result models.DischargeResult

	err := ts.srv.sqlRepo.Atomic(ctx, func(actx context.Context, r repositories.SQLRepository) error {
		if err := r.GetAccountRepository().LockByID(actx, payment.AccountID); err != nil {
			return err
		}

		trxRepo := r.GetTransactionRepository()
		candidates, err := trxRepo.GetUnsettledByAccountID(actx, payment.AccountID, common.Now(), payment.ID)
		if err != nil {
			return err
		}

		result = models.Discharge(payment, candidates)

		return trxRepo.BulkUpdateOutstandingBalance(actx, result.WriteSet())
	})
	if err != nil {
		return err
	}

	desc, _ := models.DescribeOperationType(payment.OperationTypeID)
	xlog.Info(ctx, "[DISCHARGE]",
		xlog.Int64("account_id", payment.AccountID),
		xlog.Int64("transaction_id", payment.ID),
		xlog.String("operation_type", desc),
		xlog.Int("settled_debits", len(result.Settled)),
		xlog.String("discharged", result.Discharged.String()),
		xlog.String("remaining", payment.OutstandingBalance.String()))

	if ts.srv.metrics != nil {
		ts.srv.metrics.GetLedgerPrometheus().ObserveDischarge(len(result.Settled), result.Discharged)
	}

	return nil
}
