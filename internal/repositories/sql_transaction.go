package repositories

import (
	"context"
	"time"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
	"bitbucket.org/Amartha/go-fp-ledger/internal/monitoring"
)

//go:generate mockgen -source=sql_transaction.go -destination=mock/sql_transaction_mock.go -package=mock

type TransactionRepository interface {
	// Create inserts in and fills its ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, in *models.Transaction) (err error)

	// GetUnsettledByAccountID returns the debits of accountID with a negative
	// outstanding balance and an event timestamp not after until, ordered by
	// (event_timestamp, id). excludeID is skipped when positive.
	GetUnsettledByAccountID(ctx context.Context, accountID int64, until time.Time, excludeID int64) (result []*models.Transaction, err error)

	// BulkUpdateOutstandingBalance persists OutstandingBalance of every entry.
	// All rows must exist.
	BulkUpdateOutstandingBalance(ctx context.Context, trxs []*models.Transaction) (err error)
}

type transactionRepository sqlRepo

var _ TransactionRepository = (*transactionRepository)(nil)

func (tr *transactionRepository) Create(ctx context.Context, in *models.Transaction) (err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := tr.r.extractTxWrite(ctx)

	now := common.Now()
	err = db.QueryRowContext(ctx, queryTransactionCreate,
		in.AccountID,
		in.OperationTypeID,
		in.Amount,
		in.SignedAmount,
		in.OutstandingBalance,
		in.EventTimestamp,
		in.Status,
		now,
	).Scan(&in.ID)
	if err != nil {
		return classifyPQError(err)
	}

	in.CreatedAt = now
	in.UpdatedAt = now
	return nil
}

func (tr *transactionRepository) GetUnsettledByAccountID(ctx context.Context, accountID int64, until time.Time, excludeID int64) (result []*models.Transaction, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	query, args, err := buildUnsettledQuery(accountID, until, excludeID)
	if err != nil {
		return nil, err
	}

	db := tr.r.extractTxWrite(ctx)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var trx models.Transaction
		err = rows.Scan(
			&trx.ID,
			&trx.AccountID,
			&trx.OperationTypeID,
			&trx.Amount,
			&trx.SignedAmount,
			&trx.OutstandingBalance,
			&trx.EventTimestamp,
			&trx.Status,
			&trx.CreatedAt,
			&trx.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, &trx)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (tr *transactionRepository) BulkUpdateOutstandingBalance(ctx context.Context, trxs []*models.Transaction) (err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	if len(trxs) == 0 {
		return nil
	}

	db := tr.r.extractTxWrite(ctx)

	query, args := buildBulkUpdateOutstandingQuery(trxs, common.Now())
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected != int64(len(trxs)) {
		xlog.Warn(ctx, "[REPOSITORY.BULK-UPDATE-OUTSTANDING]",
			xlog.Int64("expected", int64(len(trxs))),
			xlog.Int64("affected", affected))
		return common.ErrNoRowsAffected
	}

	return nil
}
