package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
)

//go:generate mockgen -source=sql_main.go -destination=mock/sql_main_mock.go -package=mock

type sqlRepo struct {
	r *Repository
}

type Repository struct {
	dbWrite *sql.DB
	dbRead  *sql.DB
	common  sqlRepo

	ar *accountRepository
	tr *transactionRepository
}

func NewSQLRepository(dbWrite *sql.DB, dbRead *sql.DB) *Repository {
	rtx := &Repository{
		dbWrite: dbWrite,
		dbRead:  dbRead,
	}
	rtx.common.r = rtx
	rtx.ar = (*accountRepository)(&rtx.common)
	rtx.tr = (*transactionRepository)(&rtx.common)

	return rtx
}

type SQLRepository interface {
	// Atomic runs steps inside one database transaction. Repositories obtained
	// from r inside steps use that transaction.
	Atomic(ctx context.Context, steps func(ctx context.Context, r SQLRepository) error) error
	GetAccountRepository() AccountRepository
	GetTransactionRepository() TransactionRepository
	Ping(ctx context.Context) error
}

var _ SQLRepository = (*Repository)(nil)

func (r *Repository) Atomic(ctx context.Context, steps func(ctx context.Context, r SQLRepository) error) (err error) {
	tx, err := r.dbWrite.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	xlog.Debug(ctx, "[DATABASE.TRANSACTION.BEGIN]")
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			xlog.Error(ctx, "[DATABASE.TRANSACTION.PANIC]", xlog.Any("panic", p))
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("tx err: %w, rb err: %v", err, rbErr)
			}
			xlog.Warn(ctx, "[DATABASE.TRANSACTION.ROLLBACK]", xlog.Err(err))
		} else {
			if err = tx.Commit(); err != nil {
				if errors.Is(err, sql.ErrTxDone) {
					xlog.Warn(ctx, "[DATABASE.TRANSACTION.ALREADY_COMMITTED_OR_ROLLEDBACK]", xlog.Err(err))
					err = nil
				}
				return
			}

			xlog.Debug(ctx, "[DATABASE.TRANSACTION.COMMIT]")
		}
	}()
	ctx = injectTx(ctx, tx)
	err = steps(ctx, r)
	return
}

func (r *Repository) GetAccountRepository() AccountRepository {
	return r.ar
}

func (r *Repository) GetTransactionRepository() TransactionRepository {
	return r.tr
}

// Ping checks both pools; used by the health endpoint.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.dbWrite.PingContext(ctx); err != nil {
		return fmt.Errorf("write db: %w", err)
	}
	if r.dbRead != nil && r.dbRead != r.dbWrite {
		if err := r.dbRead.PingContext(ctx); err != nil {
			return fmt.Errorf("read db: %w", err)
		}
	}
	return nil
}
