package repositories

import (
	"context"
	"database/sql"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
	"bitbucket.org/Amartha/go-fp-ledger/internal/monitoring"
)

//go:generate mockgen -source=sql_account.go -destination=mock/sql_account_mock.go -package=mock

type AccountRepository interface {
	// Create inserts in and fills its ID. A duplicate document number yields
	// common.ErrDataExist.
	Create(ctx context.Context, in *models.Account) (err error)
	GetByID(ctx context.Context, id int64) (result *models.Account, err error)
	GetByDocumentNumber(ctx context.Context, documentNumber string) (result *models.Account, err error)

	// LockByID takes a row lock on the account until the surrounding
	// transaction ends. Only meaningful inside Atomic.
	LockByID(ctx context.Context, id int64) (err error)
}

type accountRepository sqlRepo

var _ AccountRepository = (*accountRepository)(nil)

func (ar *accountRepository) Create(ctx context.Context, in *models.Account) (err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := ar.r.extractTxWrite(ctx)

	now := common.Now()
	err = db.QueryRowContext(ctx, queryAccountCreate, in.DocumentNumber, in.AvailableBalance, now).Scan(&in.ID)
	if err != nil {
		return classifyPQError(err)
	}

	in.CreatedAt = now
	in.UpdatedAt = now
	return nil
}

func (ar *accountRepository) GetByID(ctx context.Context, id int64) (result *models.Account, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := ar.r.extractTxRead(ctx)
	return scanAccount(db.QueryRowContext(ctx, queryAccountGetByID, id))
}

func (ar *accountRepository) GetByDocumentNumber(ctx context.Context, documentNumber string) (result *models.Account, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := ar.r.extractTxRead(ctx)
	return scanAccount(db.QueryRowContext(ctx, queryAccountGetByDocumentNumber, documentNumber))
}

func (ar *accountRepository) LockByID(ctx context.Context, id int64) (err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	db := ar.r.extractTxWrite(ctx)

	var locked int64
	return db.QueryRowContext(ctx, queryAccountLockByID, id).Scan(&locked)
}

func scanAccount(row *sql.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID,
		&account.DocumentNumber,
		&account.AvailableBalance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
