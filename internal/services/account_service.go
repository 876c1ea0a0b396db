package services

import (
	"context"
	"errors"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/cache"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
	"bitbucket.org/Amartha/go-fp-ledger/internal/monitoring"
)

//go:generate mockgen -source=account_service.go -destination=mock/account_service_mock.go -package=mock

type AccountService interface {
	Create(ctx context.Context, in models.CreateAccountIn) (out models.AccountOut, err error)
	GetByID(ctx context.Context, accountID int64) (out models.AccountOut, err error)
}

type account service

var _ AccountService = (*account)(nil)

func (as *account) Create(ctx context.Context, in models.CreateAccountIn) (out models.AccountOut, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	accRepo := as.srv.sqlRepo.GetAccountRepository()

	_, err = accRepo.GetByDocumentNumber(ctx, in.DocumentNumber)
	if err == nil {
		return out, accountAlreadyExists()
	}
	if !errors.Is(err, common.ErrNoRows) {
		return out, err
	}

	acc := models.NewAccount(in.DocumentNumber)
	if err = accRepo.Create(ctx, &acc); err != nil {
		// lost a race with a concurrent create of the same document number
		if errors.Is(err, common.ErrDataExist) {
			return out, accountAlreadyExists()
		}
		return out, err
	}

	as.srv.dispatcher.AccountCreated(ctx, acc)

	return acc.ToModelResponse(), nil
}

// GetByID reads through the account cache. The cache is an optimisation only:
// its failures are logged and the store answers instead.
func (as *account) GetByID(ctx context.Context, accountID int64) (out models.AccountOut, err error) {
	monitor := monitoring.New(ctx)
	defer func() {
		monitor.Finish(monitoring.WithFinishCheckError(err), monitoring.WithFinishXlogFields(xlog.Int64("account_id", accountID)))
	}()

	key := models.AccountCacheKey(accountID)

	return as.srv.accountCache.GetOrSet(ctx, cache.GetOrSetOpts[models.AccountOut]{
		Key: key,
		TTL: as.srv.conf.Cache.AccountTTL,
		Callback: func() (models.AccountOut, error) {
			acc, err := as.srv.sqlRepo.GetAccountRepository().GetByID(ctx, accountID)
			if err != nil {
				return models.AccountOut{}, checkDatabaseError(err, models.ErrKeyAccountNotFound, common.ErrAccountNotFound)
			}
			return acc.ToModelResponse(), nil
		},
		OnCacheError: func(cacheErr error) {
			xlog.Warn(ctx, "[ACCOUNT-CACHE]",
				xlog.String("key", key),
				xlog.Err(cacheErr))
		},
	})
}
