package services

import (
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/cache"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/metrics"
	"bitbucket.org/Amartha/go-fp-ledger/internal/config"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
	"bitbucket.org/Amartha/go-fp-ledger/internal/repositories"
)

type service struct {
	srv *Services
}

type Services struct {
	conf config.Config

	sqlRepo      repositories.SQLRepository
	accountCache cache.Client[models.AccountOut]

	dispatcher PostCreationDispatcher
	metrics    metrics.Metrics

	common service

	Account     *account
	Transaction *transaction
}

func New(
	conf config.Config,
	sqlRepo repositories.SQLRepository,
	accountCache cache.Client[models.AccountOut],
	dispatcher PostCreationDispatcher,
	metrics metrics.Metrics,
) *Services {
	srv := &Services{
		conf:         conf,
		sqlRepo:      sqlRepo,
		accountCache: accountCache,
		dispatcher:   dispatcher,
		metrics:      metrics,
	}
	srv.common.srv = srv
	srv.Account = (*account)(&srv.common)
	srv.Transaction = (*transaction)(&srv.common)

	return srv
}
