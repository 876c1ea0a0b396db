package main

import (
	"context"
	"time"

	"bitbucket.org/Amartha/go-fp-ledger/cmd/setup"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/graceful"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/deliveries/http"
)

func main() {
	var (
		ctx      = context.Background()
		starters []graceful.ProcessStarter
		stoppers []graceful.ProcessStopper
	)

	s, stopperContract, err := setup.Init("api")
	if err != nil {
		timeout := 5 * time.Second
		if s != nil && s.Config.App.GracefulTimeout != 0 {
			timeout = s.Config.App.GracefulTimeout
		}

		_ = graceful.StopProcess(timeout, stopperContract...)

		xlog.Fatalf(ctx, "failed to setup app: %v", err)
	}

	httpServer := http.NewHTTPServer(s.Config, http.Dependencies{
		NewRelic:           s.NewRelic,
		Metrics:            s.Metrics,
		SQLRepo:            s.RepoSQL,
		CacheRepo:          s.RepoCache,
		AccountService:     s.Service.Account,
		TransactionService: s.Service.Transaction,
	})

	starters = append(starters, s.WorkerPool.Start(), httpServer.Start())
	// stopped in reverse: http first, then the pool drain inside the contract
	stoppers = append(stoppers, stopperContract...)
	stoppers = append(stoppers, httpServer.Stop())

	graceful.StartProcessAtBackground(starters...)
	xlog.Info(ctx, "http server started", xlog.Int("port", s.Config.App.HTTPPort))

	graceful.StopProcessAtBackground(s.Config.App.GracefulTimeout, stoppers...)
	xlog.Info(ctx, "http server stopped!")
}
