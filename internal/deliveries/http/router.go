package http

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common/graceful"
	commonhttp "bitbucket.org/Amartha/go-fp-ledger/internal/common/http"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/http/middleware"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/metrics"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/config"
	"bitbucket.org/Amartha/go-fp-ledger/internal/deliveries/http/health"
	"bitbucket.org/Amartha/go-fp-ledger/internal/repositories"
	"bitbucket.org/Amartha/go-fp-ledger/internal/services"

	v1account "bitbucket.org/Amartha/go-fp-ledger/internal/deliveries/http/v1/account"
	v1transaction "bitbucket.org/Amartha/go-fp-ledger/internal/deliveries/http/v1/transaction"

	// for swagger docs
	_ "bitbucket.org/Amartha/go-fp-ledger/docs"
)

type svc struct {
	e               *echo.Echo
	addr            string
	gracefulTimeout time.Duration
}

var _ graceful.ProcessStartStopper = (*svc)(nil)

func (s *svc) Start() graceful.ProcessStarter {
	return func() error {
		err := s.e.Start(s.addr)
		if errors.Is(err, nethttp.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *svc) Stop() graceful.ProcessStopper {
	return func(ctx context.Context) error {
		err := s.e.Shutdown(ctx)

		if err != nil {
			xlog.Errorf(ctx, "[SHUTDOWN] HTTP server error: %v", err)
		} else {
			xlog.Info(ctx, "[SHUTDOWN] HTTP server stopped successfully")
		}

		return err
	}
}

// Handler exposes the router, mainly for tests.
func (s *svc) Handler() nethttp.Handler {
	return s.e
}

type Dependencies struct {
	NewRelic  *newrelic.Application
	Metrics   metrics.Metrics
	SQLRepo   repositories.SQLRepository
	CacheRepo repositories.CacheRepository

	AccountService     services.AccountService
	TransactionService services.TransactionService
}

// @title GO FP LEDGER API DOCUMENTATION
// @version 1.0
// @description Accounts and transactions of the go fp ledger.

// @host localhost:8080
// @BasePath /api
// @schemes http
func NewHTTPServer(conf config.Config, deps Dependencies) *svc {
	app := echo.New()
	app.HideBanner = true
	app.HTTPErrorHandler = commonhttp.ErrorHandler
	if conf.App.HTTPTimeout > 0 {
		app.Server.ReadTimeout = conf.App.HTTPTimeout
		app.Server.WriteTimeout = conf.App.HTTPTimeout
	}

	svc := &svc{
		e:               app,
		addr:            fmt.Sprintf(":%d", conf.App.HTTPPort),
		gracefulTimeout: conf.App.GracefulTimeout,
	}

	m := middleware.NewMiddleware(conf, deps.CacheRepo)
	// options middleware
	app.Pre(echomiddleware.RemoveTrailingSlash())
	app.Use(echomiddleware.Recover())
	app.Use(m.Context())
	app.Use(m.Logger())

	if deps.NewRelic != nil {
		app.Use(nrecho.Middleware(deps.NewRelic))

		app.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				ctx := c.Request().Context()
				if txn := newrelic.FromContext(ctx); txn != nil {
					txn.AddAttribute("x-correlation-id", xlog.RequestIDFromContext(ctx))
				}

				return next(c)
			}
		})
	}

	// pprof
	// Endpoint debug/pprof/
	env := config.StringToEnvironment(conf.App.Env)
	if env != config.PROD_ENV {
		pprof.Register(app)
	}

	// prometheus metrics
	if deps.Metrics != nil {
		app.Use(deps.Metrics.EchoMiddleware(conf.App.Name, "api"))
	}
	app.GET("/metrics", echoprometheus.NewHandler())

	// swagger
	app.GET("/swagger/*", echoSwagger.WrapHandler)

	// apiGroup
	apiGroup := app.Group("/api")

	// health check
	health.New(apiGroup, deps.SQLRepo, deps.CacheRepo)

	// v1Group
	v1Group := apiGroup.Group("/v1")
	v1account.New(v1Group, deps.AccountService)
	v1transaction.New(v1Group, deps.TransactionService, m)

	// prepare an endpoint for 'Not Found'.
	app.Any("*", func(c echo.Context) error {
		errorMessage := fmt.Errorf("route '%s' does not exist in this API", c.Request().URL)
		return commonhttp.RestErrorResponse(c, nethttp.StatusNotFound, errorMessage)
	})

	return svc
}
