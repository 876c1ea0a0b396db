package consumer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common/graceful"
	commonhttp "bitbucket.org/Amartha/go-fp-ledger/internal/common/http"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/metrics"
	"bitbucket.org/Amartha/go-fp-ledger/internal/config"
	"bitbucket.org/Amartha/go-fp-ledger/internal/deliveries/http/health"
	"bitbucket.org/Amartha/go-fp-ledger/internal/repositories"
)

type svc struct {
	e    *echo.Echo
	addr string
}

var _ graceful.ProcessStartStopper = (*svc)(nil)

func (s *svc) Start() graceful.ProcessStarter {
	return func() error {
		if err := s.e.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *svc) Stop() graceful.ProcessStopper {
	return func(ctx context.Context) error {
		return s.e.Shutdown(ctx)
	}
}

func (s *svc) Handler() http.Handler {
	return s.e
}

// NewHTTPServer is the side port of a consumer process: metrics, health and
// pprof outside prod.
func NewHTTPServer(
	conf config.Config,
	mtc metrics.Metrics,
	sqlRepo repositories.SQLRepository,
	cacheRepo repositories.CacheRepository,
) *svc {
	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.HTTPErrorHandler = commonhttp.ErrorHandler

	app.Pre(echomiddleware.RemoveTrailingSlash())
	app.Use(echomiddleware.Recover())
	app.Use(echomiddleware.RequestID())

	if config.StringToEnvironment(conf.App.Env) != config.PROD_ENV {
		pprof.Register(app)
	}

	if mtc != nil {
		app.Use(mtc.EchoMiddleware(conf.App.Name, "consumer"))
	}
	app.GET("/metrics", echoprometheus.NewHandler())

	health.New(app.Group("/api"), sqlRepo, cacheRepo)

	return &svc{e: app, addr: fmt.Sprintf(":%d", conf.MessageBroker.HTTPPort)}
}
