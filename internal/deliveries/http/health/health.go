package health

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	commonhttp "bitbucket.org/Amartha/go-fp-ledger/internal/common/http"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/repositories"
)

const checkTimeout = 2 * time.Second

const (
	statusOK       = "ok"
	statusDegraded = "degraded"
)

type healthHandler struct {
	sqlRepo   repositories.SQLRepository
	cacheRepo repositories.CacheRepository
}

// New health handler will initialize the health/ resources endpoint
func New(app *echo.Group, sqlRepo repositories.SQLRepository, cacheRepo repositories.CacheRepository) {
	hh := healthHandler{
		sqlRepo:   sqlRepo,
		cacheRepo: cacheRepo,
	}
	health := app.Group("/health")
	health.GET("", hh.healthCheck())
}

type (
	DoHealthCheckResponse struct {
		Kind   string            `json:"kind" example:"health"`
		Status string            `json:"status" example:"ok"`
		Checks map[string]string `json:"checks"`
	}
)

type dependencyCheck struct {
	name  string
	check func(ctx context.Context) error
}

// healthCheck godoc
// @Summary 	Get the status of server
// @Description	Get the status of server and its postgres and redis dependencies
// @Accept		json
// @Produce		json
// @Success 200 {object} DoHealthCheckResponse "Every dependency answered"
// @Failure 503 {object} DoHealthCheckResponse "At least one dependency failed"
// @Router /health [get]
func (hh healthHandler) healthCheck() echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
		defer cancel()

		checks := []dependencyCheck{
			{name: "postgres", check: hh.sqlRepo.Ping},
			{name: "redis", check: hh.cacheRepo.Ping},
		}

		results := make([]error, len(checks))
		var g errgroup.Group
		for i, dc := range checks {
			i, dc := i, dc
			g.Go(func() error {
				results[i] = dc.check(ctx)
				return nil
			})
		}
		_ = g.Wait()

		res := DoHealthCheckResponse{
			Kind:   "health",
			Status: statusOK,
			Checks: make(map[string]string, len(checks)),
		}

		var errs *multierror.Error
		for i, dc := range checks {
			if results[i] != nil {
				res.Checks[dc.name] = results[i].Error()
				errs = multierror.Append(errs, results[i])
				continue
			}
			res.Checks[dc.name] = statusOK
		}

		if err := errs.ErrorOrNil(); err != nil {
			xlog.Warn(ctx, "[HEALTH]", xlog.Err(err))
			res.Status = statusDegraded
			return commonhttp.RestSuccessResponse(c, http.StatusServiceUnavailable, res)
		}

		return commonhttp.RestSuccessResponse(c, http.StatusOK, res)
	}
}
