package middleware

import (
	"github.com/labstack/echo/v4"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common/idgenerator"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
)

const HeaderCorrelationID = "X-Correlation-Id"

// Context attaches a request id to the request context and echoes it back.
// An incoming X-Request-Id (or X-Correlation-Id) is reused.
func (m *AppMiddleware) Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = req.Header.Get(HeaderCorrelationID)
			}
			if requestID == "" {
				requestID = idgenerator.Short()
			}

			c.Response().Header().Set(echo.HeaderXRequestID, requestID)
			c.SetRequest(req.WithContext(xlog.NewContext(req.Context(), requestID)))

			return next(c)
		}
	}
}
