package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common"
	commonhttp "bitbucket.org/Amartha/go-fp-ledger/internal/common/http"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
)

const (
	HeaderIdempotencyKey       = "Idempotency-Key"
	HeaderLegacyIdempotencyKey = "X-Idempotency-Key"
	HeaderIdempotentReplayed   = "Idempotent-Replayed"

	logIdempotency = "[HTTP.IDEMPOTENCY]"
)

func idempotencyKey(req *http.Request) string {
	if key := req.Header.Get(HeaderIdempotencyKey); key != "" {
		return key
	}
	return req.Header.Get(HeaderLegacyIdempotencyKey)
}

// CheckIdempotentRequest makes POST routes safe to retry. Requests without a
// key pass through. The first request with a key holds a pending marker in
// redis; a finished 2xx response is stored and replayed for the same key and
// payload. Any other outcome releases the key.
func (m *AppMiddleware) CheckIdempotentRequest() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodPost {
				return next(c)
			}

			key := idempotencyKey(req)
			if key == "" {
				return next(c)
			}

			// bookkeeping happens after the response is committed
			ctx := context.WithoutCancel(req.Context())

			idm, err := m.getOrCreateIdempotency(ctx, c.Path(), key, m.fingerprintInput(c))
			if err != nil {
				switch {
				case errors.Is(err, common.ErrInvalidFingerprint):
					return commonhttp.RestErrorResponse(c, http.StatusUnprocessableEntity,
						models.WrapErrMap(models.ErrKeyIdempotencyKeyReused, err))
				case errors.Is(err, common.ErrRequestBeingProcessed):
					return commonhttp.RestErrorResponse(c, http.StatusConflict,
						models.WrapErrMap(models.ErrKeyIdempotencyInProgress, err))
				default:
					return commonhttp.RestServiceErrorResponse(c, err)
				}
			}

			if idm.IsFinished() {
				return replay(c, idm)
			}

			defer func() {
				if r := recover(); r != nil {
					if err := m.releaseLock(ctx, idm); err != nil {
						xlog.Error(ctx, logIdempotency, xlog.String("key", idm.CacheKey), xlog.Err(err))
					}
					panic(r)
				}
			}()

			resBody := m.getResponseBodyBuffer(c)
			if err = next(c); err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			if status < http.StatusOK || status >= http.StatusMultipleChoices {
				if err := m.releaseLock(ctx, idm); err != nil {
					xlog.Error(ctx, logIdempotency, xlog.String("key", idm.CacheKey), xlog.Err(err))
				}
				return nil
			}

			headers := map[string]string{
				echo.HeaderContentType: c.Response().Header().Get(echo.HeaderContentType),
			}
			idm.SetResponse(status, headers, resBody.String())

			// response already committed, log only
			if err := m.saveResponseToCache(ctx, idm); err != nil {
				xlog.Error(ctx, logIdempotency, xlog.String("key", idm.CacheKey), xlog.Err(err))
			}

			return nil
		}
	}
}

// fingerprintInput is method, path and body. The body is restored for the
// handler.
func (m *AppMiddleware) fingerprintInput(c echo.Context) []byte {
	req := c.Request()
	input := []byte(req.Method + " " + req.URL.Path + "\n")
	return append(input, m.parseRequestBody(c)...)
}

func replay(c echo.Context, idm *models.Idempotency) error {
	for k, v := range idm.ResponseHeaders {
		if v != "" {
			c.Response().Header().Set(k, v)
		}
	}
	c.Response().Header().Set(HeaderIdempotentReplayed, "true")

	contentType := idm.ResponseHeaders[echo.HeaderContentType]
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	return c.Blob(idm.HTTPStatusCode, contentType, []byte(idm.ResponseBody))
}

// getOrCreateIdempotency returns the stored record for key, or takes the
// pending marker when there is none.
func (m *AppMiddleware) getOrCreateIdempotency(ctx context.Context, scope, key string, request []byte) (*models.Idempotency, error) {
	idm := models.NewIdempotency(scope, key, models.IdempotencyStatusProcessPending, request)

	strIdm, err := m.cacheRepo.Get(ctx, idm.CacheKey)
	if errors.Is(err, common.ErrDataNotFound) {
		if err = m.createLock(ctx, idm); err != nil {
			return nil, err
		}
		return idm, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get idempotency data: %w", err)
	}

	var cachedIdm models.Idempotency
	if err = json.Unmarshal([]byte(strIdm), &cachedIdm); err != nil {
		return nil, fmt.Errorf("failed to unmarshal idempotency data: %w", err)
	}

	if cachedIdm.Fingerprint != idm.Fingerprint {
		return nil, common.ErrInvalidFingerprint
	}

	if !cachedIdm.IsFinished() {
		return nil, common.ErrRequestBeingProcessed
	}

	return &cachedIdm, nil
}

func (m *AppMiddleware) saveResponseToCache(ctx context.Context, idm *models.Idempotency) error {
	bytIdm, err := json.Marshal(idm)
	if err != nil {
		return fmt.Errorf("failed to marshal idempotency data: %w", err)
	}

	if err = m.cacheRepo.Set(ctx, idm.CacheKey, string(bytIdm), m.conf.Idempotency.TTL); err != nil {
		return fmt.Errorf("failed to save idempotency data: %w", err)
	}

	return nil
}

func (m *AppMiddleware) createLock(ctx context.Context, idm *models.Idempotency) error {
	bytIdm, err := json.Marshal(idm)
	if err != nil {
		return fmt.Errorf("failed to marshal idempotency data: %w", err)
	}

	set, err := m.cacheRepo.SetIfNotExists(ctx, idm.CacheKey, string(bytIdm), m.pendingTTL())
	if err != nil {
		return fmt.Errorf("failed to save idempotency data: %w", err)
	}

	// another request with the same key won the race
	if !set {
		return common.ErrRequestBeingProcessed
	}

	return nil
}

func (m *AppMiddleware) releaseLock(ctx context.Context, idm *models.Idempotency) error {
	if err := m.cacheRepo.Del(ctx, idm.CacheKey); err != nil {
		return fmt.Errorf("failed to release idempotency data: %w", err)
	}

	return nil
}

func (m *AppMiddleware) pendingTTL() time.Duration {
	if m.conf.Idempotency.PendingTTL > 0 {
		return m.conf.Idempotency.PendingTTL
	}
	return m.conf.Idempotency.TTL
}
