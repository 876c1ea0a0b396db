package models

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

const (
	IdempotencyStatusProcessFinished = "finished"
	IdempotencyStatusProcessPending  = "pending"
)

type Idempotency struct {
	CacheKey string `json:"cacheKey"`

	StatusProcess string `json:"status"`

	// Fingerprints are used to identify the uniqueness of a request
	Fingerprint     string            `json:"fingerprint"`
	HTTPStatusCode  int               `json:"httpStatusCode"`
	ResponseBody    string            `json:"responseBody"`
	ResponseHeaders map[string]string `json:"responseHeaders"`
}

// NewIdempotency scopes key to scope (usually the route) and fingerprints the
// request so a reused key with a different payload can be told apart.
func NewIdempotency(scope, key, status string, request []byte) *Idempotency {
	fingerprint := sha1.Sum(request)

	return &Idempotency{
		CacheKey:      fmt.Sprintf("idempotency:%s:%s", scope, key),
		StatusProcess: status,
		Fingerprint:   hex.EncodeToString(fingerprint[:]),
	}
}

func (i *Idempotency) SetResponse(httpStatusCode int, responseHeaders map[string]string, responseBody string) {
	i.HTTPStatusCode = httpStatusCode
	i.ResponseHeaders = responseHeaders
	i.ResponseBody = responseBody
	i.StatusProcess = IdempotencyStatusProcessFinished
}

func (i *Idempotency) IsFinished() bool {
	return i.StatusProcess == IdempotencyStatusProcessFinished
}
