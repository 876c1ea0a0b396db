package retry

import (
	"context"

	"github.com/cenkalti/backoff/v4"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common/xlog"
	"bitbucket.org/Amartha/go-fp-ledger/internal/config"
)

const DefaultMaxRetries uint64 = 3

//go:generate mockgen -source=retry.go -destination=mock/retry_mock.go -package=mock

type Retryer interface {
	Retry(ctx context.Context, operation func() error, onExhausted func(err error) error) error
	StopRetryWithErr(err error) error
}

type exponentialBackoff struct {
	ebCfg config.ExponentialBackOffConfig
}

/*
NewExponentialBackOff will init Retryer interface.
This retryer implement exponential backoff mechanism.

Example:

Retry(ctx, func() error { return publish() }, func(err error) error { return park(err) })
*/
func NewExponentialBackOff(ebCfg config.ExponentialBackOffConfig) Retryer {
	if ebCfg.MaxBackoffTime < 0 {
		ebCfg.MaxBackoffTime = backoff.DefaultMaxElapsedTime
	}

	if ebCfg.BackoffMultiplier <= 0 {
		ebCfg.BackoffMultiplier = backoff.DefaultMultiplier
	}

	if ebCfg.MaxRetries == 0 {
		ebCfg.MaxRetries = DefaultMaxRetries
	}

	return &exponentialBackoff{ebCfg: ebCfg}
}

/*
Retry will create ExponentialBackOff instance for every execution.

"operation" is retried until it succeeds, returns a permanent error, the context
is done or the retry budget is spent. In the last three cases "onExhausted"
receives the final error and its result is returned.
*/
func (r *exponentialBackoff) Retry(ctx context.Context, operation func() error, onExhausted func(err error) error) error {
	eb := backoff.NewExponentialBackOff()
	eb.MaxElapsedTime = r.ebCfg.MaxBackoffTime
	eb.Multiplier = r.ebCfg.BackoffMultiplier

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(eb, r.ebCfg.MaxRetries), ctx))
	if err != nil {
		xlog.Debug(ctx, "retry exhausted", xlog.Err(err))
		if onExhausted == nil {
			return err
		}
		return onExhausted(err)
	}

	return nil
}

// StopRetryWithErr will stop retrying and return the error.
// This function should be called inside "operation" func.
func (r *exponentialBackoff) StopRetryWithErr(err error) error {
	return backoff.Permanent(err)
}
