package cache

import (
	"context"
	"errors"
	"time"
)

//go:generate mockgen -source=contract.go -destination=mock/contract_mock.go -package=mock

type Client[T any] interface {
	Get(ctx context.Context, key string) (T, error)
	Set(ctx context.Context, key string, object T, ttl time.Duration) error
	GetOrSet(ctx context.Context, opts GetOrSetOpts[T]) (T, error)
}

var (
	ErrNotExists           = errors.New("key not exists on cache storage")
	ErrCallbackNotProvided = errors.New("callback not provided")
	ErrInvalidType         = errors.New("invalid type result")
)

type GetOrSetOpts[T any] struct {
	Key      string
	TTL      time.Duration
	Callback func() (T, error)

	// OnCacheError, when set, receives cache read/write failures and the call
	// degrades to Callback instead of failing. Without it those failures are
	// returned to the caller.
	OnCacheError func(err error)
}

// getOrSet is shared by every Client implementation.
func getOrSet[T any](ctx context.Context, c Client[T], opts GetOrSetOpts[T]) (result T, err error) {
	if opts.Callback == nil {
		return result, ErrCallbackNotProvided
	}

	obj, err := c.Get(ctx, opts.Key)
	if err == nil {
		return obj, nil
	}

	if !errors.Is(err, ErrNotExists) {
		if opts.OnCacheError == nil {
			return result, err
		}
		opts.OnCacheError(err)
	}

	obj, err = opts.Callback()
	if err != nil {
		return result, err
	}

	if err = c.Set(ctx, opts.Key, obj, opts.TTL); err != nil {
		if opts.OnCacheError == nil {
			return result, err
		}
		opts.OnCacheError(err)
	}

	return obj, nil
}
