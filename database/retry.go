package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"syscall"
	"time"

	"github.com/sethvargo/go-retry"
)

const defaultRetryBase = 200 * time.Millisecond

// RetryPolicy bounds how often transient database failures are retried.
// A zero MaxRetries disables retrying.
type RetryPolicy struct {
	MaxRetries uint64
	MaxDelay   time.Duration
	Base       time.Duration
}

func (p RetryPolicy) backoff() retry.Backoff {
	base := p.Base
	if base <= 0 {
		base = defaultRetryBase
	}
	b := retry.NewExponential(base)
	if p.MaxDelay > 0 {
		b = retry.WithCappedDuration(p.MaxDelay, b)
	}
	return retry.WithMaxRetries(p.MaxRetries, b)
}

// retryAll treats every failure as transient; used while bootstrapping the connection.
func retryAll(error) bool { return true }

func (p RetryPolicy) do(ctx context.Context, retryable func(error) bool, fn func(context.Context) error) error {
	if p.MaxRetries == 0 {
		return fn(ctx)
	}
	return retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && retryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

// IsTransient reports whether err looks like a dropped or refused connection
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
