package database

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"
)

func TestRetryPolicyRetriesTransientErrors(t *testing.T) {
	p := RetryPolicy{MaxRetries: 3, Base: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	calls := 0
	err := p.do(context.Background(), IsTransient, func(context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("dial: %w", syscall.ECONNREFUSED)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetryPolicyStopsOnPermanentError(t *testing.T) {
	p := RetryPolicy{MaxRetries: 5, Base: time.Millisecond}
	perm := errors.New("unique constraint failed")

	calls := 0
	err := p.do(context.Background(), IsTransient, func(context.Context) error {
		calls++
		return perm
	})
	if !errors.Is(err, perm) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("permanent error must not be retried, got %d calls", calls)
	}
}

func TestRetryPolicyGivesUp(t *testing.T) {
	p := RetryPolicy{MaxRetries: 2, Base: time.Millisecond}

	calls := 0
	err := p.do(context.Background(), retryAll, func(context.Context) error {
		calls++
		return syscall.ECONNRESET
	})
	if !errors.Is(err, syscall.ECONNRESET) {
		t.Fatalf("expected last error, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 1 attempt + 2 retries, got %d", calls)
	}
}

func TestIsTransient(t *testing.T) {
	if IsTransient(nil) {
		t.Fatal("nil is not transient")
	}
	if IsTransient(errors.New("syntax error")) {
		t.Fatal("plain error is not transient")
	}
	if !IsTransient(fmt.Errorf("wrap: %w", syscall.EPIPE)) {
		t.Fatal("EPIPE is transient")
	}
}
