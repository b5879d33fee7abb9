package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("upstream hiccup")

func TestRetrySucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Retry() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("bad request")
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return permanent
	})
	if err != permanent {
		t.Errorf("Retry() error = %v, want the permanent error unchanged", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retries on permanent errors)", calls)
	}
}

func TestRetryRetriesTransientError(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return &RetryableError{Err: errTransient}
		}
		return nil
	})
	if err != nil {
		t.Errorf("Retry() error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return &RetryableError{Err: errTransient}
	})
	if !errors.Is(err, errTransient) {
		t.Errorf("Retry() error = %v, want wrapped transient error", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryAttemptsFloor(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 0, time.Millisecond, func() error {
		calls++
		return &RetryableError{Err: errTransient}
	})
	if err == nil {
		t.Error("Retry() should report the failure")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (attempts clamps to at least one)", calls)
	}
}

func TestRetryContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Minute, func() error {
		return &RetryableError{Err: errTransient}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() error = %v, want context.Canceled", err)
	}
}

func TestRetryableErrorUnwrap(t *testing.T) {
	wrapped := &RetryableError{Err: errTransient}
	if !errors.Is(wrapped, errTransient) {
		t.Error("errors.Is should see through RetryableError")
	}
	if wrapped.Error() != errTransient.Error() {
		t.Errorf("Error() = %q, want the inner message", wrapped.Error())
	}
}
