package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/noisapp/voice-bfv-go/internal/infra/resilience"
)

var testCfg = resilience.Config{
	MaxRetries:     3,
	InitialBackoff: 5 * time.Millisecond,
}

func TestRetrySucceedsFirstTry(t *testing.T) {
	calls := 0
	err := resilience.RetryWithBackoff(context.Background(), testCfg, func() error {
		calls++
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single call, got %d", calls)
	}
}

func TestRetryRecoversFromTransientFailure(t *testing.T) {
	calls := 0
	err := resilience.RetryWithBackoff(context.Background(), testCfg, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetryReturnsLastError(t *testing.T) {
	wantErr := errors.New("persistent")
	calls := 0
	err := resilience.RetryWithBackoff(context.Background(), testCfg, func() error {
		calls++
		return wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the final attempt's error, got %v", err)
	}
	if calls != testCfg.MaxRetries+1 {
		t.Fatalf("expected %d calls, got %d", testCfg.MaxRetries+1, calls)
	}
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := resilience.RetryWithBackoff(ctx, testCfg, func() error {
		calls++
		return errors.New("should not retry")
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no calls under a cancelled context, got %d", calls)
	}
}

func TestBulkheadLimitsConcurrency(t *testing.T) {
	bh := resilience.NewBulkhead(2)

	if err := bh.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := bh.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if err := bh.Acquire(ctx); err == nil {
		t.Fatal("expected the third acquire to time out")
	}

	bh.Release()
	if err := bh.Acquire(context.Background()); err != nil {
		t.Fatalf("expected acquire after release, got %v", err)
	}
}
