// Package resilience wraps the outbound calls of the voice backend with
// retry, circuit-breaker and concurrency-limit primitives.
package resilience

import (
	"context"
	"math/rand"
	"time"

	"github.com/sony/gobreaker"
)

// Config holds the retry and concurrency parameters shared by all clients.
type Config struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxConcurrency int
}

// RetryWithBackoff runs fn up to MaxRetries+1 times, doubling the wait
// between attempts and adding jitter so concurrent commands do not hammer a
// recovering collaborator in lockstep. Context cancellation aborts both the
// loop and the wait.
func RetryWithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	backoff := cfg.InitialBackoff
	var lastErr error

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if attempt >= cfg.MaxRetries {
			return lastErr
		}

		wait := backoff
		if backoff > 1 {
			wait += time.Duration(rand.Int63n(int64(backoff)/2 + 1))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		backoff *= 2
	}
}

// NewCircuitBreaker builds a breaker tuned for the organizer and places
// APIs: trip after 5+ requests with a 60% failure ratio, probe with 3
// half-open requests after 10s.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && ratio >= 0.6
		},
	})
}

// Bulkhead caps how many callers run a section at once.
type Bulkhead struct {
	slots chan struct{}
}

// NewBulkhead creates a bulkhead admitting maxConcurrency callers.
func NewBulkhead(maxConcurrency int) *Bulkhead {
	return &Bulkhead{slots: make(chan struct{}, maxConcurrency)}
}

// Acquire takes a slot, blocking until one frees up or ctx is done.
func (b *Bulkhead) Acquire(ctx context.Context) error {
	select {
	case b.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a slot taken by Acquire.
func (b *Bulkhead) Release() {
	<-b.slots
}
