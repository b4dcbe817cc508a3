// Package cache provides the in-memory TTL cache used for place search
// results. The interface is narrow enough to swap in Redis later.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value    T
	deadline time.Time
}

// InMemory is a mutex-guarded map with per-entry expiry. Expired entries are
// dropped lazily on read and swept on write, so an idle cache holds no
// background goroutine.
type InMemory[T any] struct {
	mu    sync.Mutex
	items map[string]entry[T]
	ttl   time.Duration
}

// New creates a cache whose entries live for ttl after each Set.
func New[T any](ttl time.Duration) *InMemory[T] {
	return &InMemory[T]{
		items: make(map[string]entry[T]),
		ttl:   ttl,
	}
}

// Get returns the live value for key, false on a miss or an expired entry.
func (c *InMemory[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		var zero T
		return zero, false
	}
	if time.Now().After(e.deadline) {
		delete(c.items, key)
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores value under key for the configured TTL, sweeping any entries
// that have already expired.
func (c *InMemory[T]) Set(key string, value T) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for k, e := range c.items {
		if now.After(e.deadline) {
			delete(c.items, k)
		}
	}
	c.items[key] = entry[T]{value: value, deadline: now.Add(c.ttl)}
}

// Delete removes key immediately.
func (c *InMemory[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}
