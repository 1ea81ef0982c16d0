package data

import (
	"context"
	"sync"
	"time"
)

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// ttlStore is an in-memory map whose entries expire ttl after they were written.
// A nil store is valid and holds nothing.
type ttlStore[K comparable, V any] struct {
	mu    sync.RWMutex
	store map[K]*cacheEntry[V]
	ttl   time.Duration
	now   func() time.Time
}

func newTTLStore[K comparable, V any](ttl time.Duration) *ttlStore[K, V] {
	return &ttlStore[K, V]{
		store: make(map[K]*cacheEntry[V]),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get retrieves a value if present and not expired.
func (c *ttlStore[K, V]) Get(key K) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return zero, false
	}
	if c.now().After(entry.expiresAt) {
		return zero, false
	}
	return entry.value, true
}

func (c *ttlStore[K, V]) Set(key K, value V) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &cacheEntry[V]{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

func (c *ttlStore[K, V]) Delete(key K) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
}

// Clear removes all entries.
func (c *ttlStore[K, V]) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[K]*cacheEntry[V])
}

// Len counts entries, expired ones included until the next sweep.
func (c *ttlStore[K, V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// sweep removes expired entries and reports how many went.
func (c *ttlStore[K, V]) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.store {
		if now.After(entry.expiresAt) {
			delete(c.store, key)
			removed++
		}
	}
	return removed
}

// cleanup periodically removes expired entries until ctx is done.
func (c *ttlStore[K, V]) cleanup(ctx context.Context, every time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
