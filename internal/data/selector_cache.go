package data

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/umuturukk/de-propulsion-v2.0/internal/combination"
)

// SelectorCache memoises a combination.Selector. The wrapped selector must be a pure
// function of the request, which combination.Optimizer is.
//
// Cached results share their Units and Candidates slices between callers; treat them as
// read-only.
type SelectorCache struct {
	next  combination.Selector
	store *ttlStore[string, combination.Result]

	hits   atomic.Int64
	misses atomic.Int64
}

func NewSelectorCache(next combination.Selector, ttl time.Duration) *SelectorCache {
	return &SelectorCache{next: next, store: newTTLStore[string, combination.Result](ttl)}
}

func (c *SelectorCache) SelectBest(req combination.Request) combination.Result {
	key := GenerateCacheKey(req)
	if res, ok := c.store.Get(key); ok {
		c.hits.Add(1)
		return res
	}
	c.misses.Add(1)
	res := c.next.SelectBest(req)
	c.store.Set(key, res)
	return res
}

// Stats reports hits and misses since construction.
func (c *SelectorCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *SelectorCache) Len() int { return c.store.Len() }

func (c *SelectorCache) Clear() { c.store.Clear() }

// StartCleanup evicts expired results every interval until ctx is done.
func (c *SelectorCache) StartCleanup(ctx context.Context, every time.Duration) {
	go c.store.cleanup(ctx, every, func(n int) {
		zap.S().Named("selector_cache").Debugw("evicted expired results", "count", n)
	})
}

// GenerateCacheKey creates a cache key from the full request tuple.
func GenerateCacheKey(req combination.Request) string {
	// Shortest exact float formatting keeps distinct inputs distinct.
	f := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	keyStr := strings.Join([]string{
		f(req.RequiredKW),
		f(req.Fleet.MainRatingKW),
		strconv.Itoa(req.Fleet.MainQty),
		f(req.Fleet.PortRatingKW),
		strconv.Itoa(req.Fleet.PortQty),
		f(req.DurationH),
	}, ":")

	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
