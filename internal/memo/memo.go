// Package memo provides a bounded, mutex-guarded read-through cache.
package memo

import (
	"sync"

	"github.com/golang/groupcache/lru"
)

// Stats reports cache usage.
type Stats struct {
	Hits, Misses, Evictions int
	Len                     int
}

// Cache is an LRU cache safe for concurrent use. Values are computed outside
// the lock; concurrent misses on one key may compute it more than once.
type Cache[K comparable, V any] struct {
	mu    sync.Mutex
	lru   *lru.Cache
	stats Stats
}

// New returns a cache holding at most size entries. A size of zero or less
// means no limit.
func New[K comparable, V any](size int) *Cache[K, V] {
	if size < 0 {
		size = 0
	}
	c := &Cache[K, V]{lru: lru.New(size)}
	c.lru.OnEvicted = func(lru.Key, any) { c.stats.Evictions++ }
	return c
}

// Get returns the cached value for key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.lru.Get(key)
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	c.stats.Hits++
	return v.(V), true
}

// Add stores value under key.
func (c *Cache[K, V]) Add(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, value)
}

// GetOrCompute returns the cached value for key, computing and storing it on
// a miss. Errors are returned and not cached.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, bool, error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}
	v, err := compute()
	if err != nil {
		return v, false, err
	}
	c.Add(key, v)
	return v, false, nil
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Clear removes every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Clear()
}

// Stats returns a snapshot of the usage counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Len = c.lru.Len()
	return s
}
