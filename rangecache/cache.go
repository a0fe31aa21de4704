// Package rangecache implements a fixed-capacity LRU cache of range sums
// keyed by inclusive index ranges.
//
// Cached sums are only valid while the underlying array is unchanged. The
// owner of the array must call Invalidate(i) after every write to index i and
// before the next Get. The cache never sees the array itself.
//
// A Cache is not safe for concurrent use.
package rangecache

import "fmt"

// Stats holds the counters of a Cache.
type Stats struct {
	Hits        uint64 `json:"hits"`
	Misses      uint64 `json:"misses"`
	Evictions   uint64 `json:"evictions"`
	Invalidated uint64 `json:"invalidated"`
}

// Cache is an LRU cache mapping a range Key to its sum.
type Cache struct {
	capacity int
	index    *cacheIndex
	order    *evictionOrder
	stats    Stats
}

// New creates a cache holding at most capacity entries. It panics if
// capacity < 1.
func New(capacity int) *Cache {
	if capacity < 1 {
		panic(fmt.Sprintf("rangecache: capacity must be at least 1, got %d", capacity))
	}
	return &Cache{
		capacity: capacity,
		index:    newCacheIndex(capacity),
		order:    newEvictionOrder(capacity),
	}
}

// Get returns the cached sum for key and marks it most recently used.
func (c *Cache) Get(key Key) (int64, bool) {
	e, ok := c.index.lookup(key)
	if !ok {
		c.stats.Misses++
		return 0, false
	}
	c.stats.Hits++
	c.order.moveToFront(e.h)
	return e.sum, true
}

// Put stores sum for key as the most recently used entry, evicting the
// least recently used entry when the cache is full. The caller guarantees
// that sum is the current sum of the range.
func (c *Cache) Put(key Key, sum int64) {
	if !key.Valid() {
		panic(fmt.Sprintf("rangecache: invalid range %v", key))
	}

	if e, ok := c.index.lookup(key); ok {
		c.index.insert(key, sum, e.h)
		c.order.moveToFront(e.h)
		return
	}

	if c.index.len() >= c.capacity {
		c.evictLRU()
	}

	h := c.order.pushFront(key)
	c.index.insert(key, sum, h)
}

func (c *Cache) evictLRU() {
	_, key, ok := c.order.popBack()
	if !ok {
		return
	}
	if _, ok := c.index.remove(key); !ok {
		panic(fmt.Sprintf("rangecache: evicted key %v missing from index", key))
	}
	c.stats.Evictions++
}

// Invalidate removes every cached range containing index and returns how
// many entries were removed. It scans all cached keys, so it costs
// O(Len()).
func (c *Cache) Invalidate(index int) int {
	var stale []Key
	for key := range c.index.entries {
		if key.Contains(index) {
			stale = append(stale, key)
		}
	}

	for _, key := range stale {
		h, _ := c.index.remove(key)
		c.order.remove(h)
	}
	c.stats.Invalidated += uint64(len(stale))
	return len(stale)
}

func (c *Cache) Len() int {
	return c.index.len()
}

func (c *Cache) Capacity() int {
	return c.capacity
}

func (c *Cache) Stats() Stats {
	return c.stats
}

// Keys returns the cached keys from most to least recently used.
func (c *Cache) Keys() []Key {
	return c.order.keys()
}

// Clear drops all entries. Counters are kept.
func (c *Cache) Clear() {
	c.index.reset()
	c.order.reset()
}
