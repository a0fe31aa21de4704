// Package rangesum answers inclusive range-sum queries over an int64 array
// that also accepts point updates.
package rangesum

import (
	"slices"

	"github.com/aldehir/rangesum/rangecache"
)

// Summer answers range sums over a mutable array.
type Summer interface {
	// Sum returns the sum of the elements in [left, right].
	Sum(left, right int) (int64, error)
	// Set writes value at index.
	Set(index int, value int64) error
	Len() int
}

// Array computes every sum directly from the values.
type Array struct {
	values []int64
}

// NewArray copies values into a new Array.
func NewArray(values []int64) *Array {
	return &Array{values: slices.Clone(values)}
}

func (a *Array) Sum(left, right int) (int64, error) {
	if err := checkRange(left, right, len(a.values)); err != nil {
		return 0, err
	}
	return sum(a.values[left : right+1]), nil
}

func (a *Array) Set(index int, value int64) error {
	if err := checkIndex(index, len(a.values)); err != nil {
		return err
	}
	a.values[index] = value
	return nil
}

func (a *Array) Len() int {
	return len(a.values)
}

// CachedArray serves repeated sums from an LRU cache and invalidates the
// cached ranges covering an index whenever it is written.
type CachedArray struct {
	values []int64
	cache  *rangecache.Cache
}

// NewCachedArray copies values into a new CachedArray whose cache holds at
// most capacity ranges.
func NewCachedArray(values []int64, capacity int) *CachedArray {
	return &CachedArray{
		values: slices.Clone(values),
		cache:  rangecache.New(capacity),
	}
}

func (a *CachedArray) Sum(left, right int) (int64, error) {
	if err := checkRange(left, right, len(a.values)); err != nil {
		return 0, err
	}

	key := rangecache.Key{Left: left, Right: right}
	if s, ok := a.cache.Get(key); ok {
		return s, nil
	}

	s := sum(a.values[left : right+1])
	a.cache.Put(key, s)
	return s, nil
}

// Set writes value at index and drops every cached range containing it.
func (a *CachedArray) Set(index int, value int64) error {
	if err := checkIndex(index, len(a.values)); err != nil {
		return err
	}
	a.values[index] = value
	a.cache.Invalidate(index)
	return nil
}

func (a *CachedArray) Len() int {
	return len(a.values)
}

func (a *CachedArray) Stats() rangecache.Stats {
	return a.cache.Stats()
}

// CacheLen returns the number of cached ranges.
func (a *CachedArray) CacheLen() int {
	return a.cache.Len()
}

func sum(values []int64) int64 {
	var s int64
	for _, v := range values {
		s += v
	}
	return s
}
