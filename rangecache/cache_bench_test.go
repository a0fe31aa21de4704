package rangecache

import (
	"fmt"
	"math/rand/v2"
	"testing"
)

func benchmarkKeys(n, width int) []Key {
	rng := rand.New(rand.NewPCG(1, 1))
	keys := make([]Key, n)
	for i := range keys {
		left := rng.IntN(width)
		keys[i] = Key{left, left + rng.IntN(width-left)}
	}
	return keys
}

func BenchmarkCache_GetHit(b *testing.B) {
	c := New(1000)
	keys := benchmarkKeys(1000, 100_000)
	for i, k := range keys {
		c.Put(k, int64(i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(keys[i%len(keys)])
	}
}

func BenchmarkCache_PutEvict(b *testing.B) {
	c := New(1000)
	keys := benchmarkKeys(4096, 100_000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Put(keys[i%len(keys)], int64(i))
	}
}

func BenchmarkCache_Invalidate(b *testing.B) {
	for _, size := range []int{100, 1000} {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			c := New(size)
			keys := benchmarkKeys(size, 1_000_000)
			for i, k := range keys {
				c.Put(k, int64(i))
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				// An index past every range keeps the cache full.
				c.Invalidate(-1)
			}
		})
	}
}
