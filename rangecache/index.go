package rangecache

type indexEntry struct {
	sum int64
	h   handle
}

// cacheIndex maps a key to its cached sum and its node in the eviction order.
type cacheIndex struct {
	entries map[Key]indexEntry
}

func newCacheIndex(capacity int) *cacheIndex {
	return &cacheIndex{entries: make(map[Key]indexEntry, capacity)}
}

func (x *cacheIndex) lookup(key Key) (indexEntry, bool) {
	e, ok := x.entries[key]
	return e, ok
}

func (x *cacheIndex) insert(key Key, sum int64, h handle) {
	x.entries[key] = indexEntry{sum: sum, h: h}
}

func (x *cacheIndex) remove(key Key) (handle, bool) {
	e, ok := x.entries[key]
	if !ok {
		return handle{}, false
	}
	delete(x.entries, key)
	return e.h, true
}

func (x *cacheIndex) len() int {
	return len(x.entries)
}

func (x *cacheIndex) reset() {
	clear(x.entries)
}
