package index

import (
	"github.com/dgraph-io/ristretto/v2"
)

// Cached wraps any Index with a read-through cache on Search. The cache
// is purely an optimization: every Insert or Delete invalidates the
// cached entry for that key before touching the underlying index, so
// Cached never returns a value the underlying index wouldn't also
// return — it only ever saves a traversal on a repeated Search.
type Cached struct {
	underlying Index
	cache      *ristretto.Cache[string, uint64]
}

// cacheEntries bounds the number of counters ristretto tracks; cacheCost
// bounds total admitted entries. Both are generous defaults for a
// key-sized cache and not exposed as configuration, since the cache's
// hit rate is an optimization detail, not a correctness knob.
const (
	cacheEntries = 100000
	cacheCost    = 10000
)

// NewCached returns underlying wrapped with a read-through Search
// cache.
func NewCached(underlying Index) (*Cached, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, uint64]{
		NumCounters: cacheEntries,
		MaxCost:     cacheCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cached{underlying: underlying, cache: cache}, nil
}

// Search checks the cache first; on a miss it falls through to the
// underlying index and, if found, admits the result into the cache.
func (c *Cached) Search(key []byte) (uint64, bool) {
	if v, ok := c.cache.Get(string(key)); ok {
		return v, true
	}
	v, ok := c.underlying.Search(key)
	if ok {
		c.cache.Set(string(key), v, 1)
	}
	return v, ok
}

// Insert invalidates key's cache entry, then delegates.
func (c *Cached) Insert(key []byte, value uint64) error {
	c.cache.Del(string(key))
	return c.underlying.Insert(key, value)
}

// Delete invalidates key's cache entry, then delegates.
func (c *Cached) Delete(key []byte) error {
	c.cache.Del(string(key))
	return c.underlying.Delete(key)
}

// Close releases the cache's background goroutines. Callers that create
// a Cached must Close it when done.
func (c *Cached) Close() {
	c.cache.Close()
}
