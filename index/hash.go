package index

import "github.com/itzwaris/minsql/errs"

// DefaultBuckets is the default bucket count for a new Hash index.
const DefaultBuckets = 1024

type hashEntry struct {
	key   []byte
	value uint64
}

// Hash is an in-memory hash index: a fixed bucket array, each bucket a
// list of key/value entries scanned linearly. There is no rehashing —
// the bucket count is fixed at construction.
type Hash struct {
	buckets [][]hashEntry
}

// NewHash returns a hash index with numBuckets buckets. numBuckets<=0
// uses DefaultBuckets.
func NewHash(numBuckets int) *Hash {
	if numBuckets <= 0 {
		numBuckets = DefaultBuckets
	}
	return &Hash{buckets: make([][]hashEntry, numBuckets)}
}

// bucketIndex computes h = h*31 + b over key's bytes, mod the bucket
// count.
func (h *Hash) bucketIndex(key []byte) int {
	var acc uint64
	for _, b := range key {
		acc = acc*31 + uint64(b)
	}
	return int(acc % uint64(len(h.buckets)))
}

// Insert adds key/value to its bucket, overwriting an existing entry
// for the same key.
func (h *Hash) Insert(key []byte, value uint64) error {
	idx := h.bucketIndex(key)
	bucket := h.buckets[idx]
	for i := range bucket {
		if compareKeys(key, bucket[i].key) == 0 {
			bucket[i].value = value
			return nil
		}
	}
	h.buckets[idx] = append(bucket, hashEntry{key: key, value: value})
	return nil
}

// Search scans key's bucket linearly for a match.
func (h *Hash) Search(key []byte) (uint64, bool) {
	bucket := h.buckets[h.bucketIndex(key)]
	for _, e := range bucket {
		if compareKeys(key, e.key) == 0 {
			return e.value, true
		}
	}
	return 0, false
}

// Delete removes key from its bucket. It returns an error wrapping
// errs.ErrUsage if key is not present.
func (h *Hash) Delete(key []byte) error {
	idx := h.bucketIndex(key)
	bucket := h.buckets[idx]
	for i, e := range bucket {
		if compareKeys(key, e.key) == 0 {
			h.buckets[idx] = append(bucket[:i], bucket[i+1:]...)
			return nil
		}
	}
	return errs.Wrap(errs.ErrUsage, "hash index delete: key not found")
}
