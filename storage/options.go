package storage

import (
	"github.com/itzwaris/minsql/bufferpool"
	"github.com/itzwaris/minsql/index"
	"github.com/itzwaris/minsql/wal"
)

// Options carries every tunable the engine exposes, defaulting to the
// constants named throughout the component packages. A zero Options is
// valid: every field's zero value is treated as "use the default" by
// the component it configures.
type Options struct {
	BufferPoolCapacity int
	WALBufferSize      int
	ArenaCapacity      int
	BloomBits          int
	BloomHashes        int
	HashBuckets        int
}

// DefaultOptions returns the spec's documented defaults.
func DefaultOptions() *Options {
	return &Options{
		BufferPoolCapacity: bufferpool.DefaultCapacity,
		WALBufferSize:      wal.BufferSize,
		ArenaCapacity:      0,
		BloomBits:          index.DefaultBloomBits,
		BloomHashes:        index.DefaultBloomHashes,
		HashBuckets:        index.DefaultBuckets,
	}
}
