// Package index holds the in-memory secondary indexes: a B-tree, a hash
// index, and a Bloom filter, plus a read-through cache decorator. The
// B-tree and hash index implement the Index contract; the Bloom filter
// does not, since its Insert takes no value.
package index

// Index is the shared contract every index implementation satisfies.
// Search reports whether key was found; Delete is not guaranteed to be
// supported by every implementation (see Btree.Delete).
type Index interface {
	Insert(key []byte, value uint64) error
	Search(key []byte) (uint64, bool)
	Delete(key []byte) error
}

// compareKeys orders two keys lexicographically by byte value, and
// breaks ties between a prefix and its extension by length — the
// shorter key sorts first. Shared by the B-tree for ordering and by
// index construction generally for key equality.
func compareKeys(a, b []byte) int {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
