package index

import "github.com/itzwaris/minsql/errs"

// DefaultBloomBits and DefaultBloomHashes are the Bloom filter's
// defaults when constructed with zero values.
const (
	DefaultBloomBits   = 10000
	DefaultBloomHashes = 3
)

// Bloom is a fixed-size Bloom filter: numHashes independent polynomial
// hashes, each seeded differently, set bits in a shared bit array on
// Insert. It never produces a false negative, and supports no delete.
type Bloom struct {
	bits      []byte
	numBits   int
	numHashes int
}

// NewBloom returns a Bloom filter with numBits bits and numHashes hash
// functions. Zero values fall back to the defaults.
func NewBloom(numBits, numHashes int) *Bloom {
	if numBits <= 0 {
		numBits = DefaultBloomBits
	}
	if numHashes <= 0 {
		numHashes = DefaultBloomHashes
	}
	return &Bloom{
		bits:      make([]byte, (numBits+7)/8),
		numBits:   numBits,
		numHashes: numHashes,
	}
}

// hash computes h = seed; h = h*31 + b per byte, mod numBits.
func (f *Bloom) hash(key []byte, seed int) int {
	h := uint64(seed)
	for _, b := range key {
		h = h*31 + uint64(b)
	}
	return int(h % uint64(f.numBits))
}

func (f *Bloom) setBit(idx int) {
	f.bits[idx/8] |= 1 << uint(idx%8)
}

func (f *Bloom) getBit(idx int) bool {
	return f.bits[idx/8]&(1<<uint(idx%8)) != 0
}

// Insert sets every hash bit for key.
func (f *Bloom) Insert(key []byte) {
	for seed := 0; seed < f.numHashes; seed++ {
		f.setBit(f.hash(key, seed))
	}
}

// MightContain reports whether every hash bit for key is set. A false
// result is definitive; a true result may be a false positive.
func (f *Bloom) MightContain(key []byte) bool {
	for seed := 0; seed < f.numHashes; seed++ {
		if !f.getBit(f.hash(key, seed)) {
			return false
		}
	}
	return true
}

// Search satisfies the Index-like shape used elsewhere for symmetry,
// but a Bloom filter carries no value per key — it returns (0, true)
// when MightContain is true and (0, false) otherwise.
func (f *Bloom) Search(key []byte) (uint64, bool) {
	return 0, f.MightContain(key)
}

// Delete is not supported: a Bloom filter cannot remove a key without
// risking false negatives for keys that share its bits.
func (f *Bloom) Delete(key []byte) error {
	return errs.Wrap(errs.ErrUsage, "bloom filter does not support delete")
}
