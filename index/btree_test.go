package index

import (
	"fmt"
	"testing"

	assertion "github.com/stretchr/testify/assert"
)

func keyOf(i int) []byte {
	return []byte(fmt.Sprintf("key-%05d", i))
}

func TestBtreeAscendingInsertAndSearch(t *testing.T) {
	assert := assertion.New(t)
	bt := NewBtree()
	for i := 1; i <= 99; i++ {
		assert.NoError(bt.Insert(keyOf(i), uint64(i)))
	}
	for i := 1; i <= 99; i++ {
		v, ok := bt.Search(keyOf(i))
		assert.True(ok)
		assert.Equal(uint64(i), v)
	}
	_, ok := bt.Search(keyOf(100))
	assert.False(ok)
}

func TestBtreeDescendingInsert(t *testing.T) {
	assert := assertion.New(t)
	bt := NewBtree()
	for i := 99; i >= 1; i-- {
		assert.NoError(bt.Insert(keyOf(i), uint64(i)))
	}
	for i := 1; i <= 99; i++ {
		v, ok := bt.Search(keyOf(i))
		assert.True(ok)
		assert.Equal(uint64(i), v)
	}
}

func TestBtreeRandomOrderInsertManyKeys(t *testing.T) {
	assert := assertion.New(t)
	bt := NewBtree()
	n := 10000
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	// deterministic pseudo-shuffle, no math/rand seeding needed for this check
	for i := 0; i < n; i++ {
		j := (i*2654435761 + 17) % n
		order[i], order[j] = order[j], order[i]
	}
	for _, i := range order {
		assert.NoError(bt.Insert(keyOf(i), uint64(i)))
	}
	for i := 0; i < n; i++ {
		v, ok := bt.Search(keyOf(i))
		assert.True(ok)
		assert.Equal(uint64(i), v)
	}
}

func TestBtreeInsertOverwritesExistingKey(t *testing.T) {
	assert := assertion.New(t)
	bt := NewBtree()
	assert.NoError(bt.Insert([]byte("dup"), 1))
	assert.NoError(bt.Insert([]byte("dup"), 2))
	v, ok := bt.Search([]byte("dup"))
	assert.True(ok)
	assert.Equal(uint64(2), v)
}

func TestBtreeDeleteIsUnsupported(t *testing.T) {
	assert := assertion.New(t)
	bt := NewBtree()
	assert.NoError(bt.Insert([]byte("k"), 1))
	err := bt.Delete([]byte("k"))
	assert.Error(err)

	v, ok := bt.Search([]byte("k"))
	assert.True(ok)
	assert.Equal(uint64(1), v)
}

func TestCompareKeysLengthTiebreak(t *testing.T) {
	assert := assertion.New(t)
	assert.Equal(-1, compareKeys([]byte("ab"), []byte("abc")))
	assert.Equal(1, compareKeys([]byte("abc"), []byte("ab")))
	assert.Equal(0, compareKeys([]byte("abc"), []byte("abc")))
	assert.Equal(-1, compareKeys([]byte("aac"), []byte("abc")))
}
