package bufferpool

import (
	"os"
	"testing"

	assertion "github.com/stretchr/testify/assert"

	"github.com/itzwaris/minsql/diskmanager"
)

func newTestPool(t *testing.T, capacity int) (*Pool, *diskmanager.Manager) {
	dir, err := os.MkdirTemp("", "minsql-bufferpool-*")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	dm, err := diskmanager.New(dir)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { dm.Close() })

	return New(dm, capacity), dm
}

func TestGetPageHitReturnsSamePointer(t *testing.T) {
	assert := assertion.New(t)
	pool, dm := newTestPool(t, 4)

	pg, err := dm.Alloc()
	assert.NoError(err)
	assert.NoError(dm.Write(pg))

	g1, err := pool.GetPage(pg.Header.PageID)
	assert.NoError(err)
	g2, err := pool.GetPage(pg.Header.PageID)
	assert.NoError(err)

	assert.Same(g1, g2)
	assert.Equal(uint16(2), g1.PinCount)
}

func TestEvictionSkipsPinnedPages(t *testing.T) {
	assert := assertion.New(t)
	pool, dm := newTestPool(t, 2)

	var ids []uint32
	for i := 0; i < 2; i++ {
		pg, err := dm.Alloc()
		assert.NoError(err)
		assert.NoError(dm.Write(pg))
		ids = append(ids, pg.Header.PageID)
	}
	extra, err := dm.Alloc()
	assert.NoError(err)
	assert.NoError(dm.Write(extra))

	for _, id := range ids {
		_, err := pool.GetPage(id)
		assert.NoError(err)
	}

	got, err := pool.GetPage(extra.Header.PageID)
	assert.NoError(err)
	assert.Nil(got, "both resident pages are pinned; there is no evictable victim")
}

func TestUnpinAllowsEviction(t *testing.T) {
	assert := assertion.New(t)
	pool, dm := newTestPool(t, 1)

	p1, err := dm.Alloc()
	assert.NoError(err)
	assert.NoError(dm.Write(p1))
	p2, err := dm.Alloc()
	assert.NoError(err)
	assert.NoError(dm.Write(p2))

	g1, err := pool.GetPage(p1.Header.PageID)
	assert.NoError(err)
	pool.UnpinPage(g1)

	g2, err := pool.GetPage(p2.Header.PageID)
	assert.NoError(err)
	assert.NotNil(g2)
}

func TestFlushAllWritesDirtyPages(t *testing.T) {
	assert := assertion.New(t)
	pool, dm := newTestPool(t, 4)

	pg, err := dm.Alloc()
	assert.NoError(err)
	assert.NoError(dm.Write(pg))

	g, err := pool.GetPage(pg.Header.PageID)
	assert.NoError(err)
	g.Data[50] = 0x9
	g.Dirty = true

	assert.NoError(pool.FlushAll())
	assert.False(g.Dirty)

	reread, err := dm.Read(pg.Header.PageID)
	assert.NoError(err)
	assert.Equal(byte(0x9), reread.Data[50])
}
