package diskmanager

import (
	"os"
	"testing"

	assertion "github.com/stretchr/testify/assert"

	"github.com/itzwaris/minsql/page"
)

func tempDir(t *testing.T) string {
	dir, err := os.MkdirTemp("", "minsql-diskmanager-*")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func TestAllocWriteReadRoundTrip(t *testing.T) {
	assert := assertion.New(t)
	m, err := New(tempDir(t))
	assert.NoError(err)
	defer m.Close()

	pg, err := m.Alloc()
	assert.NoError(err)
	assert.Equal(uint32(0), pg.Header.PageID)

	pg.Data[1000] = 0x7a
	pg.Dirty = true
	assert.NoError(m.Write(pg))

	reread, err := m.Read(0)
	assert.NoError(err)
	assert.Equal(byte(0x7a), reread.Data[1000])
	assert.False(reread.Dirty)
	assert.Equal(uint16(1), reread.PinCount)
}

func TestReadBeyondNumPagesReturnsNil(t *testing.T) {
	assert := assertion.New(t)
	m, err := New(tempDir(t))
	assert.NoError(err)
	defer m.Close()

	pg, err := m.Read(99)
	assert.NoError(err)
	assert.Nil(pg)
}

func TestReadDetectsCorruption(t *testing.T) {
	assert := assertion.New(t)
	dir := tempDir(t)
	m, err := New(dir)
	assert.NoError(err)

	pg, err := m.Alloc()
	assert.NoError(err)
	assert.NoError(m.Write(pg))
	assert.NoError(m.Close())

	f, err := os.OpenFile(dir+"/pages.dat", os.O_RDWR, 0644)
	assert.NoError(err)
	_, err = f.WriteAt([]byte{0xff, 0xff, 0xff, 0xff}, int64(page.HeaderSize)+100)
	assert.NoError(err)
	assert.NoError(f.Close())

	m2, err := New(dir)
	assert.NoError(err)
	defer m2.Close()

	_, err = m2.Read(0)
	assert.Error(err)
}

func TestNumPagesIncrementsOnAlloc(t *testing.T) {
	assert := assertion.New(t)
	m, err := New(tempDir(t))
	assert.NoError(err)
	defer m.Close()

	assert.Equal(uint32(0), m.NumPages())
	_, err = m.Alloc()
	assert.NoError(err)
	assert.Equal(uint32(1), m.NumPages())
}
