package checkpoint

import (
	"os"
	"testing"

	assertion "github.com/stretchr/testify/assert"
)

func TestSaveThenLoadRoundTrip(t *testing.T) {
	assert := assertion.New(t)
	dir, err := os.MkdirTemp("", "minsql-checkpoint-*")
	assert.NoError(err)
	defer os.RemoveAll(dir)

	l := New(dir)
	assert.NoError(l.Save(12345))

	rec := l.Load()
	assert.Equal(uint64(12345), rec.LSN)
	assert.NotZero(rec.Timestamp)
}

func TestLoadMissingFileReturnsZeroRecord(t *testing.T) {
	assert := assertion.New(t)
	dir, err := os.MkdirTemp("", "minsql-checkpoint-*")
	assert.NoError(err)
	defer os.RemoveAll(dir)

	l := New(dir)
	rec := l.Load()
	assert.Equal(uint64(0), rec.LSN)
}

func TestSaveOverwritesPreviousRecord(t *testing.T) {
	assert := assertion.New(t)
	dir, err := os.MkdirTemp("", "minsql-checkpoint-*")
	assert.NoError(err)
	defer os.RemoveAll(dir)

	l := New(dir)
	assert.NoError(l.Save(1))
	assert.NoError(l.Save(2))

	rec := l.Load()
	assert.Equal(uint64(2), rec.LSN)
}
