package page

import (
	"testing"

	assertion "github.com/stretchr/testify/assert"
)

func TestHeaderRoundTrip(t *testing.T) {
	assert := assertion.New(t)
	p := New()
	p.Header = Header{
		PageID:   7,
		Checksum: 0xdeadbeef,
		Lower:    HeaderSize,
		Upper:    Size,
		Special:  0,
		Flags:    0,
		LSN:      42,
	}
	p.EncodeHeader()

	var p2 Page
	p2.Data = p.Data
	p2.DecodeHeader()

	assert.Equal(p.Header, p2.Header)
}

func TestAddGetDeleteTuple(t *testing.T) {
	assert := assertion.New(t)
	p := New()
	p.Header.Lower = HeaderSize
	p.Header.Upper = Size

	slot, err := p.AddTuple([]byte("hello"))
	assert.NoError(err)
	assert.Equal(uint16(0), slot)

	got := p.GetTuple(slot)
	assert.Equal([]byte("hello"), got)

	assert.NoError(p.DeleteTuple(slot))
	assert.Nil(p.GetTuple(slot))
}

func TestAddTupleFailsWhenOutOfSpace(t *testing.T) {
	assert := assertion.New(t)
	p := New()
	p.Header.Lower = HeaderSize
	p.Header.Upper = Size

	big := make([]byte, Size)
	_, err := p.AddTuple(big)
	assert.Error(err)
}

func TestDeleteTupleOutOfRange(t *testing.T) {
	assert := assertion.New(t)
	p := New()
	p.Header.Lower = HeaderSize
	p.Header.Upper = Size
	err := p.DeleteTuple(5)
	assert.Error(err)
}

func TestFreeSpaceShrinksAsTuplesAreAdded(t *testing.T) {
	assert := assertion.New(t)
	p := New()
	p.Header.Lower = HeaderSize
	p.Header.Upper = Size

	before := p.FreeSpace()
	_, err := p.AddTuple([]byte("x"))
	assert.NoError(err)
	after := p.FreeSpace()

	assert.Equal(before-1-LinePointerSize, after)
}
