package arena

import (
	"testing"

	assertion "github.com/stretchr/testify/assert"
)

func TestAllocAlignsAndAdvancesOffset(t *testing.T) {
	assert := assertion.New(t)
	a := New(64)

	p1 := a.Alloc(3)
	assert.NotNil(p1)
	assert.Equal(8, a.Used())

	p2 := a.Alloc(8)
	assert.NotNil(p2)
	assert.Equal(16, a.Used())
}

func TestAllocReturnsNilWhenExceedingCapacity(t *testing.T) {
	assert := assertion.New(t)
	a := New(16)
	assert.NotNil(a.Alloc(16))
	assert.Nil(a.Alloc(1))
}

func TestResetReclaimsSpace(t *testing.T) {
	assert := assertion.New(t)
	a := New(16)
	assert.NotNil(a.Alloc(16))
	assert.Nil(a.Alloc(1))

	a.Reset()
	assert.Equal(0, a.Used())
	assert.NotNil(a.Alloc(16))
}

func TestDefaultCapacity(t *testing.T) {
	assert := assertion.New(t)
	a := New(0)
	assert.Equal(DefaultCapacity, a.Capacity())
}
