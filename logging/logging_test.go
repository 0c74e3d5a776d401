package logging

import (
	"testing"

	assertion "github.com/stretchr/testify/assert"
)

func TestComponentSetsField(t *testing.T) {
	assert := assertion.New(t)
	entry := Component("wal")
	assert.Equal("wal", entry.Data["component"])
}

func TestDiscardDoesNotPanicOnLog(t *testing.T) {
	assert := assertion.New(t)
	entry := Discard()
	assert.NotPanics(func() {
		entry.Info("this should be dropped")
	})
}
