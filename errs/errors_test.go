package errs

import (
	"testing"

	"github.com/pkg/errors"
	assertion "github.com/stretchr/testify/assert"
)

func TestWrapPreservesSentinelIdentity(t *testing.T) {
	assert := assertion.New(t)
	wrapped := Wrap(ErrIO, "short read")
	assert.True(errors.Is(wrapped, ErrIO))
	assert.False(errors.Is(wrapped, ErrUsage))
}

func TestWrapfFormatsMessage(t *testing.T) {
	assert := assertion.New(t)
	wrapped := Wrapf(ErrCorruption, "page %d mismatch", 7)
	assert.Contains(wrapped.Error(), "page 7 mismatch")
	assert.True(errors.Is(wrapped, ErrCorruption))
}
