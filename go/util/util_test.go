package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIn(t *testing.T) {
	assert.True(t, In("a", []string{"a", "b"}))
	assert.False(t, In("c", []string{"a", "b"}))
	assert.False(t, In("a", nil))
}

func TestAbsInt(t *testing.T) {
	assert.Equal(t, 4, AbsInt(-4))
	assert.Equal(t, 4, AbsInt(4))
	assert.Equal(t, 0, AbsInt(0))
}

func TestCeilFrac(t *testing.T) {
	// 5% of 256 bins rounds up to bin 13.
	assert.Equal(t, 13, CeilFrac(256, 0.05))
	assert.Equal(t, 0, CeilFrac(256, 0))
	assert.Equal(t, 256, CeilFrac(256, 1))
}
