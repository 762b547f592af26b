package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGate(t *testing.T) {
	gate := NewGate([]int64{872585742, 100})

	assert.True(t, gate.Allowed(872585742))
	assert.True(t, gate.Allowed(100))
	assert.False(t, gate.Allowed(101))
	assert.False(t, gate.Allowed(0))

	assert.ElementsMatch(t, []int64{872585742, 100}, gate.Members())
}

func TestGate_Empty(t *testing.T) {
	gate := NewGate(nil)
	assert.False(t, gate.Allowed(1))
	assert.Empty(t, gate.Members())
}
