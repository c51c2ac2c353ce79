package tier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubset(t *testing.T) {
	assert.True(t, Subset(0, 0))
	assert.True(t, Subset(0, 5))
	assert.True(t, Subset(4, 12))
	assert.True(t, Subset(12, 12))
	assert.True(t, Subset(12, All))
	assert.False(t, Subset(5, 4))
	assert.False(t, Subset(All, 12))
	assert.False(t, Subset(8, 7))
}

func TestInf(t *testing.T) {
	assert.Equal(t, All, Inf())
	assert.Equal(t, Tier(7), Inf(7))
	assert.Equal(t, Tier(4), Inf(7, 14, 28))
	assert.Equal(t, Tier(0), Inf(1, 2))
	assert.Equal(t, Tier(12), Inf(All, 12))
}

func TestSup(t *testing.T) {
	assert.Equal(t, None, Sup())
	assert.Equal(t, Tier(7), Sup(7))
	assert.Equal(t, Tier(31), Sup(7, 14, 28))
	assert.Equal(t, Tier(12), Sup(None, 12))
	assert.Equal(t, All, Sup(All, 1))
}

func TestAtomic(t *testing.T) {
	assert.False(t, Atomic(0))
	assert.True(t, Atomic(1))
	assert.True(t, Atomic(8))
	assert.True(t, Atomic(1<<31))
	assert.False(t, Atomic(3))
	assert.False(t, Atomic(12))
	assert.False(t, Atomic(All))
}
