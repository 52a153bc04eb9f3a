package filesystem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_AllocReleaseGet(t *testing.T) {
	t.Parallel()

	var a arena
	n := &File{}

	idx, gen := a.alloc(n)
	got, ok := a.get(idx, gen)
	require.True(t, ok)
	assert.Same(t, n, got)
	assert.Equal(t, 1, a.live)

	require.True(t, a.release(idx, gen))
	_, ok = a.get(idx, gen)
	assert.False(t, ok)
	assert.False(t, a.release(idx, gen), "double release must be rejected")
	assert.Equal(t, 0, a.live)

	idx2, gen2 := a.alloc(&File{})
	assert.Equal(t, idx, idx2)
	assert.Equal(t, gen+1, gen2)
}

func TestArena_OutOfRange(t *testing.T) {
	t.Parallel()

	var a arena
	_, ok := a.get(5, 1)
	assert.False(t, ok)
	_, ok = a.get(0, 0)
	assert.False(t, ok)
	assert.False(t, a.release(3, 1))
}

func TestArena_ExhaustedGenerationRetiresSlot(t *testing.T) {
	t.Parallel()

	var a arena
	idx, _ := a.alloc(&File{})
	a.slots[idx].gen = math.MaxUint32

	require.True(t, a.release(idx, math.MaxUint32))
	assert.Empty(t, a.free)
	assert.Equal(t, 0, a.live)

	// a fresh slot is used and no earlier generation comes back to life
	idx2, gen2 := a.alloc(&File{})
	assert.NotEqual(t, idx, idx2)
	assert.Equal(t, uint32(1), gen2)
	for _, gen := range []uint32{1, math.MaxUint32} {
		_, ok := a.get(idx, gen)
		assert.False(t, ok)
	}
	assert.False(t, a.release(idx, math.MaxUint32))
}
