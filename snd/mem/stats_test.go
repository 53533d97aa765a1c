package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_TracksCountersAndAggregates(t *testing.T) {
	p := newTestPool(t, 8192, 0)

	a, err := p.Malloc(1000) // rounds to 1024, splits the initial block
	require.NoError(t, err)
	b, err := p.Malloc(2048) // splits again
	require.NoError(t, err)
	require.NoError(t, p.Free(a)) // no free neighbor, no merge

	s := p.Stats()
	assert.Equal(t, uint64(2), s.Allocs)
	assert.Equal(t, uint64(2), s.Splits)
	assert.Equal(t, uint64(1), s.Frees)
	assert.Zero(t, s.Coalesces)

	assert.Equal(t, 3, s.Blocks)
	assert.Equal(t, 2, s.FreeBlocks)
	assert.Equal(t, 1, s.UsedBlocks)
	assert.Equal(t, uint32(2048), s.TotalUsed)
	assert.Equal(t, uint32(8192-2048), s.TotalFree)
	assert.Equal(t, uint32(8192-1024-2048), s.LargestFree)
	assert.Equal(t, p.Available(), s.LargestFree, "Stats and Available must agree")

	require.NoError(t, p.Free(b))
	s = p.Stats()
	assert.Equal(t, uint64(2), s.Coalesces, "freeing b merges with both neighbors")
	assert.Equal(t, 1, s.Blocks)
	assert.Equal(t, uint32(8192), s.TotalFree)

	// Aggregates always account for every byte of the region.
	assert.Equal(t, uint32(8192), s.TotalFree+s.TotalUsed)
}

func TestStats_UninitializedIsZero(t *testing.T) {
	p := New(nil)
	assert.Zero(t, p.Stats())
}
