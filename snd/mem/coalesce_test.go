package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allocRun allocates n contiguous blocks of the given size from a fresh
// pool and returns their bases.
func allocRun(t *testing.T, p *Pool, n int, size uint32) []Offset {
	t.Helper()
	offs := make([]Offset, n)
	for i := range offs {
		off, err := p.Malloc(size)
		require.NoError(t, err)
		offs[i] = off
	}
	return offs
}

// TestFree_CoalesceOrderIndependent verifies that freeing two adjacent
// blocks yields one merged free block regardless of the order of frees,
// indistinguishable from never having split.
func TestFree_CoalesceOrderIndependent(t *testing.T) {
	run := func(t *testing.T, firstThenSecond bool) []BlockInfo {
		p := newTestPool(t, 4096, 0)
		offs := allocRun(t, p, 3, 128) // third block pins the tail boundary

		if firstThenSecond {
			require.NoError(t, p.Free(offs[0]))
			require.NoError(t, p.Free(offs[1]))
		} else {
			require.NoError(t, p.Free(offs[1]))
			require.NoError(t, p.Free(offs[0]))
		}
		assertTiling(t, p, 0)
		return p.Blocks()
	}

	forward := run(t, true)
	backward := run(t, false)

	assert.Equal(t, forward, backward, "free order must not be observable")
	require.NotEmpty(t, forward)
	assert.Equal(t, BlockInfo{Base: 0, Size: 256, InUse: false}, forward[0],
		"adjacent frees must merge into one 256-byte block")
}

// TestFree_CoalesceBothSides frees the middle block last so it must merge
// with both neighbors at once, collapsing the whole region.
func TestFree_CoalesceBothSides(t *testing.T) {
	p := newTestPool(t, 4096, 0)
	offs := allocRun(t, p, 3, 128)

	require.NoError(t, p.Free(offs[0]))
	require.NoError(t, p.Free(offs[2])) // merges forward into the tail remainder
	require.NoError(t, p.Free(offs[1]))

	blocks := p.Blocks()
	require.Len(t, blocks, 1, "everything freed must collapse to a single block")
	assert.Equal(t, BlockInfo{Base: 0, Size: 4096, InUse: false}, blocks[0])

	s := p.Stats()
	assert.Equal(t, uint64(3), s.Frees)
	assert.Equal(t, uint64(3), s.Coalesces, "one forward merge, then one on each side")

	assertTiling(t, p, 0)
}

// TestFree_NoCoalesceAcrossInUse verifies that an in-use block fences
// coalescing: frees on both sides of it stay separate.
func TestFree_NoCoalesceAcrossInUse(t *testing.T) {
	p := newTestPool(t, 4096, 0)
	offs := allocRun(t, p, 3, 128)

	require.NoError(t, p.Free(offs[0]))
	require.NoError(t, p.Free(offs[2]))

	blocks := p.Blocks()
	require.Len(t, blocks, 3, "free, in-use, free(+tail) layout expected")
	assert.Equal(t, BlockInfo{Base: 0, Size: 128, InUse: false}, blocks[0])
	assert.Equal(t, BlockInfo{Base: 128, Size: 128, InUse: true}, blocks[1])
	assert.Equal(t, BlockInfo{Base: 256, Size: 4096 - 256, InUse: false}, blocks[2],
		"third free must merge with the tail, not across the in-use block")

	assertTiling(t, p, 0)
}

// TestFree_ReusesRecordSlots verifies that records dropped by coalescing
// return to the arena and are reused by later splits, so alloc/free
// cycles do not grow the arena.
func TestFree_ReusesRecordSlots(t *testing.T) {
	p := newTestPool(t, 8192, 0)

	for i := 0; i < 32; i++ {
		off, err := p.Malloc(1024)
		require.NoError(t, err)
		require.NoError(t, p.Free(off))
	}

	assert.LessOrEqual(t, len(p.blocks), 2, "steady-state churn must recycle records")
	assertTiling(t, p, 0)
}
