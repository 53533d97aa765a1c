package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Pool Creation Utilities
// ============================================================================

// newTestPool creates an initialized pool over a small region and tears
// it down with the test.
func newTestPool(t testing.TB, regionSize, reserve uint32) *Pool {
	t.Helper()

	p := New(&Config{RegionSize: regionSize})
	require.NoError(t, p.Init(reserve), "failed to initialize test pool")
	t.Cleanup(p.Shutdown)

	return p
}

// carveFreeLayout arranges the pool so that its leading free blocks have
// exactly the given sizes, in address order. Each sized block is pinned
// by a one-quantum in-use block behind it so that neighbors cannot
// coalesce; whatever space is left over stays as one trailing free
// block after the last pin. Returns the base offset of each sized block.
func carveFreeLayout(t testing.TB, p *Pool, sizes ...uint32) []Offset {
	t.Helper()

	offs := make([]Offset, len(sizes))
	for i, size := range sizes {
		off, err := p.Malloc(size)
		require.NoError(t, err, "layout alloc of %d bytes", size)
		offs[i] = off

		_, err = p.Malloc(Quantum)
		require.NoError(t, err, "layout pin after %d-byte block", size)
	}
	for i, off := range offs {
		require.NoError(t, p.Free(off), "layout free of %d-byte block", sizes[i])
	}
	return offs
}

// ============================================================================
// Invariant Assertions
// ============================================================================

// assertTiling verifies the core pool invariants: the tracked blocks
// exactly tile [reserve, region size) in address order with no gaps or
// overlaps, every base and size is quantum-aligned, and no two adjacent
// free blocks survived the last operation.
func assertTiling(t testing.TB, p *Pool, reserve uint32) {
	t.Helper()

	blocks := p.Blocks()
	require.NotEmpty(t, blocks, "initialized pool must track at least one block")

	next := roundUp(reserve)
	for i, b := range blocks {
		assert.Equal(t, next, b.Base, "block %d must start where block %d ended", i, i-1)
		assert.NotZero(t, b.Size, "block %d must not be empty", i)
		assert.Zero(t, b.Base%Quantum, "block %d base must be quantum-aligned", i)
		assert.Zero(t, b.Size%Quantum, "block %d size must be quantum-aligned", i)
		if i > 0 && !blocks[i-1].InUse && !b.InUse {
			t.Errorf("blocks %d and %d are both free; coalescing missed them", i-1, i)
		}
		next += b.Size
	}
	assert.Equal(t, p.regionSize, next, "blocks must tile the region exactly")

	live := len(p.blocks) - len(p.slots)
	assert.Equal(t, len(blocks), live, "record arena accounting is off")
}
