package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMalloc_BestFitPicksSmallest verifies that the allocator selects the
// smallest free block that satisfies the request, not the first or the
// largest.
func TestMalloc_BestFitPicksSmallest(t *testing.T) {
	p := newTestPool(t, 64*1024, 0)

	// Free layout, in address order: [320][160][640] plus the trailing
	// remainder block, with in-use pins between them.
	offs := carveFreeLayout(t, p, 320, 160, 640)

	// 192 bytes fit in 320 and 640 but not 160; best fit is 320.
	off, err := p.Malloc(192)
	require.NoError(t, err)
	assert.Equal(t, offs[0], off, "should allocate from the 320-byte block (smallest fit)")

	// The 320 block was split: 192 in use at its base, 128 still free.
	var found bool
	for _, b := range p.Blocks() {
		if b.Base == offs[0] {
			found = true
			assert.True(t, b.InUse)
			assert.Equal(t, uint32(192), b.Size)
		}
		if b.Base == offs[0]+192 {
			assert.False(t, b.InUse)
			assert.Equal(t, uint32(128), b.Size, "split remainder must cover the tail")
		}
	}
	require.True(t, found, "allocated block missing from snapshot")

	assertTiling(t, p, 0)
}

// TestMalloc_TieBrokenByAddressOrder verifies the deliberate tie-break:
// among equally small fits, the block encountered first in address order
// wins.
func TestMalloc_TieBrokenByAddressOrder(t *testing.T) {
	p := newTestPool(t, 64*1024, 0)

	offs := carveFreeLayout(t, p, 256, 256)

	off, err := p.Malloc(256)
	require.NoError(t, err)
	assert.Equal(t, offs[0], off, "first of two equal fits must win")

	off, err = p.Malloc(256)
	require.NoError(t, err)
	assert.Equal(t, offs[1], off, "second allocation takes the remaining twin")

	assertTiling(t, p, 0)
}

// TestMalloc_ExactFitDoesNotSplit verifies that an exact-size match is
// claimed in place and the pool's block count is unchanged.
func TestMalloc_ExactFitDoesNotSplit(t *testing.T) {
	p := newTestPool(t, 64*1024, 0)

	offs := carveFreeLayout(t, p, 512, 256)
	before := len(p.Blocks())

	off, err := p.Malloc(256)
	require.NoError(t, err)
	assert.Equal(t, offs[1], off, "exact 256 match must be preferred over splitting 512")
	assert.Len(t, p.Blocks(), before, "exact fit must not create a new block")

	assertTiling(t, p, 0)
}

// TestMalloc_SplitKeepsHeadLeavesTail verifies split arithmetic: the
// allocation keeps the head of the chosen block and the remainder
// becomes a free block immediately after it.
func TestMalloc_SplitKeepsHeadLeavesTail(t *testing.T) {
	p := newTestPool(t, 4096, 0)

	off, err := p.Malloc(1024)
	require.NoError(t, err)
	assert.Equal(t, Offset(0), off)

	blocks := p.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, BlockInfo{Base: 0, Size: 1024, InUse: true}, blocks[0])
	assert.Equal(t, BlockInfo{Base: 1024, Size: 3072, InUse: false}, blocks[1])

	assertTiling(t, p, 0)
}

// TestMalloc_AlignsSizeAndBase exercises the alignment quantum: a 1-byte
// request occupies a full 32-byte block at a 32-aligned base.
func TestMalloc_AlignsSizeAndBase(t *testing.T) {
	p := newTestPool(t, 8192, 0x50) // reserve rounds up to 0x60

	off, err := p.Malloc(1)
	require.NoError(t, err)
	assert.Zero(t, off%Quantum, "allocation base must be 32-byte aligned")

	blocks := p.Blocks()
	require.NotEmpty(t, blocks)
	assert.Equal(t, uint32(Quantum), blocks[0].Size, "a 1-byte request occupies one quantum")
	assert.True(t, blocks[0].InUse)

	assertTiling(t, p, 0x50)
}

func TestMalloc_Exhaustion(t *testing.T) {
	p := newTestPool(t, 4096, 0)

	before := p.Blocks()

	off, err := p.Malloc(8192)
	assert.ErrorIs(t, err, ErrNoSpace)
	assert.Zero(t, off)
	assert.Equal(t, before, p.Blocks(), "failed allocation must not disturb the pool")

	// Fragmentation: two 2048 halves, one in use, cannot serve 3000
	// even though total free space would cover it.
	off, err = p.Malloc(2048)
	require.NoError(t, err)
	_, err = p.Malloc(3000)
	assert.ErrorIs(t, err, ErrNoSpace)
	require.NoError(t, p.Free(off))

	assertTiling(t, p, 0)
}

// TestMalloc_RecordExhaustion drives the block record arena to its cap
// and verifies that a split which cannot be tracked fails with no
// partial mutation, while exact fits (which need no new record) still
// succeed.
func TestMalloc_RecordExhaustion(t *testing.T) {
	p := New(&Config{RegionSize: 4096, MaxBlocks: 2})
	require.NoError(t, p.Init(0))
	defer p.Shutdown()

	// Record 1: the initial free block. Record 2: the split remainder.
	off, err := p.Malloc(1024)
	require.NoError(t, err)

	before := p.Blocks()
	_, err = p.Malloc(512)
	assert.ErrorIs(t, err, ErrNoRecords, "second split has no record to use")
	assert.Equal(t, before, p.Blocks(), "failed split must leave the pool untouched")

	// An exact fit of the whole remaining block needs no record.
	off2, err := p.Malloc(3072)
	require.NoError(t, err, "exact fit must succeed with a full arena")
	assert.Equal(t, Offset(1024), off2)

	require.NoError(t, p.Free(off2))
	require.NoError(t, p.Free(off))
	assertTiling(t, p, 0)
}
