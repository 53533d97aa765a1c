package mem

import (
	"io"
	"log/slog"
	"math"
	"sync"
)

// nilIdx marks the absence of a block record index.
const nilIdx = int32(-1)

// block is one record in the pool's address-ordered sequence. Records
// live in an index-addressed arena rather than behind pointers, so slots
// can be recycled across Init cycles without pointer fixups.
type block struct {
	base  Offset
	size  uint32
	inuse bool
	next  int32
	prev  int32
}

// Pool is a best-fit allocator over a fixed sound RAM region. The zero
// value is not usable; construct with New and call Init before use.
type Pool struct {
	mu sync.Mutex

	regionSize uint32
	maxBlocks  int
	log        *slog.Logger

	initted bool
	blocks  []block
	slots   []int32 // recycled record indices
	head    int32
	stats   counters
}

// New constructs an uninitialized pool. A nil cfg selects the defaults
// (the real 2MB region).
func New(cfg *Config) *Pool {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	if c.RegionSize == 0 {
		c.RegionSize = RegionSize
	}
	c.RegionSize &^= Quantum - 1
	if c.MaxBlocks <= 0 {
		c.MaxBlocks = int(c.RegionSize / Quantum)
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Pool{
		regionSize: c.RegionSize,
		maxBlocks:  c.MaxBlocks,
		log:        c.Logger,
		head:       nilIdx,
	}
}

// roundUp rounds n up to the next Quantum multiple.
func roundUp(n uint32) uint32 {
	return (n + Quantum - 1) &^ (Quantum - 1)
}

// newRecord returns a free arena slot, or nilIdx when the arena is at
// its configured cap. Growing the arena may relocate it, so callers must
// re-take any *block pointers they held across this call.
func (p *Pool) newRecord() int32 {
	if n := len(p.slots); n > 0 {
		idx := p.slots[n-1]
		p.slots = p.slots[:n-1]
		return idx
	}
	if len(p.blocks) >= p.maxBlocks {
		return nilIdx
	}
	p.blocks = append(p.blocks, block{})
	return int32(len(p.blocks) - 1)
}

// releaseRecord returns a slot to the recycle list. The record's links
// are dead after this.
func (p *Pool) releaseRecord(idx int32) {
	p.slots = append(p.slots, idx)
}

// Init prepares the pool to manage [reserve, region size). The reserve
// is rounded up to the quantum; the bytes below it are never handed out
// (on real hardware they hold the loaded driver image and channel
// registers). An initialized pool is implicitly shut down first, so Init
// doubles as a reset.
func (p *Pool) Init(reserve Offset) error {
	if p.initted {
		p.Shutdown()
	}

	if !p.mu.TryLock() {
		return ErrBusy
	}
	defer p.mu.Unlock()

	rounded := roundUp(reserve)
	if rounded < reserve || rounded >= p.regionSize {
		return ErrBadReserve
	}
	reserve = rounded

	p.blocks = p.blocks[:0]
	p.slots = p.slots[:0]
	p.head = nilIdx
	p.stats = counters{}

	idx := p.newRecord()
	if idx == nilIdx {
		return ErrNoRecords
	}
	p.blocks[idx] = block{
		base: reserve,
		size: p.regionSize - reserve,
		next: nilIdx,
		prev: nilIdx,
	}
	p.head = idx
	p.initted = true

	p.log.Debug("sound RAM pool initialized", "reserve", reserve, "available", p.regionSize-reserve)
	return nil
}

// Shutdown releases all block records and marks the pool uninitialized.
// It is idempotent. A contended lock aborts the shutdown silently; the
// lifecycle calls are not meant to race the allocation path.
func (p *Pool) Shutdown() {
	if !p.initted {
		return
	}
	if !p.mu.TryLock() {
		return
	}
	defer p.mu.Unlock()

	for idx := p.head; idx != nilIdx; idx = p.blocks[idx].next {
		b := &p.blocks[idx]
		p.log.Debug("releasing block", "base", b.base, "size", b.size, "inuse", b.inuse)
	}
	p.blocks = p.blocks[:0]
	p.slots = p.slots[:0]
	p.head = nilIdx
	p.initted = false
}

// Malloc allocates size bytes of sound RAM and returns the offset of the
// block. The size is rounded up to the quantum. A zero size returns
// offset 0 with no allocation performed; callers must never treat 0 as a
// writable location. Calling Malloc on an uninitialized pool is a
// contract violation and panics.
func (p *Pool) Malloc(size uint32) (Offset, error) {
	if !p.initted {
		panic("mem: Malloc before Init")
	}
	if size == 0 {
		return 0, nil
	}
	if !p.mu.TryLock() {
		return 0, ErrBusy
	}
	defer p.mu.Unlock()

	want := roundUp(size)
	if want < size {
		// The round-up wrapped; nothing can satisfy this.
		p.log.Error("no free block large enough", "size", size)
		return 0, ErrNoSpace
	}

	// Best fit: smallest free block that still fits, first one wins ties.
	best := nilIdx
	bestSize := ^uint32(0)
	for idx := p.head; idx != nilIdx; idx = p.blocks[idx].next {
		b := &p.blocks[idx]
		if !b.inuse && b.size >= want && b.size < bestSize {
			best = idx
			bestSize = b.size
		}
	}
	if best == nilIdx {
		p.log.Error("no free block large enough", "size", want)
		return 0, ErrNoSpace
	}

	if p.blocks[best].size == want {
		b := &p.blocks[best]
		b.inuse = true
		p.stats.allocs++
		p.log.Debug("allocated exact fit", "base", b.base, "size", b.size)
		return b.base, nil
	}

	// Split: the allocation keeps the head of the block, a new free
	// record covers the tail.
	rest := p.newRecord()
	if rest == nilIdx {
		p.log.Error("block records exhausted", "size", want)
		return 0, ErrNoRecords
	}
	b := &p.blocks[best] // re-take; newRecord may have grown the arena
	p.blocks[rest] = block{
		base: b.base + want,
		size: b.size - want,
		next: b.next,
		prev: best,
	}
	if b.next != nilIdx {
		p.blocks[b.next].prev = rest
	}
	b.next = rest
	b.size = want
	b.inuse = true
	p.stats.allocs++
	p.stats.splits++

	p.log.Debug("allocated split block",
		"base", b.base, "size", want,
		"left", p.blocks[rest].size, "at", p.blocks[rest].base)
	return b.base, nil
}

// Free releases the block whose base is exactly offset and coalesces it
// with free neighbors. Free(0) is a no-op. An offset that is not a
// tracked base is logged and reported as ErrNotFound with no state
// change. Calling Free on an uninitialized pool is a contract violation
// and panics.
func (p *Pool) Free(offset Offset) error {
	if !p.initted {
		panic("mem: Free before Init")
	}
	if offset == 0 {
		return nil
	}
	if !p.mu.TryLock() {
		return ErrBusy
	}
	defer p.mu.Unlock()

	cur := nilIdx
	for idx := p.head; idx != nilIdx; idx = p.blocks[idx].next {
		if p.blocks[idx].base == offset {
			cur = idx
			break
		}
	}
	if cur == nilIdx {
		p.log.Error("free of unknown block", "offset", offset)
		return ErrNotFound
	}

	b := &p.blocks[cur]
	b.inuse = false
	p.stats.frees++
	p.log.Debug("freed block", "base", b.base, "size", b.size)

	// Merge into a free predecessor, then continue from it.
	if prev := b.prev; prev != nilIdx && !p.blocks[prev].inuse {
		pb := &p.blocks[prev]
		p.log.Debug("coalescing with previous block", "base", pb.base)
		pb.size += b.size
		pb.next = b.next
		if b.next != nilIdx {
			p.blocks[b.next].prev = prev
		}
		p.releaseRecord(cur)
		cur = prev
		b = pb
		p.stats.coalesces++
	}

	// Absorb a free successor.
	if next := b.next; next != nilIdx && !p.blocks[next].inuse {
		nb := &p.blocks[next]
		p.log.Debug("coalescing with next block", "base", nb.base)
		b.size += nb.size
		b.next = nb.next
		if nb.next != nilIdx {
			p.blocks[nb.next].prev = cur
		}
		p.releaseRecord(next)
		p.stats.coalesces++
	}
	return nil
}

// Available reports the size of the largest free block. It returns 0
// when the pool is uninitialized or the lock is contended; callers
// cannot distinguish those from "no space", which is the documented
// trade-off of this capacity probe.
func (p *Pool) Available() uint32 {
	if !p.initted {
		return 0
	}
	if !p.mu.TryLock() {
		return 0
	}
	defer p.mu.Unlock()

	var largest uint32
	for idx := p.head; idx != nilIdx; idx = p.blocks[idx].next {
		b := &p.blocks[idx]
		if !b.inuse && b.size > largest {
			largest = b.size
		}
	}
	return largest
}

// Stats returns a snapshot of pool aggregates and the operation counters
// accumulated since the last Init. The zero Stats is returned when the
// pool is uninitialized or the lock is contended.
func (p *Pool) Stats() Stats {
	var s Stats
	if !p.initted {
		return s
	}
	if !p.mu.TryLock() {
		return s
	}
	defer p.mu.Unlock()

	s.Allocs = p.stats.allocs
	s.Frees = p.stats.frees
	s.Splits = p.stats.splits
	s.Coalesces = p.stats.coalesces
	for idx := p.head; idx != nilIdx; idx = p.blocks[idx].next {
		b := &p.blocks[idx]
		s.Blocks++
		if b.inuse {
			s.UsedBlocks++
			s.TotalUsed += b.size
		} else {
			s.FreeBlocks++
			s.TotalFree += b.size
			if b.size > s.LargestFree {
				s.LargestFree = b.size
			}
		}
	}
	return s
}

// Blocks returns an address-ordered snapshot of every tracked block, or
// nil when the pool is uninitialized or the lock is contended.
func (p *Pool) Blocks() []BlockInfo {
	if !p.initted {
		return nil
	}
	if !p.mu.TryLock() {
		return nil
	}
	defer p.mu.Unlock()

	out := make([]BlockInfo, 0, len(p.blocks)-len(p.slots))
	for idx := p.head; idx != nilIdx; idx = p.blocks[idx].next {
		b := &p.blocks[idx]
		out = append(out, BlockInfo{Base: b.base, Size: b.size, InUse: b.inuse})
	}
	return out
}
