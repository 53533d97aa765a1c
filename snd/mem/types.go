package mem

import "log/slog"

// Offset is a byte offset into sound RAM. Sound RAM is not mapped into
// the host address space, so offsets are the only currency the allocator
// deals in; they are never convertible to host pointers.
type Offset = uint32

const (
	// RegionSize is the size of the AICA sound RAM region.
	RegionSize = 2 * 1024 * 1024

	// Quantum is the allocation alignment. Every base and size the pool
	// tracks is a multiple of this.
	Quantum = 32
)

// Config tunes a Pool. The zero value (or a nil pointer) selects the
// defaults, which describe the real hardware region.
type Config struct {
	// RegionSize is the managed region's size in bytes. Values that are
	// not a multiple of Quantum are rounded down. Defaults to RegionSize.
	RegionSize uint32

	// MaxBlocks caps the block record arena. Defaults to RegionSize/Quantum,
	// the most records the region could ever need. Lower values make
	// record exhaustion reachable, which is mainly useful in tests.
	MaxBlocks int

	// Logger receives allocation diagnostics. Defaults to a discard
	// logger. Exhaustion and unknown frees log at error level, the
	// rest at debug.
	Logger *slog.Logger
}

// BlockInfo is a read-only snapshot row describing one tracked block.
type BlockInfo struct {
	Base  Offset
	Size  uint32
	InUse bool
}

// Stats aggregates pool state and per-initialization operation counters.
type Stats struct {
	Blocks      int
	FreeBlocks  int
	UsedBlocks  int
	LargestFree uint32
	TotalFree   uint32
	TotalUsed   uint32

	Allocs    uint64
	Frees     uint64
	Splits    uint64
	Coalesces uint64
}

// counters tracks operation totals since the last Init.
type counters struct {
	allocs    uint64
	frees     uint64
	splits    uint64
	coalesces uint64
}
