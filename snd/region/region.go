package region

import (
	"context"
	"errors"
)

// ErrClosed indicates an operation on a region whose backing has been
// released.
var ErrClosed = errors.New("region: closed")

// Region is a mutable byte image of sound RAM.
//
// Bytes exposes the live backing slice; writers stage data directly
// into it and then report what they touched via MarkDirty. Sync makes
// the dirty ranges durable for file-backed regions and is a no-op for
// memory-only ones.
type Region interface {
	// Bytes returns the live backing array. The slice is invalidated
	// by Close.
	Bytes() []byte

	// Size returns the region length in bytes.
	Size() uint32

	// MarkDirty queues [off, off+n) for the next Sync. Out-of-range
	// offsets are clipped at Sync time, not here.
	MarkDirty(off, n uint32)

	// Sync flushes queued dirty ranges. A cancelled context aborts
	// between ranges; already-flushed ranges stay flushed.
	Sync(ctx context.Context) error

	// Close releases the backing. File-backed regions sync first.
	Close() error
}

// Buffer is a memory-only Region. Dirty tracking and Sync do nothing;
// it exists so allocator-driven tooling can run without a file.
type Buffer struct {
	data []byte
}

var _ Region = (*Buffer)(nil)

// NewBuffer returns a zeroed in-memory region of the given size.
func NewBuffer(size uint32) *Buffer {
	return &Buffer{data: make([]byte, size)}
}

func (b *Buffer) Bytes() []byte { return b.data }

func (b *Buffer) Size() uint32 { return uint32(len(b.data)) }

func (b *Buffer) MarkDirty(off, n uint32) {}

func (b *Buffer) Sync(ctx context.Context) error {
	if b.data == nil {
		return ErrClosed
	}
	return nil
}

func (b *Buffer) Close() error {
	b.data = nil
	return nil
}
