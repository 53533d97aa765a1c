// Package mem provides best-fit allocation of sound RAM offsets.
//
// # Overview
//
// This package manages the AICA sound processor's 2MB RAM region. The
// region is not addressable by the host CPU, so the allocator never
// hands out pointers: every allocation is an opaque uint32 offset into
// sound RAM, and all bookkeeping lives in host memory. Uploading actual
// sample data to those offsets is the job of the snd/region package.
//
// The allocator is a deliberately simple best-fit design. It keeps an
// address-ordered sequence of block records and scans it linearly on
// every operation. That is the right trade-off for this workload: a
// handful of large, long-lived buffers (driver image, sample banks,
// stream buffers), not thousands of small objects.
//
// # Allocation Policy
//
//   - Sizes and the reserve offset are rounded up to the 32-byte quantum.
//   - Malloc picks the smallest free block that fits; ties go to the
//     block encountered first in address order.
//   - A larger block is split: the allocation keeps the head, a new free
//     record covers the tail.
//   - Free eagerly coalesces with both neighbors, so no two adjacent
//     free blocks ever persist between calls.
//   - Available reports the largest free block, not the total. There is
//     no defragmentation, so "largest contiguous extent" is the only
//     honest answer to "will an allocation of size X succeed".
//
// # Usage
//
//	p := mem.New(nil)
//	if err := p.Init(0x10000); err != nil {
//	    return err
//	}
//	defer p.Shutdown()
//
//	off, err := p.Malloc(64 * 1024)
//	if err != nil {
//	    return err
//	}
//	// ... upload data at off via snd/region ...
//	if err := p.Free(off); err != nil {
//	    return err
//	}
//
// # Handles
//
// Offset 0 is never a valid allocation and doubles as the degenerate
// result of Malloc(0). Free(0) is an accepted no-op, mirroring free(NULL)
// semantics.
//
// # Concurrency
//
// All pool operations acquire an internal lock non-blockingly and fail
// fast with ErrBusy (or report zero, for Available) when it is
// contended. The lock is not reentrant; calling back into the pool from
// a path that already holds it is a caller bug. Init and Shutdown are
// lifecycle operations and must not race each other.
//
// # Related Packages
//
//   - github.com/joshuapare/aicakit/snd/region: byte backing for offsets
//   - github.com/joshuapare/aicakit/pkg/bank: high-level sample banks
package mem
