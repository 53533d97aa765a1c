// Package region provides byte backing for sound RAM images.
//
// # Overview
//
// The allocator in snd/mem deals purely in offsets; it never touches
// bytes. A Region supplies the 2 MiB (or smaller) byte array those
// offsets index, so tools can assemble real RAM images: stage sample
// data at allocated offsets, mark what changed, and sync it out.
//
// Two implementations ship:
//
//   - Buffer: plain in-memory backing for tests and scratch work.
//     Dirty tracking and Sync are no-ops.
//   - Image: file-backed. On Linux and macOS the file is mapped
//     read-write and Sync msyncs only the dirty page ranges; elsewhere
//     the bytes live on the heap and Sync writes dirty ranges back
//     with pwrite.
//
// # Dirty Tracking
//
// MarkDirty is cheap (an append) and may be called per store. Ranges
// are page-aligned, sorted, and merged only when Sync runs, so heavy
// write bursts do not pay coalescing costs up front.
package region
