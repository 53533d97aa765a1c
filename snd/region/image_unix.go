//go:build linux || darwin

package region

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/joshuapare/aicakit/snd/mem"
)

// Image is a file-backed Region. The file is mapped read-write and
// shared, so stores into Bytes land in the page cache immediately and
// Sync only has to push dirty pages out.
type Image struct {
	f     *os.File
	data  []byte
	size  uint32
	dirty *tracker
}

var _ Region = (*Image)(nil)

// Create makes (or truncates) an image file of exactly size bytes and
// maps it. The size must be a nonzero multiple of the allocation
// quantum so the file can back a full allocator region.
func Create(path string, size uint32) (*Image, error) {
	if size == 0 || size%mem.Quantum != 0 {
		return nil, fmt.Errorf("region: image size %d not a multiple of %d", size, mem.Quantum)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(int64(size)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("region: size image: %w", err)
	}
	return mapImage(f, size)
}

// Open maps an existing image read-write. The file size defines the
// region size.
func Open(path string) (*Image, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	sz := st.Size()
	if sz == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("region: empty image file: %s", path)
	}
	if sz > int64(^uint32(0)) {
		_ = f.Close()
		return nil, fmt.Errorf("region: image too large: %d bytes", sz)
	}
	if sz%mem.Quantum != 0 {
		_ = f.Close()
		return nil, fmt.Errorf("region: image size %d not a multiple of %d", sz, mem.Quantum)
	}
	return mapImage(f, uint32(sz))
}

func mapImage(f *os.File, size uint32) (*Image, error) {
	data, err := syscall.Mmap(
		int(f.Fd()),
		0,
		int(size),
		syscall.PROT_READ|syscall.PROT_WRITE,
		syscall.MAP_SHARED,
	)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("region: mmap failed: %w", err)
	}
	return &Image{f: f, data: data, size: size, dirty: newTracker()}, nil
}

func (im *Image) Bytes() []byte { return im.data }

func (im *Image) Size() uint32 { return im.size }

// MarkDirty queues [off, off+n) for the next Sync. Very fast, just an
// append; call it per store if convenient.
func (im *Image) MarkDirty(off, n uint32) {
	im.dirty.add(int64(off), int64(n))
}

// Sync flushes queued dirty ranges to the file, then syncs the
// descriptor so the data is reachable after a crash.
func (im *Image) Sync(ctx context.Context) error {
	if im.data == nil {
		return ErrClosed
	}
	if im.dirty.empty() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := im.flushSpans(ctx, im.dirty.coalesce()); err != nil {
		return err
	}
	im.dirty.reset()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fdatasync(int(im.f.Fd()))
}

// Close syncs pending dirty ranges, unmaps, and closes the file. Safe
// to call twice.
func (im *Image) Close() error {
	if im.data == nil && im.f == nil {
		return nil
	}
	var syncErr error
	if im.data != nil {
		syncErr = im.Sync(context.Background())
		_ = syscall.Munmap(im.data)
		im.data = nil
	}
	var err error
	if im.f != nil {
		err = im.f.Close()
		im.f = nil
	}
	if syncErr != nil {
		return syncErr
	}
	return err
}
