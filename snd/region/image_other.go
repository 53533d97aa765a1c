//go:build !linux && !darwin

package region

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joshuapare/aicakit/snd/mem"
)

// Image is a file-backed Region. On platforms without the mmap path
// the bytes live on the heap and Sync writes dirty spans back with
// pwrite.
type Image struct {
	f     *os.File
	data  []byte
	size  uint32
	dirty *tracker
}

var _ Region = (*Image)(nil)

// Create makes (or truncates) an image file of exactly size bytes. The
// size must be a nonzero multiple of the allocation quantum so the
// file can back a full allocator region.
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
	return &Image{f: f, data: make([]byte, size), size: size, dirty: newTracker()}, nil
}

// Open loads an existing image into memory. The file size defines the
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
	buf := make([]byte, sz)
	if _, err := io.ReadFull(f, buf); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Image{f: f, data: buf, size: uint32(sz), dirty: newTracker()}, nil
}

func (im *Image) Bytes() []byte { return im.data }

func (im *Image) Size() uint32 { return im.size }

// MarkDirty queues [off, off+n) for the next Sync.
func (im *Image) MarkDirty(off, n uint32) {
	im.dirty.add(int64(off), int64(n))
}

// Sync writes queued dirty spans back to the file and syncs it.
func (im *Image) Sync(ctx context.Context) error {
	if im.data == nil {
		return ErrClosed
	}
	if im.dirty.empty() {
		return nil
	}
	for _, s := range im.dirty.coalesce() {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := int(s.off)
		end := int(s.off + s.n)
		if start >= len(im.data) {
			continue
		}
		if end > len(im.data) {
			end = len(im.data)
		}
		if _, err := im.f.WriteAt(im.data[start:end], int64(start)); err != nil {
			return err
		}
	}
	im.dirty.reset()
	if err := ctx.Err(); err != nil {
		return err
	}
	return im.f.Sync()
}

// Close syncs pending dirty spans and closes the file. Safe to call
// twice.
func (im *Image) Close() error {
	if im.data == nil && im.f == nil {
		return nil
	}
	var syncErr error
	if im.data != nil {
		syncErr = im.Sync(context.Background())
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
