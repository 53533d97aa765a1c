//go:build darwin

package region

import (
	"context"

	"golang.org/x/sys/unix"
)

// flushSpans msyncs the whole mapping. Darwin's msync wants the
// original mmap address, so per-span sub-slice flushes are not safe.
// The kernel only writes pages that are actually dirty anyway.
func (im *Image) flushSpans(ctx context.Context, _ []span) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return unix.Msync(im.data, unix.MS_SYNC)
}

// fdatasync falls back to fsync; darwin has no fdatasync.
func fdatasync(fd int) error {
	return unix.Fsync(fd)
}
