//go:build linux

package region

import (
	"context"

	"golang.org/x/sys/unix"
)

// flushSpans msyncs each coalesced span. Sub-slices are fine here: the
// kernel only needs the start address page-aligned, and coalesce
// guarantees that.
func (im *Image) flushSpans(ctx context.Context, spans []span) error {
	for _, s := range spans {
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
		if err := unix.Msync(im.data[start:end], unix.MS_SYNC); err != nil {
			return err
		}
	}
	return nil
}

// fdatasync is enough on Linux; file length never changes after Create.
func fdatasync(fd int) error {
	return unix.Fdatasync(fd)
}
