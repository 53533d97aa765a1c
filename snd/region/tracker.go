package region

import "sort"

const (
	// defaultRangeCapacity pre-sizes the range list so bursts of small
	// marks do not allocate.
	defaultRangeCapacity = 64

	// standardPageSize is the flush granularity (4KB OS pages).
	standardPageSize = 4096
)

// span is a dirty byte range, absolute offsets into the region.
type span struct {
	off int64
	n   int64
}

// tracker accumulates dirty spans for deferred flushing.
//
// Not thread-safe; a region is driven from one goroutine at a time.
type tracker struct {
	spans    []span
	pageSize int64
}

func newTracker() *tracker {
	return &tracker{
		spans:    make([]span, 0, defaultRangeCapacity),
		pageSize: standardPageSize,
	}
}

// add records a dirty span. It only appends; alignment and merging are
// deferred to coalesce.
func (t *tracker) add(off, n int64) {
	if n <= 0 {
		return
	}
	t.spans = append(t.spans, span{off: off, n: n})
}

func (t *tracker) empty() bool { return len(t.spans) == 0 }

func (t *tracker) reset() { t.spans = t.spans[:0] }

// coalesce page-aligns all spans, sorts them, and merges overlapping or
// adjacent ones into a fresh slice.
func (t *tracker) coalesce() []span {
	if len(t.spans) == 0 {
		return nil
	}

	aligned := make([]span, len(t.spans))
	for i, s := range t.spans {
		start := (s.off / t.pageSize) * t.pageSize
		end := s.off + s.n
		if end%t.pageSize != 0 {
			end = ((end / t.pageSize) + 1) * t.pageSize
		}
		aligned[i] = span{off: start, n: end - start}
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].off < aligned[j].off
	})

	merged := make([]span, 0, len(aligned))
	current := aligned[0]
	for i := 1; i < len(aligned); i++ {
		next := aligned[i]
		if next.off <= current.off+current.n {
			end := current.off + current.n
			if nextEnd := next.off + next.n; nextEnd > end {
				end = nextEnd
			}
			current.n = end - current.off
		} else {
			merged = append(merged, current)
			current = next
		}
	}
	merged = append(merged, current)

	return merged
}
