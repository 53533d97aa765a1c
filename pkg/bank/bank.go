package bank

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/joshuapare/aicakit/snd/mem"
	"github.com/joshuapare/aicakit/snd/region"
	"github.com/joshuapare/aicakit/snd/sample"
)

var (
	// ErrDuplicate indicates an Add with a name the bank already holds.
	ErrDuplicate = errors.New("bank: duplicate sample name")

	// ErrUnknown indicates a lookup or remove for a name the bank does
	// not hold.
	ErrUnknown = errors.New("bank: no such sample")
)

// DefaultReserve keeps the low 64 KiB out of sample placement, the
// area the driver binary and channel registers occupy on hardware.
const DefaultReserve = 0x10000

// Options tunes bank construction. The zero value (or nil) means the
// default reserve and default allocator settings.
type Options struct {
	// Reserve is how much low RAM to keep away from samples. Zero
	// takes DefaultReserve.
	Reserve uint32

	// Pool overrides allocator tuning. Its RegionSize is ignored; the
	// pool is always sized to the backing region.
	Pool *mem.Config
}

// Entry describes one placed sample.
type Entry struct {
	Name string

	// Offset is where the payload starts in the region.
	Offset mem.Offset

	// Size is the RAM footprint, padded to the allocation quantum.
	Size uint32

	// DataLen is the payload length before padding.
	DataLen uint32

	Format   sample.Format
	Rate     int
	Channels int
}

// Bank places samples into a region and remembers where they went. It
// borrows the region; closing the bank syncs but does not close it.
//
// Not safe for concurrent use.
type Bank struct {
	region  region.Region
	pool    *mem.Pool
	entries map[string]Entry
}

// New builds a bank over r. The allocator is sized to the region and
// initialized with the configured reserve.
func New(r region.Region, opts *Options) (*Bank, error) {
	reserve := uint32(DefaultReserve)
	var cfg mem.Config
	if opts != nil {
		if opts.Reserve != 0 {
			reserve = opts.Reserve
		}
		if opts.Pool != nil {
			cfg = *opts.Pool
		}
	}
	cfg.RegionSize = r.Size()

	b := &Bank{
		region:  r,
		pool:    mem.New(&cfg),
		entries: make(map[string]Entry),
	}
	if err := b.pool.Init(reserve); err != nil {
		return nil, err
	}
	return b, nil
}

// Add places a sample. The payload is copied into the region at a
// best-fit offset, the padding tail is zeroed, and the touched range
// is marked dirty.
func (b *Bank) Add(s *sample.Sample) (Entry, error) {
	if _, exists := b.entries[s.Name]; exists {
		return Entry{}, fmt.Errorf("%w: %q", ErrDuplicate, s.Name)
	}
	size := s.PaddedSize()
	if size == 0 {
		return Entry{}, fmt.Errorf("bank: %q: empty sample", s.Name)
	}

	off, err := b.pool.Malloc(size)
	if err != nil {
		return Entry{}, err
	}

	dst := b.region.Bytes()[off : off+size]
	n := copy(dst, s.Data)
	clear(dst[n:])
	b.region.MarkDirty(off, size)

	e := Entry{
		Name:     s.Name,
		Offset:   off,
		Size:     size,
		DataLen:  uint32(len(s.Data)),
		Format:   s.Format,
		Rate:     s.Rate,
		Channels: s.Channels,
	}
	b.entries[s.Name] = e
	return e, nil
}

// Remove frees a sample's RAM and forgets it. The bytes stay in the
// region until something else is placed over them.
func (b *Bank) Remove(name string) error {
	e, ok := b.entries[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	if err := b.pool.Free(e.Offset); err != nil {
		return err
	}
	delete(b.entries, name)
	return nil
}

// Entry looks up a placed sample by name.
func (b *Bank) Entry(name string) (Entry, bool) {
	e, ok := b.entries[name]
	return e, ok
}

// Entries returns all placed samples in offset order.
func (b *Bank) Entries() []Entry {
	out := make([]Entry, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

// Available returns the largest sample the bank could still place.
func (b *Bank) Available() uint32 { return b.pool.Available() }

// Stats exposes the allocator's view of the region.
func (b *Bank) Stats() mem.Stats { return b.pool.Stats() }

// Close syncs the region and shuts the allocator down. The region
// itself stays open; its owner closes it.
func (b *Bank) Close(ctx context.Context) error {
	err := b.region.Sync(ctx)
	b.pool.Shutdown()
	return err
}
