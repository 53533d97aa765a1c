package dbgio

import (
	"sync"

	"github.com/joshuapare/aicakit/internal/xlat"
)

// Buffer is an in-memory Handler. Output accumulates in an internal
// byte slice and input is drawn from bytes fed in by the test or host
// program. It always detects, so it doubles as a capture sink when a
// real device is absent.
type Buffer struct {
	mu  sync.Mutex
	in  []byte
	out []byte
}

var _ Handler = (*Buffer)(nil)

// NewBuffer returns an empty in-memory handler.
func NewBuffer() *Buffer { return &Buffer{} }

func (b *Buffer) Name() string           { return "buffer" }
func (b *Buffer) Detect() bool           { return true }
func (b *Buffer) Init() error            { return nil }
func (b *Buffer) Shutdown() error        { return nil }
func (b *Buffer) SetIRQUsage(Mode) error { return nil }

// FeedInput appends p to the pending input stream.
func (b *Buffer) FeedInput(p []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.in = append(b.in, p...)
}

// Output returns a copy of everything written so far.
func (b *Buffer) Output() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]byte, len(b.out))
	copy(out, b.out)
	return out
}

// Drain returns the accumulated output and resets the sink.
func (b *Buffer) Drain() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.out
	b.out = nil
	return out
}

func (b *Buffer) ReadByte() (byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.in) == 0 {
		return 0, ErrNoData
	}
	c := b.in[0]
	b.in = b.in[1:]
	return c, nil
}

func (b *Buffer) WriteByte(c byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out = append(b.out, c)
	return nil
}

func (b *Buffer) Flush() error { return nil }

// WriteBuffer appends p to the output sink. With translate set the
// newline expansion runs first; the returned count always reflects the
// bytes consumed from p, not the expanded length.
func (b *Buffer) WriteBuffer(p []byte, translate bool) (int, error) {
	data := p
	if translate {
		data = xlat.Bytes(xlat.CRLF(), p)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out = append(b.out, data...)
	return len(p), nil
}

func (b *Buffer) ReadBuffer(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.in) == 0 {
		return 0, ErrNoData
	}
	n := copy(p, b.in)
	b.in = b.in[n:]
	return n, nil
}
