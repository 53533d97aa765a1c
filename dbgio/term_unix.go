//go:build linux || darwin

package dbgio

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/joshuapare/aicakit/internal/xlat"
)

// Term drives an interactive terminal in raw mode. It detects only
// when both endpoints are real terminals, puts the input side into
// raw non-blocking mode on Init, and restores it on Shutdown.
//
// In ModeIRQ a background goroutine polls the input and queues bytes
// so ReadByte never touches the file descriptor directly. Incoming
// carriage returns are mapped to line feeds and DEL to backspace,
// which is what raw mode terminals emit for Enter and Backspace.
type Term struct {
	in  *os.File
	out *os.File

	mu       sync.Mutex
	oldState *term.State
	mode     Mode
	ch       chan byte
	stop     chan struct{}
	done     chan struct{}
}

var _ Handler = (*Term)(nil)

const termQueueDepth = 64

// NewTerm returns a handler bound to the process's stdin and stdout.
func NewTerm() *Term {
	return &Term{in: os.Stdin, out: os.Stdout}
}

func (t *Term) Name() string { return "term" }

func (t *Term) Detect() bool {
	return term.IsTerminal(int(t.in.Fd())) && term.IsTerminal(int(t.out.Fd()))
}

func (t *Term) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	fd := int(t.in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("term: raw mode: %w", err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		term.Restore(fd, state)
		return fmt.Errorf("term: nonblock: %w", err)
	}
	t.oldState = state
	return nil
}

func (t *Term) Shutdown() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopReaderLocked()
	if t.oldState == nil {
		return nil
	}
	fd := int(t.in.Fd())
	unix.SetNonblock(fd, false)
	err := term.Restore(fd, t.oldState)
	t.oldState = nil
	if err != nil {
		return fmt.Errorf("term: restore: %w", err)
	}
	return nil
}

// SetIRQUsage switches between direct polling and the queued reader
// goroutine. Switching to ModePolled stops the reader; queued bytes
// that were never consumed are discarded with it.
func (t *Term) SetIRQUsage(mode Mode) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if mode == t.mode {
		return nil
	}
	if mode == ModeIRQ {
		t.ch = make(chan byte, termQueueDepth)
		t.stop = make(chan struct{})
		t.done = make(chan struct{})
		go t.readLoop(t.stop, t.done, t.ch)
	} else {
		t.stopReaderLocked()
	}
	t.mode = mode
	return nil
}

func (t *Term) stopReaderLocked() {
	if t.stop == nil {
		return
	}
	close(t.stop)
	<-t.done
	t.stop = nil
	t.done = nil
	t.ch = nil
	t.mode = ModePolled
}

func (t *Term) readLoop(stop, done chan struct{}, ch chan byte) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		default:
		}
		c, err := t.pollByte()
		if err != nil {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		select {
		case ch <- c:
		default:
			// queue full, drop
		}
	}
}

// pollByte performs one non-blocking read straight off the descriptor.
func (t *Term) pollByte() (byte, error) {
	var buf [1]byte
	n, err := unix.Read(int(t.in.Fd()), buf[:])
	if n == 1 {
		return mapTermInput(buf[0]), nil
	}
	if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
		return 0, ErrNoData
	}
	if err != nil {
		return 0, fmt.Errorf("term: read: %w", err)
	}
	return 0, ErrNoData
}

// mapTermInput normalizes raw mode key bytes. Enter arrives as CR and
// Backspace as DEL.
func mapTermInput(c byte) byte {
	switch c {
	case '\r':
		return '\n'
	case 0x7F:
		return 0x08
	}
	return c
}

func (t *Term) ReadByte() (byte, error) {
	t.mu.Lock()
	mode, ch := t.mode, t.ch
	t.mu.Unlock()

	if mode == ModeIRQ {
		select {
		case c := <-ch:
			return c, nil
		default:
			return 0, ErrNoData
		}
	}
	return t.pollByte()
}

func (t *Term) WriteByte(c byte) error {
	_, err := t.out.Write([]byte{c})
	return err
}

// Flush is a no-op; writes go to the terminal unbuffered.
func (t *Term) Flush() error { return nil }

func (t *Term) WriteBuffer(p []byte, translate bool) (int, error) {
	data := p
	if translate {
		data = xlat.Bytes(xlat.CRLF(), p)
	}
	if _, err := t.out.Write(data); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (t *Term) ReadBuffer(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		c, err := t.ReadByte()
		if err != nil {
			break
		}
		p[n] = c
		n++
	}
	if n == 0 {
		return 0, ErrNoData
	}
	return n, nil
}
