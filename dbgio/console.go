package dbgio

import (
	"fmt"
	"io"
	"sync"
)

// printfBufSize caps the scratch buffer Printf formats into. Longer
// messages are truncated, never split across writes.
const printfBufSize = 1024

// Console multiplexes debug I/O across a fixed, ordered set of backend
// handlers. At most one handler is active; an enabled flag gates whether
// I/O reaches it at all.
//
// The console performs no locking of its own: selection and I/O are
// expected to happen from one goroutine at a time, the way a kernel
// debug channel is driven. The one exception is Printf, whose scratch
// buffers are pooled per call and safe to use concurrently.
type Console struct {
	handlers []Handler
	active   Handler
	enabled  bool
	scratch  sync.Pool
}

var (
	_ io.Reader       = (*Console)(nil)
	_ io.Writer       = (*Console)(nil)
	_ io.ByteWriter   = (*Console)(nil)
	_ io.StringWriter = (*Console)(nil)
)

// NewConsole builds a console over the given handlers. Order matters:
// it is the auto-detection priority used by Init. The console starts
// with no active handler and disabled.
func NewConsole(handlers ...Handler) *Console {
	c := &Console{handlers: handlers}
	c.scratch.New = func() any {
		b := make([]byte, 0, printfBufSize)
		return &b
	}
	return c
}

// Select activates the named handler. The handler's Init runs first;
// if it fails, or no handler has that name, Select reports ErrNoDevice
// and the previous selection stays in place. On success the previous
// handler is replaced without being shut down, and the enabled flag is
// left as it was.
func (c *Console) Select(name string) error {
	for _, h := range c.handlers {
		if h.Name() != name {
			continue
		}
		if err := h.Init(); err != nil {
			return ErrNoDevice
		}
		c.active = h
		return nil
	}
	return ErrNoDevice
}

// Init auto-detects a backend: the first handler in registry order that
// both detects positively and initializes successfully becomes active,
// and the console is enabled. A candidate that detects but fails Init is
// discarded and the scan continues. If nothing works, the console is
// left with no selection and Init reports ErrNoDevice.
func (c *Console) Init() error {
	for _, h := range c.handlers {
		if !h.Detect() {
			continue
		}
		c.active = h
		if err := h.Init(); err != nil {
			c.active = nil
			continue
		}
		c.Enable()
		return nil
	}
	return ErrNoDevice
}

// Device returns the active handler's name, or false when none is
// selected.
func (c *Console) Device() (string, bool) {
	if c.active == nil {
		return "", false
	}
	return c.active.Name(), true
}

// Enable allows I/O to reach the active handler. It does not select
// one; enabling an empty console arms the contract-violation panic in
// the I/O methods.
func (c *Console) Enable() { c.enabled = true }

// Disable gates all I/O off without touching the selection.
func (c *Console) Disable() { c.enabled = false }

// Enabled reports the gate state.
func (c *Console) Enabled() bool { return c.enabled }

// forward applies the enabled gate and returns the handler I/O goes to.
func (c *Console) forward() (Handler, error) {
	if !c.enabled {
		return nil, ErrDisabled
	}
	if c.active == nil {
		panic("dbgio: console enabled with no handler selected")
	}
	return c.active, nil
}

// SetIRQUsage forwards the input-path mode to the active handler.
func (c *Console) SetIRQUsage(m Mode) error {
	h, err := c.forward()
	if err != nil {
		return err
	}
	return h.SetIRQUsage(m)
}

// ReadByte returns the next input byte from the active handler.
func (c *Console) ReadByte() (byte, error) {
	h, err := c.forward()
	if err != nil {
		return 0, err
	}
	return h.ReadByte()
}

// WriteByte emits one untranslated byte.
func (c *Console) WriteByte(b byte) error {
	h, err := c.forward()
	if err != nil {
		return err
	}
	return h.WriteByte(b)
}

// Flush pushes buffered output to the device.
func (c *Console) Flush() error {
	h, err := c.forward()
	if err != nil {
		return err
	}
	return h.Flush()
}

// Write emits p without translation.
func (c *Console) Write(p []byte) (int, error) {
	h, err := c.forward()
	if err != nil {
		return 0, err
	}
	return h.WriteBuffer(p, false)
}

// WriteTranslated emits p with the handler's newline/charset translation.
func (c *Console) WriteTranslated(p []byte) (int, error) {
	h, err := c.forward()
	if err != nil {
		return 0, err
	}
	return h.WriteBuffer(p, true)
}

// Read fills p with immediately available input.
func (c *Console) Read(p []byte) (int, error) {
	h, err := c.forward()
	if err != nil {
		return 0, err
	}
	return h.ReadBuffer(p)
}

// WriteString emits s through the translating write.
func (c *Console) WriteString(s string) (int, error) {
	return c.WriteTranslated([]byte(s))
}

// Translated returns an io.Writer view of the console that routes
// through WriteTranslated. Libraries that only take a plain Writer can
// feed a raw-mode terminal through it without stair-stepped lines.
func (c *Console) Translated() io.Writer { return translatedWriter{c} }

type translatedWriter struct{ c *Console }

func (w translatedWriter) Write(p []byte) (int, error) { return w.c.WriteTranslated(p) }

// Printf formats into a pooled scratch buffer and emits the result
// through the translating write. Output is truncated at 1 KiB. The
// returned count is what the handler consumed after truncation.
func (c *Console) Printf(format string, a ...any) (int, error) {
	bp := c.scratch.Get().(*[]byte)
	defer func() {
		*bp = (*bp)[:0]
		c.scratch.Put(bp)
	}()

	buf := fmt.Appendf((*bp)[:0], format, a...)
	*bp = buf
	if len(buf) > printfBufSize {
		buf = buf[:printfBufSize]
	}
	return c.WriteTranslated(buf)
}
