package dbgio

// nullHandler accepts and discards all output and never has input. It
// detects unconditionally, which makes it the fallback of last resort
// when placed at the end of a registry.
type nullHandler struct{}

var _ Handler = nullHandler{}

// Null returns the discard handler.
func Null() Handler { return nullHandler{} }

func (nullHandler) Name() string          { return "null" }
func (nullHandler) Detect() bool          { return true }
func (nullHandler) Init() error           { return nil }
func (nullHandler) Shutdown() error       { return nil }
func (nullHandler) SetIRQUsage(Mode) error { return nil }

func (nullHandler) ReadByte() (byte, error) { return 0, ErrNoData }
func (nullHandler) WriteByte(byte) error    { return nil }
func (nullHandler) Flush() error            { return nil }

func (nullHandler) WriteBuffer(p []byte, _ bool) (int, error) { return len(p), nil }
func (nullHandler) ReadBuffer([]byte) (int, error)            { return 0, ErrNoData }
