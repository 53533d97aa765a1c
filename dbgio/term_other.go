//go:build !linux && !darwin

package dbgio

// Term requires raw terminal control, which is only wired up for
// Unix-like platforms. Elsewhere it never detects and refuses to
// initialize, so auto-detection skips past it.
type Term struct{}

var _ Handler = (*Term)(nil)

// NewTerm returns the non-functional placeholder for this platform.
func NewTerm() *Term { return &Term{} }

func (t *Term) Name() string           { return "term" }
func (t *Term) Detect() bool           { return false }
func (t *Term) Init() error            { return ErrNoDevice }
func (t *Term) Shutdown() error        { return nil }
func (t *Term) SetIRQUsage(Mode) error { return nil }

func (t *Term) ReadByte() (byte, error) { return 0, ErrNoData }
func (t *Term) WriteByte(byte) error    { return ErrNoDevice }
func (t *Term) Flush() error            { return nil }

func (t *Term) WriteBuffer([]byte, bool) (int, error) { return 0, ErrNoDevice }
func (t *Term) ReadBuffer([]byte) (int, error)        { return 0, ErrNoData }
