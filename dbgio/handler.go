package dbgio

// Mode selects how a handler sources its input.
type Mode int

const (
	// ModePolled reads the underlying device on demand from the caller.
	ModePolled Mode = iota

	// ModeIRQ arranges asynchronous delivery, a background reader feeding
	// an internal queue. This is the interrupt-driven receive path on
	// real hardware; handlers without an asynchronous story may treat it
	// as ModePolled.
	ModeIRQ
)

// Handler is the capability set a console backend implements. Handlers
// are registered with a Console in a fixed order that defines
// auto-detection priority.
//
// Read methods return ErrNoData when nothing is waiting; that is a
// retry signal, not a failure.
type Handler interface {
	// Name identifies the handler for Select.
	Name() string

	// Detect reports whether the backend is present and usable without
	// side effects. Auto-detection calls it before Init.
	Detect() bool

	// Init prepares the backend for I/O. It is called by Select and by
	// auto-detection, and may be called again after Shutdown.
	Init() error

	// Shutdown releases whatever Init acquired. The console never calls
	// it when switching handlers; owners of exclusive resources (raw
	// terminal state, file descriptors) expose it for explicit cleanup.
	Shutdown() error

	// SetIRQUsage switches the input path between polled and
	// asynchronous delivery.
	SetIRQUsage(m Mode) error

	// ReadByte returns the next input byte, or ErrNoData.
	ReadByte() (byte, error)

	// WriteByte emits one byte, untranslated.
	WriteByte(b byte) error

	// Flush pushes buffered output to the device.
	Flush() error

	// WriteBuffer emits p, applying the handler's newline/charset
	// translation when translate is set. The returned count refers to
	// consumed input bytes, not post-translation output bytes.
	WriteBuffer(p []byte, translate bool) (int, error)

	// ReadBuffer fills p with whatever input is immediately available,
	// or returns ErrNoData.
	ReadBuffer(p []byte) (int, error)
}
