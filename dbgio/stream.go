package dbgio

import (
	"bufio"
	"errors"
	"io"

	"github.com/joshuapare/aicakit/internal/xlat"
)

// Stream adapts an io.Writer (and optionally an io.Reader) into a
// Handler. Output is buffered, so callers that need bytes on the wire
// promptly should Flush. A nil reader is allowed; reads then report
// ErrNoData.
type Stream struct {
	w  io.Writer
	bw *bufio.Writer
	r  *bufio.Reader
}

var _ Handler = (*Stream)(nil)

// NewStream returns a handler writing to w and reading from r. Either
// may be nil, but a Stream with a nil writer fails detection and
// refuses to initialize.
func NewStream(w io.Writer, r io.Reader) *Stream {
	s := &Stream{w: w}
	if w != nil {
		s.bw = bufio.NewWriter(w)
	}
	if r != nil {
		s.r = bufio.NewReader(r)
	}
	return s
}

func (s *Stream) Name() string { return "stream" }
func (s *Stream) Detect() bool { return s.w != nil }

func (s *Stream) Init() error {
	if s.w == nil {
		return ErrNoDevice
	}
	return nil
}

func (s *Stream) Shutdown() error {
	if s.bw == nil {
		return nil
	}
	return s.bw.Flush()
}

func (s *Stream) SetIRQUsage(Mode) error { return nil }

func (s *Stream) ReadByte() (byte, error) {
	if s.r == nil {
		return 0, ErrNoData
	}
	c, err := s.r.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, ErrNoData
		}
		return 0, err
	}
	return c, nil
}

func (s *Stream) WriteByte(c byte) error {
	return s.bw.WriteByte(c)
}

func (s *Stream) Flush() error { return s.bw.Flush() }

func (s *Stream) WriteBuffer(p []byte, translate bool) (int, error) {
	data := p
	if translate {
		data = xlat.Bytes(xlat.CRLF(), p)
	}
	if _, err := s.bw.Write(data); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *Stream) ReadBuffer(p []byte) (int, error) {
	if s.r == nil {
		return 0, ErrNoData
	}
	n, err := s.r.Read(p)
	if n > 0 {
		return n, nil
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, ErrNoData
		}
		return 0, err
	}
	return 0, ErrNoData
}
