package sample

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// LoadWAV decodes a WAV file into a staged sample. 16-bit sources
// become FormatPCM16, 8-bit sources become FormatPCM8 with the
// unsigned-to-signed shift applied. Other depths fail with ErrBadDepth.
// Multi-channel files keep the leading channel only.
func LoadWAV(path string) (*Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("sample: %s: not a valid wav file", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("sample: wav: %w", err)
	}

	chans := int(dec.NumChans)
	if chans < 1 {
		chans = 1
	}
	frames := len(buf.Data) / chans

	s := &Sample{
		Name:     baseName(path),
		Rate:     int(dec.SampleRate),
		Channels: chans,
	}

	switch dec.BitDepth {
	case 16:
		s.Format = FormatPCM16
		s.Data = make([]byte, 0, frames*2)
		for i := 0; i < len(buf.Data); i += chans {
			v := int16(buf.Data[i])
			s.Data = append(s.Data, byte(v), byte(v>>8))
		}
	case 8:
		// WAV stores 8-bit audio unsigned; the hardware wants signed.
		s.Format = FormatPCM8
		s.Data = make([]byte, 0, frames)
		for i := 0; i < len(buf.Data); i += chans {
			s.Data = append(s.Data, byte(buf.Data[i]-128))
		}
	default:
		return nil, fmt.Errorf("sample: %s: %d-bit: %w", path, dec.BitDepth, ErrBadDepth)
	}

	return s, nil
}
