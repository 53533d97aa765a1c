// Package sample stages host audio files for placement in sound RAM.
//
// Staging means decode and byte-format conversion only. There is no
// resampling and no ADPCM encoding; compressed input must already be
// in the hardware's 4-bit format. Voices are mono, so multi-channel
// sources keep just their leading channel.
package sample

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joshuapare/aicakit/snd/mem"
)

// ErrBadDepth indicates a source file whose bit depth has no hardware
// sample format (anything other than 8 or 16 bits).
var ErrBadDepth = errors.New("sample: unsupported bit depth")

// DefaultRate is assumed for raw input when no rate is known. It is
// the hardware's output rate.
const DefaultRate = 44100

// Format is the in-RAM encoding of a staged sample.
type Format uint8

const (
	// FormatPCM16 is 16-bit little-endian signed PCM.
	FormatPCM16 Format = iota

	// FormatPCM8 is 8-bit signed PCM. Note signed: WAV stores 8-bit
	// audio unsigned, so loading converts.
	FormatPCM8

	// FormatADPCM4 is Yamaha 4-bit ADPCM, accepted pre-encoded only.
	FormatADPCM4
)

func (f Format) String() string {
	switch f {
	case FormatPCM16:
		return "pcm16"
	case FormatPCM8:
		return "pcm8"
	case FormatADPCM4:
		return "adpcm4"
	}
	return fmt.Sprintf("format(%d)", uint8(f))
}

// BitsPerSample returns the storage cost of one sample frame.
func (f Format) BitsPerSample() int {
	switch f {
	case FormatPCM8:
		return 8
	case FormatADPCM4:
		return 4
	}
	return 16
}

// Sample is mono audio ready to be copied into sound RAM.
type Sample struct {
	Name   string
	Format Format

	// Rate is the playback rate in Hz.
	Rate int

	// Channels records how many channels the source had. Data always
	// holds the leading channel only.
	Channels int

	Data []byte
}

// PaddedSize returns the RAM footprint: the data length rounded up to
// the allocation quantum.
func (s *Sample) PaddedSize() uint32 {
	n := uint32(len(s.Data))
	return (n + mem.Quantum - 1) &^ (mem.Quantum - 1)
}

// Duration returns the playback time at the sample's rate.
func (s *Sample) Duration() time.Duration {
	if s.Rate <= 0 || len(s.Data) == 0 {
		return 0
	}
	frames := len(s.Data) * 8 / s.Format.BitsPerSample()
	return time.Duration(float64(frames) / float64(s.Rate) * float64(time.Second))
}

// LoadRaw reads a file verbatim as sample data in the given format.
func LoadRaw(path string, f Format, rate int) (*Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Sample{
		Name:     baseName(path),
		Format:   f,
		Rate:     rate,
		Channels: 1,
		Data:     data,
	}, nil
}

// Load stages a file, picking the loader from the extension: .wav is
// decoded, anything else is taken as raw little-endian PCM16 at the
// default rate.
func Load(path string) (*Sample, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return LoadWAV(path)
	default:
		return LoadRaw(path, FormatPCM16, DefaultRate)
	}
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
