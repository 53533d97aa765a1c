package main

import (
	"path/filepath"
	"testing"

	"github.com/joshuapare/aicakit/snd/region"
)

// writeImageFixture builds a small RAM image with recognizable text at
// offset 64.
func writeImageFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.img")
	img, err := region.Create(path, 4096)
	if err != nil {
		t.Fatalf("failed to create image: %v", err)
	}
	copy(img.Bytes()[64:], []byte("AICA SOUND"))
	img.MarkDirty(64, 10)
	if err := img.Close(); err != nil {
		t.Fatalf("failed to close image: %v", err)
	}
	return path
}

func resetDumpFlags() {
	quiet = false
	verbose = false
	jsonOut = false
	dumpOffset = 0
	dumpLength = 256
}

func TestDumpCommand(t *testing.T) {
	tests := []struct {
		name        string
		offset      uint32
		length      uint32
		wantErr     bool
		wantJSON    bool
		wantContain []string
	}{
		{
			name:   "default window",
			length: 256,
			wantContain: []string{
				"[0x0, 0x100)",
				"41 49 43 41", // 'AICA' in hex
				"|AICA SOUND",
			},
		},
		{
			name:        "narrow window",
			offset:      64,
			length:      16,
			wantContain: []string{"[0x40, 0x50)", "AICA SOUND"},
		},
		{
			name:        "length clamps to image end",
			offset:      4064,
			length:      4096,
			wantContain: []string{"[0xfe0, 0x1000)"},
		},
		{
			name:        "json window",
			offset:      64,
			length:      16,
			wantJSON:    true,
			wantContain: []string{`"Offset": 64`, `"Length": 16`, `"Data"`},
		},
		{
			name:    "offset beyond end fails",
			offset:  8192,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetDumpFlags()
			jsonOut = tt.wantJSON
			dumpOffset = tt.offset
			if tt.length != 0 {
				dumpLength = tt.length
			}

			args := []string{writeImageFixture(t)}

			output, err := captureOutput(t, func() error {
				return runDump(args)
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("runDump() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestDump_MissingImageFails(t *testing.T) {
	resetDumpFlags()

	_, err := captureOutput(t, func() error {
		return runDump([]string{filepath.Join(t.TempDir(), "absent.img")})
	})

	if err == nil {
		t.Error("runDump() expected error for missing image")
	}
}
