package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// writeRawFixture drops n patterned bytes into dir and returns the path.
func writeRawFixture(t *testing.T, dir, name string, n int) string {
	t.Helper()
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i%255 + 1)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func resetPackFlags() {
	quiet = false
	verbose = false
	jsonOut = false
	packSize = 128 * 1024
	packReserve = 0x10000
	packRate = 44100
	packFormat = "pcm16"
}

func TestPackCommand(t *testing.T) {
	tests := []struct {
		name           string
		fixtures       map[string]int // filename -> raw byte length
		format         string
		quietMode      bool
		wantErr        bool
		wantJSON       bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:     "pack two raw samples",
			fixtures: map[string]int{"kick.pcm": 100, "snare.pcm": 200},
			wantContain: []string{
				"Packed 2 sample(s)",
				"kick", "snare",
				"0x00010000", "0x00010080",
			},
		},
		{
			name:        "json layout",
			fixtures:    map[string]int{"kick.pcm": 100},
			wantJSON:    true,
			wantContain: []string{`"Entries"`, `"kick"`, `"Stats"`},
		},
		{
			name:        "adpcm format flag",
			fixtures:    map[string]int{"loop.adpcm": 64},
			format:      "adpcm4",
			wantContain: []string{"adpcm4"},
		},
		{
			name:     "oversized sample fails",
			fixtures: map[string]int{"huge.pcm": 200 * 1024},
			wantErr:  true,
		},
		{
			name:     "unknown format fails",
			fixtures: map[string]int{"kick.pcm": 100},
			format:   "mp3float",
			wantErr:  true,
		},
		{
			name:           "quiet suppresses layout",
			fixtures:       map[string]int{"kick.pcm": 100},
			quietMode:      true,
			wantNotContain: []string{"Packed", "kick"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetPackFlags()
			quiet = tt.quietMode
			jsonOut = tt.wantJSON
			if tt.format != "" {
				packFormat = tt.format
			}

			dir := t.TempDir()
			args := []string{filepath.Join(dir, "out.img")}
			// Map iteration order is random; sort for stable offsets.
			names := make([]string, 0, len(tt.fixtures))
			for name := range tt.fixtures {
				names = append(names, name)
			}
			if len(names) == 2 && names[0] > names[1] {
				names[0], names[1] = names[1], names[0]
			}
			for _, name := range names {
				args = append(args, writeRawFixture(t, dir, name, tt.fixtures[name]))
			}

			output, err := captureOutput(t, func() error {
				return runPack(context.Background(), args)
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("runPack() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestPack_CreatesImageAtRequestedSize(t *testing.T) {
	resetPackFlags()
	packSize = 256 * 1024

	dir := t.TempDir()
	imagePath := filepath.Join(dir, "sized.img")
	args := []string{imagePath, writeRawFixture(t, dir, "one.pcm", 32)}

	if _, err := captureOutput(t, func() error {
		return runPack(context.Background(), args)
	}); err != nil {
		t.Fatalf("runPack() error = %v", err)
	}

	info, err := os.Stat(imagePath)
	if err != nil {
		t.Fatalf("image not created: %v", err)
	}
	if info.Size() != 256*1024 {
		t.Errorf("image size = %d, want %d", info.Size(), 256*1024)
	}
}

func TestPack_ReserveSwallowsImageFails(t *testing.T) {
	resetPackFlags()
	packSize = 64 * 1024 // equal to the default reserve, no room to place anything

	dir := t.TempDir()
	args := []string{filepath.Join(dir, "out.img"), writeRawFixture(t, dir, "one.pcm", 32)}

	if _, err := captureOutput(t, func() error {
		return runPack(context.Background(), args)
	}); err == nil {
		t.Fatal("runPack() succeeded with reserve covering the whole image")
	}
}
