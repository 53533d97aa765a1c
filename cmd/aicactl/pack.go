package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/aicakit/pkg/bank"
	"github.com/joshuapare/aicakit/snd/mem"
	"github.com/joshuapare/aicakit/snd/region"
	"github.com/joshuapare/aicakit/snd/sample"
)

var (
	packSize    uint32
	packReserve uint32
	packRate    int
	packFormat  string
)

func init() {
	cmd := newPackCmd()
	cmd.Flags().Uint32Var(&packSize, "size", mem.RegionSize, "Image size in bytes")
	cmd.Flags().
		Uint32Var(&packReserve, "reserve", bank.DefaultReserve, "Bytes of low RAM kept clear of samples")
	cmd.Flags().IntVar(&packRate, "rate", sample.DefaultRate, "Playback rate for raw (non-wav) inputs")
	cmd.Flags().
		StringVar(&packFormat, "format", "pcm16", "Sample format for raw inputs: pcm16, pcm8, adpcm4")
	rootCmd.AddCommand(cmd)
}

func newPackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pack <image> <sample>...",
		Short: "Build a sound RAM image from sample files",
		Long: `The pack command creates a RAM image file and places each sample
into it with best-fit allocation, then prints the resulting layout.

WAV input is decoded (16-bit and 8-bit PCM). Any other extension is
read verbatim, tagged with --format and --rate.

Example:
  aicactl pack aica.img kick.wav snare.wav
  aicactl pack aica.img loop.adpcm --format adpcm4 --rate 22050
  aicactl pack aica.img jingle.wav --json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd.Context(), args)
		},
	}
}

type packReport struct {
	Image   string
	Size    uint32
	Reserve uint32
	Entries []bank.Entry
	Stats   mem.Stats
}

func runPack(ctx context.Context, args []string) error {
	imagePath := args[0]
	inputs := args[1:]

	format, err := parseFormat(packFormat)
	if err != nil {
		return err
	}

	printVerbose("creating image %s (%d bytes, reserve %#x)\n", imagePath, packSize, packReserve)
	img, err := region.Create(imagePath, packSize)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	defer img.Close()

	b, err := bank.New(img, &bank.Options{Reserve: packReserve})
	if err != nil {
		return err
	}

	for _, path := range inputs {
		s, err := stageInput(path, format)
		if err != nil {
			return fmt.Errorf("stage %s: %w", path, err)
		}
		e, err := b.Add(s)
		if err != nil {
			return fmt.Errorf("place %s: %w", path, err)
		}
		debugLog.Debug("placed sample",
			"name", e.Name,
			"offset", fmt.Sprintf("%#x", e.Offset),
			"size", e.Size,
			"format", e.Format.String())
	}

	report := packReport{
		Image:   imagePath,
		Size:    packSize,
		Reserve: packReserve,
		Entries: b.Entries(),
		Stats:   b.Stats(),
	}
	if err := b.Close(ctx); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(report)
	}

	printInfo("Packed %d sample(s) into %s\n\n", len(report.Entries), imagePath)
	printInfo("  %-16s %-12s %-10s %-8s %s\n", "NAME", "OFFSET", "SIZE", "FORMAT", "RATE")
	for _, e := range report.Entries {
		printInfo("  %-16s 0x%08x   %-10s %-8s %d\n",
			e.Name, e.Offset, formatBytes(int64(e.Size)), e.Format, e.Rate)
	}
	printInfo("\n  %s used, %s free (largest hole %s)\n",
		formatBytes(int64(report.Stats.TotalUsed)),
		formatBytes(int64(report.Stats.TotalFree)),
		formatBytes(int64(report.Stats.LargestFree)))
	return nil
}

// stageInput loads one input file, decoding WAV and passing everything
// else through raw.
func stageInput(path string, f sample.Format) (*sample.Sample, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		return sample.LoadWAV(path)
	}
	return sample.LoadRaw(path, f, packRate)
}

func parseFormat(s string) (sample.Format, error) {
	switch strings.ToLower(s) {
	case "pcm16":
		return sample.FormatPCM16, nil
	case "pcm8":
		return sample.FormatPCM8, nil
	case "adpcm4":
		return sample.FormatADPCM4, nil
	}
	return 0, fmt.Errorf("unknown sample format %q (want pcm16, pcm8, or adpcm4)", s)
}
