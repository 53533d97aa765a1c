package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/aicakit/snd/region"
)

var (
	dumpOffset uint32
	dumpLength uint32
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().Uint32Var(&dumpOffset, "offset", 0, "Start offset into the image (0x hex or decimal)")
	cmd.Flags().Uint32Var(&dumpLength, "length", 256, "Bytes to dump")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <image>",
		Short: "Hex dump a range of a sound RAM image",
		Long: `The dump command prints a hex/ASCII view of part of a RAM image.
Offsets in the dump body are relative to --offset; the header line
shows the absolute window.

Example:
  aicactl dump aica.img
  aicactl dump aica.img --offset 0x10000 --length 64
  aicactl dump aica.img --offset 0x10000 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
}

type dumpReport struct {
	Image  string
	Offset uint32
	Length uint32
	Data   []byte
}

func runDump(args []string) error {
	imagePath := args[0]

	img, err := region.Open(imagePath)
	if err != nil {
		return err
	}
	defer img.Close()

	if dumpOffset >= img.Size() {
		return fmt.Errorf("offset %#x beyond image end %#x", dumpOffset, img.Size())
	}
	end := dumpOffset + dumpLength
	if end < dumpOffset || end > img.Size() {
		end = img.Size()
	}
	window := img.Bytes()[dumpOffset:end]

	if jsonOut {
		return printJSON(dumpReport{
			Image:  imagePath,
			Offset: dumpOffset,
			Length: uint32(len(window)),
			Data:   window,
		})
	}

	printInfo("%s [%#x, %#x):\n", imagePath, dumpOffset, end)
	printInfo("%s", hex.Dump(window))
	return nil
}
