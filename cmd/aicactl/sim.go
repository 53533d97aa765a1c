package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/aicakit/pkg/bank"
	"github.com/joshuapare/aicakit/snd/mem"
)

var simReserve uint32

func init() {
	cmd := newSimCmd()
	cmd.Flags().
		Uint32Var(&simReserve, "reserve", bank.DefaultReserve, "Bytes of low RAM reserved before the script runs")
	rootCmd.AddCommand(cmd)
}

func newSimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sim <script>",
		Short: "Replay an allocation script against a fresh pool",
		Long: `The sim command feeds a script of allocator operations to a fresh
pool and prints the trace, the final block map, and statistics. It
exists to study fragmentation: craft a script, watch where the holes
end up.

Script syntax, one operation per line (# starts a comment):
  alloc <bytes>     allocate, reporting the chosen offset
  free <offset>     free a previous allocation (0x hex or decimal)
  avail             report the largest satisfiable request

Failed operations are recorded in the trace and the replay continues;
only malformed scripts abort.

Example:
  aicactl sim trace.txt
  aicactl sim trace.txt --reserve 0x8000 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSim(args)
		},
	}
}

type simStep struct {
	Line   int
	Op     string
	Result string `json:",omitempty"`
	Err    string `json:",omitempty"`
}

type simReport struct {
	Script  string
	Reserve uint32
	Steps   []simStep
	Blocks  []mem.BlockInfo
	Stats   mem.Stats
}

func runSim(args []string) error {
	scriptPath := args[0]
	raw, err := os.ReadFile(scriptPath)
	if err != nil {
		return err
	}

	pool := mem.New(nil)
	if err := pool.Init(simReserve); err != nil {
		return err
	}
	defer pool.Shutdown()

	report := simReport{Script: scriptPath, Reserve: simReserve}

	for i, line := range strings.Split(string(raw), "\n") {
		lineno := i + 1
		text := strings.TrimSpace(line)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		step := simStep{Line: lineno, Op: text}

		switch fields[0] {
		case "alloc":
			if len(fields) != 2 {
				return fmt.Errorf("%s:%d: alloc wants one size argument", scriptPath, lineno)
			}
			size, err := strconv.ParseUint(fields[1], 0, 32)
			if err != nil {
				return fmt.Errorf("%s:%d: bad size %q: %w", scriptPath, lineno, fields[1], err)
			}
			off, err := pool.Malloc(uint32(size))
			if err != nil {
				step.Err = err.Error()
			} else {
				step.Result = fmt.Sprintf("0x%08x", off)
			}

		case "free":
			if len(fields) != 2 {
				return fmt.Errorf("%s:%d: free wants one offset argument", scriptPath, lineno)
			}
			off, err := strconv.ParseUint(fields[1], 0, 32)
			if err != nil {
				return fmt.Errorf("%s:%d: bad offset %q: %w", scriptPath, lineno, fields[1], err)
			}
			if err := pool.Free(mem.Offset(off)); err != nil {
				step.Err = err.Error()
			} else {
				step.Result = "ok"
			}

		case "avail":
			step.Result = strconv.FormatUint(uint64(pool.Available()), 10)

		default:
			return fmt.Errorf("%s:%d: unknown operation %q", scriptPath, lineno, fields[0])
		}

		report.Steps = append(report.Steps, step)
		debugLog.Debug("sim step", "line", lineno, "op", text, "result", step.Result, "err", step.Err)
	}

	report.Blocks = pool.Blocks()
	report.Stats = pool.Stats()

	if jsonOut {
		return printJSON(report)
	}

	printInfo("Replayed %s (%d operations)\n\n", scriptPath, len(report.Steps))
	for _, st := range report.Steps {
		if st.Err != "" {
			printInfo("  %3d  %-24s !! %s\n", st.Line, st.Op, st.Err)
		} else {
			printInfo("  %3d  %-24s -> %s\n", st.Line, st.Op, st.Result)
		}
	}

	printInfo("\nBlock map:\n")
	for _, blk := range report.Blocks {
		state := "free"
		if blk.InUse {
			state = "used"
		}
		printInfo("  0x%08x  %-10s %s\n", blk.Base, formatBytes(int64(blk.Size)), state)
	}

	st := report.Stats
	printInfo("\n  %d block(s): %s used, %s free (largest hole %s)\n",
		st.Blocks,
		formatBytes(int64(st.TotalUsed)),
		formatBytes(int64(st.TotalFree)),
		formatBytes(int64(st.LargestFree)))
	return nil
}
