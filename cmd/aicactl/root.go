package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/aicakit/dbgio"
	"github.com/joshuapare/aicakit/dbglog"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
)

// Diagnostics run through the library's own console layer: a stream
// handler on stderr when verbose, the null sink otherwise.
var (
	debugCon *dbgio.Console
	debugLog = dbglog.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "aicactl",
	Short: "Build and inspect AICA sound RAM images",
	Long: `aicactl assembles and inspects sound RAM images for the AICA sound
system: it stages sample files into a best-fit managed 2 MiB region,
hex dumps the results, and replays allocation scripts for
fragmentation analysis.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupDebug()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

// setupDebug picks the diagnostics backend for this run. The null
// handler at the end of the registry guarantees detection succeeds.
func setupDebug() {
	if verbose && !quiet {
		debugCon = dbgio.NewConsole(dbgio.NewStream(os.Stderr, nil), dbgio.Null())
	} else {
		debugCon = dbgio.NewConsole(dbgio.Null())
	}
	_ = debugCon.Init()
	debugLog = dbglog.New(flushWriter{debugCon}, slog.LevelDebug)
}

// flushWriter pushes each record through the console immediately so
// diagnostics survive a command that errors out mid-way.
type flushWriter struct{ con *dbgio.Console }

func (w flushWriter) Write(p []byte) (int, error) {
	n, err := w.con.WriteTranslated(p)
	if err != nil {
		return n, err
	}
	return n, w.con.Flush()
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message through the debug console
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet && debugCon != nil {
		debugCon.Printf(format, args...)
		debugCon.Flush()
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
