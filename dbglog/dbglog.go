// Package dbglog builds slog loggers aimed at a debug console.
//
// Kernel-style consoles grade messages over many severities, from
// system-dead down to verbose kernel chatter. Those collapse onto
// slog's four levels here: anything fatal or broken logs at Error,
// recoverable oddities at Warn, progress at Info, and the chatty
// tracing at Debug.
//
// The writer is typically a *dbgio.Console (use its Translated view so
// raw-mode terminals get proper line endings), but any Writer works.
package dbglog

import (
	"io"
	"log/slog"
	"math"
)

// New returns a text logger writing records at or above level to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything. Library code that
// takes an optional logger uses this as the default.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
}
