// Package log builds the command-line logger.
package log

import (
	"io"
	"log/slog"
)

// New creates a text logger writing to w. Verbose lowers the level from
// Warn to Debug. Timestamps are dropped; the output is read by people at a
// terminal.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
