// Package logging builds the slog logger used for diagnostics. User-facing
// results are printed through internal/style instead.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w. Debug records are emitted only
// when verbose is set.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			// Timestamps are noise in a one-shot CLI.
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
