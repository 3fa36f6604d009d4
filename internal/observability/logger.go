package observability

import (
	"io"
	"log/slog"
)

// NewLogger builds the process logger. format "json" selects the JSON handler,
// anything else the text handler. verbose lowers the level to debug.
func NewLogger(w io.Writer, verbose bool, format string) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
