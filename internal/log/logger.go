package log

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Level returns the minimum level for the given verbosity:
// Debug when verbose, otherwise Warn.
func Level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// New creates a JSON logger when json is true and a human-readable one otherwise.
func New(w io.Writer, json, verbose bool) *slog.Logger {
	if json {
		return NewJSONLogger(w, verbose)
	}
	return NewLogger(w, verbose)
}

// NewLogger creates a human-readable slog.Logger writing to w.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      Level(verbose),
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	}))
}

// NewJSONLogger creates a slog.Logger that writes one JSON object per record.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: Level(verbose),
	}))
}

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
