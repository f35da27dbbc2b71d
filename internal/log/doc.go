// Package log builds the slog loggers used by vacationreport.
//
// Log output always goes to stderr (or another writer chosen by the
// caller), never to stdout, so that the report can be piped safely.
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
// The text logger uses github.com/lmittmann/tint and colors its output only
// when the destination is a terminal.
package log
