// Package logging holds the process-wide diagnostic logger.
package logging

import (
	"io"
	"log/slog"
	"sync/atomic"
)

// logger defaults to nil, which makes Logger() hand out a discard logger.
var logger atomic.Pointer[slog.Logger]

// SetLogger installs sl as the diagnostic logger. Pass nil to silence output.
func SetLogger(sl *slog.Logger) {
	if sl == nil {
		sl = slog.New(slog.DiscardHandler)
	}
	logger.Store(sl)
}

// Logger returns the diagnostic logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	l := logger.Load()
	if l == nil {
		l = slog.New(slog.DiscardHandler)
		logger.Store(l)
	}
	return l
}

// Configure installs a text handler on w. debug lowers the level to Debug.
func Configure(w io.Writer, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
