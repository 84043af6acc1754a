// Package logging builds the slog logger shared by the CLI and the runner.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New creates a text logger writing to w at the named level. It does not set
// the global logger.
func New(levelStr string, w io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(levelStr)}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// ParseLevel maps debug|info|warn|error to a slog level, defaulting to warn.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
