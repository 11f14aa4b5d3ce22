// Package logging sets up the structured logger for claimdesk.
//
// The TUI owns stdout and stderr, so log output goes to a file under the
// state directory instead. Logging is best effort: if the file cannot be
// opened the returned logger discards everything rather than breaking the
// console.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Open returns a structured logger writing to the given file path and a
// close function for the underlying file. The close function is always safe
// to call.
func Open(path string) (*slog.Logger, func()) {
	if path == "" {
		return discard(), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return discard(), func() {}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return discard(), func() {}
	}
	logger := slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return logger, func() { _ = file.Close() }
}

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
