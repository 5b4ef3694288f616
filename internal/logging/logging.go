// Package logging builds the app's slog logger. The terminal belongs to the
// UI, so records go to a file and optionally to stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Init opens path for appending and returns a text logger writing to it, plus
// stderr when verbose is set. If the file cannot be opened the logger falls
// back to stderr (verbose) or discards records.
func Init(path string, verbose bool) (*slog.Logger, io.Closer) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var writers []io.Writer
	if verbose {
		writers = append(writers, os.Stderr)
	}

	var closer io.Closer = nopCloser{}
	var openErr error
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0o755)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			openErr = err
		} else {
			writers = append(writers, f)
			closer = f
		}
	}

	if len(writers) == 0 {
		return slog.New(slog.DiscardHandler), closer
	}
	logger := slog.New(slog.NewTextHandler(io.MultiWriter(writers...), opts))
	if openErr != nil {
		logger.Error("failed to open log file", "path", path, "err", openErr)
	}
	return logger, closer
}
