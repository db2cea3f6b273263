package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sumstack/internal/config"
)

// newLogger builds the application logger at the configured level.
// Full-screen commands log to the configured file because the terminal is
// taken; serve logs to stderr. The returned func closes the file, if any.
func newLogger(toFile bool) (*log.Logger, func()) {
	level, err := log.ParseLevel(settings.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}

	if toFile {
		w = io.Discard
		if path := config.ExpandHome(settings.Log.File); path != "" {
			f, err := openLogFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
			} else {
				w = f
				closeFn = func() { f.Close() }
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "sumstack",
		Level:           level,
	})
	return logger, closeFn
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
