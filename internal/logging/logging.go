package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Open creates a logger writing to path. The TUI owns the terminal, so logs
// never go to stdout or stderr; an empty path discards everything.
// The returned closer must be called on exit.
func Open(path string, verbose bool) (*log.Logger, io.Closer, error) {
	if path == "" {
		return Discard(), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open log file: %w", err)
	}

	return New(f, verbose), f, nil
}

// New creates a logger writing to w
func New(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "multiselect",
		ReportTimestamp: true,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// Discard returns a logger that drops everything
func Discard() *log.Logger {
	return log.New(io.Discard)
}
