// Package logger provides charmbracelet/log loggers for the wordsim packages.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a prefixed charm logger on stderr that follows the global log level.
// Stdout stays free for IPC responses.
func New(prefix string) *log.Logger {
	return NewWithWriter(os.Stderr, prefix)
}

// NewWithWriter creates a prefixed charm logger writing to w.
func NewWithWriter(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: log.GetLevel() <= log.DebugLevel,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a new charm log with custom config
func NewWithConfig(w io.Writer, prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}
