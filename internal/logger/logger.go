// Package logger builds the charmbracelet/log loggers used across the app.
// The terminal belongs to bubbletea, so output goes to a file.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a logger writing to w
func New(w io.Writer, prefix string, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportTimestamp: true,
		ReportCaller:    false,
		Formatter:       log.TextFormatter,
	})
}

// OpenFile opens (appending) the log file at path and installs a logger on
// it as the package default. The returned closer releases the file.
func OpenFile(path string, level log.Level) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	log.SetDefault(New(f, "typeahead", level))
	return f, nil
}

// Discard silences the default logger
func Discard() {
	log.SetDefault(New(io.Discard, "", log.FatalLevel))
}

// ParseLevel maps a level name to a log level, defaulting to info
func ParseLevel(name string) log.Level {
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
