// Package logging builds the charmbracelet/log logger used across tada.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Options mirrors the logging keys of the config file.
type Options struct {
	Level      string
	Format     string
	Timestamps bool
	Caller     bool
	Prefix     string
}

// ParseLevel maps a config string to a log level; unknown values mean info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter maps a config string to a formatter; unknown values mean text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "tada"
	}
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormatter(opts.Format),
		ReportTimestamp: opts.Timestamps,
		ReportCaller:    opts.Caller,
		Prefix:          prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger { return log.New(io.Discard) }

// OpenFile returns a logger appending to path. The caller closes the file.
func OpenFile(path string, opts Options) (*log.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, opts), f, nil
}
