package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that writes to a file
func NewFileLogger(path string) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})

	cleanup := func() {
		f.Close()
	}

	return &Logger{Logger: l}, cleanup, nil
}

// NewMultiLogger creates a logger that writes to multiple outputs
func NewMultiLogger(writers ...io.Writer) *Logger {
	w := io.MultiWriter(writers...)
	return New(w)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// FileParsed logs a successfully parsed file
func (l *Logger) FileParsed(file string, elements int, duration time.Duration) {
	l.Debug("file parsed",
		"file", file,
		"elements", elements,
		"duration", duration.Round(time.Millisecond))
}

// FileConverted logs a successful conversion
func (l *Logger) FileConverted(source, output, format string) {
	l.Info("file converted",
		"source", source,
		"output", output,
		"format", format)
}

// FileError logs an error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// BatchStarted logs the start of a batch run
func (l *Logger) BatchStarted(runID string, files int, format string) {
	l.Info("batch started",
		"run_id", runID,
		"files", files,
		"format", format)
}

// BatchCompleted logs the completion of a batch run
func (l *Logger) BatchCompleted(runID string, converted, skipped, failed int, duration time.Duration) {
	l.Info("batch completed",
		"run_id", runID,
		"converted", converted,
		"skipped", skipped,
		"failed", failed,
		"duration", duration.Round(time.Millisecond))
}

// StateError logs a state-related error
func (l *Logger) StateError(operation string, err error) {
	l.Error("state error",
		"operation", operation,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(sourceDir, format string, workers int) {
	l.Debug("config loaded",
		"source_dir", sourceDir,
		"format", format,
		"workers", workers)
}

// Skipped logs when a file is skipped
func (l *Logger) Skipped(file, reason string) {
	l.Debug("file skipped",
		"file", file,
		"reason", reason)
}
