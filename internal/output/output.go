// Package output provides colored output functions for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Writer defines the interface for output operations
type Writer interface {
	Success(msg string)
	Successf(format string, args ...interface{})
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})
	Plain(msg string)
	Plainf(format string, args ...interface{})
}

// ColoredWriter implements Writer with colored output
type ColoredWriter struct {
	successColor *color.Color
	infoColor    *color.Color
	warnColor    *color.Color
	errorColor   *color.Color
	stdout       io.Writer
	stderr       io.Writer
	mu           sync.Mutex
}

// NewColoredWriter creates a new ColoredWriter instance
func NewColoredWriter(stdout, stderr io.Writer) *ColoredWriter {
	return &ColoredWriter{
		successColor: color.New(color.FgGreen, color.Bold),
		infoColor:    color.New(color.FgCyan),
		warnColor:    color.New(color.FgYellow),
		errorColor:   color.New(color.FgRed, color.Bold),
		stdout:       stdout,
		stderr:       stderr,
	}
}

// Success prints a success message in green
func (w *ColoredWriter) Success(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = w.successColor.Fprintln(w.stdout, msg)
}

// Successf prints a formatted success message
func (w *ColoredWriter) Successf(format string, args ...interface{}) {
	w.Success(fmt.Sprintf(format, args...))
}

// Info prints an info message in cyan
func (w *ColoredWriter) Info(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = w.infoColor.Fprintln(w.stdout, msg)
}

// Infof prints a formatted info message
func (w *ColoredWriter) Infof(format string, args ...interface{}) {
	w.Info(fmt.Sprintf(format, args...))
}

// Warn prints a warning message in yellow
func (w *ColoredWriter) Warn(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = w.warnColor.Fprintln(w.stderr, msg)
}

// Warnf prints a formatted warning message
func (w *ColoredWriter) Warnf(format string, args ...interface{}) {
	w.Warn(fmt.Sprintf(format, args...))
}

// Error prints an error message in red
func (w *ColoredWriter) Error(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = w.errorColor.Fprintln(w.stderr, msg)
}

// Errorf prints a formatted error message
func (w *ColoredWriter) Errorf(format string, args ...interface{}) {
	w.Error(fmt.Sprintf(format, args...))
}

// Plain prints a message without color
func (w *ColoredWriter) Plain(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = fmt.Fprintln(w.stdout, msg)
}

// Plainf prints a formatted message without color
func (w *ColoredWriter) Plainf(format string, args ...interface{}) {
	w.Plain(fmt.Sprintf(format, args...))
}

//nolint:gochecknoglobals // package-level default writer for CLI convenience
var (
	defaultMu     sync.RWMutex
	defaultWriter Writer = NewColoredWriter(os.Stdout, os.Stderr)
)

// SetDefault replaces the package-level writer, useful for tests
func SetDefault(w Writer) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultWriter = w
}

func def() Writer {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultWriter
}

// Success prints a success message via the default writer
func Success(msg string) { def().Success(msg) }

// Successf prints a formatted success message via the default writer
func Successf(format string, args ...interface{}) { def().Successf(format, args...) }

// Info prints an info message via the default writer
func Info(msg string) { def().Info(msg) }

// Infof prints a formatted info message via the default writer
func Infof(format string, args ...interface{}) { def().Infof(format, args...) }

// Warn prints a warning via the default writer
func Warn(msg string) { def().Warn(msg) }

// Warnf prints a formatted warning via the default writer
func Warnf(format string, args ...interface{}) { def().Warnf(format, args...) }

// Error prints an error message via the default writer
func Error(msg string) { def().Error(msg) }

// Errorf prints a formatted error message via the default writer
func Errorf(format string, args ...interface{}) { def().Errorf(format, args...) }

// Plain prints an uncolored message via the default writer
func Plain(msg string) { def().Plain(msg) }

// Plainf prints a formatted uncolored message via the default writer
func Plainf(format string, args ...interface{}) { def().Plainf(format, args...) }
