// Package diag implements the SDK's self-diagnostic output. The delivery
// engine must never log through the SDK itself, so dropped batches, retry
// traces, and configuration problems are written as prefixed lines to a
// local writer (stderr by default), colored when the writer is a terminal.
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// ANSI sequences for level tags.
const (
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorReset  = "\033[0m"
)

// Logger writes diagnostic lines. The zero value is unusable; use New.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	prefix  string
	enabled bool
	color   bool
}

// New creates a diagnostic logger writing to stderr. Debug lines are only
// emitted when enabled; warnings and errors are always written.
func New(prefix string, enabled bool) *Logger {
	return NewWithWriter(os.Stderr, prefix, enabled)
}

// NewWithWriter creates a diagnostic logger writing to the given writer.
func NewWithWriter(out io.Writer, prefix string, enabled bool) *Logger {
	return &Logger{
		out:     out,
		prefix:  prefix,
		enabled: enabled,
		color:   writerIsTerminal(out),
	}
}

// Debugf writes a diagnostic line when debug output is enabled.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || !l.enabled {
		return
	}

	l.write("", format, args...)
}

// Warnf writes a warning line.
func (l *Logger) Warnf(format string, args ...any) {
	if l == nil {
		return
	}

	l.write(l.tag("warn", colorYellow), format, args...)
}

// Errorf writes an error line.
func (l *Logger) Errorf(format string, args ...any) {
	if l == nil {
		return
	}

	l.write(l.tag("error", colorRed), format, args...)
}

func (l *Logger) tag(name, color string) string {
	if l.color {
		return color + name + colorReset + " "
	}

	return name + " "
}

func (l *Logger) write(tag, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.out, l.prefix+tag+format+"\n", args...)
}

func writerIsTerminal(out io.Writer) bool {
	file, ok := out.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	fd := file.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
