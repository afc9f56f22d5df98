// Package log provides context-aware diagnostic logging for t.
//
// Everything written through a Logger goes to stderr. Stdout is reserved for
// the resolved path (see the output package) so that shell command
// substitution only ever captures that one line.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/raphi011/t/internal/ui/styles"
)

type ctxKey struct{}

// Logger writes diagnostics. Quiet suppresses everything except warnings.
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool
}

// New creates a new logger.
func New(out io.Writer, verbose, quiet bool) *Logger {
	return &Logger{out: out, verbose: verbose, quiet: quiet}
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a logger writing to io.Discard if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{out: io.Discard}
}

// Printf writes formatted output unless quiet.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output unless quiet.
func (l *Logger) Println(args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Successf writes a styled success line unless quiet.
func (l *Logger) Successf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, styles.Success().Render(fmt.Sprintf(format, args...)))
}

// Warnf writes a "Warning:" line. Warnings are shown even when quiet.
func (l *Logger) Warnf(format string, args ...any) {
	msg := "Warning: " + fmt.Sprintf(format, args...)
	fmt.Fprintln(l.out, styles.Warning().Render(msg))
}

// Debug writes msg followed by key=value pairs when verbose.
// A trailing key without a value is dropped.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if !l.IsVerbose() {
		return
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keyvals[i], keyvals[i+1])
	}
	fmt.Fprintln(l.out, styles.Muted().Render(b.String()))
}

// Command logs an external command before it runs and returns a function
// that logs its duration. Both are no-ops unless verbose.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	if !l.IsVerbose() {
		return func(time.Duration) {}
	}
	line := "$ " + strings.TrimSpace(name+" "+strings.Join(args, " "))
	if dir != "" {
		line = "[" + dir + "] " + line
	}
	fmt.Fprintln(l.out, styles.Muted().Render(line))
	return func(d time.Duration) {
		fmt.Fprintln(l.out, styles.Muted().Render(fmt.Sprintf("  (%s)", d.Round(time.Millisecond))))
	}
}

// IsVerbose reports whether debug output is enabled. Quiet wins over verbose.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}
