// Package output provides context-aware output for t.
//
// Stdout carries exactly one thing: the resolved directory path, printed as
// the last line so that a shell wrapper can `cd "$(t ... | tail -n 1)"`.
// Diagnostics go to stderr via the log package.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type ctxKey struct{}

// Printer writes primary output to stdout.
type Printer struct {
	w io.Writer
}

// New creates a new Printer writing to the given writer.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// WithPrinter attaches a Printer to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, New(w))
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return &Printer{w: os.Stdout}
}

// Path writes a resolved directory path as a bare line: no quoting, no
// styling. The path must be absolute.
func (p *Printer) Path(path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("refusing to print non-absolute path %q", path)
	}
	_, err := fmt.Fprintln(p.w, path)
	return err
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}
