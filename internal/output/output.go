// Package output provides context-aware output for cdh.
// Stdout carries the directory-change directive a calling shell evaluates,
// or the listing in --list mode. Stderr (via log package) is used for
// diagnostics.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

type ctxKey struct{}

// Printer writes primary output (directive, listing, JSON) to stdout.
type Printer struct {
	w io.Writer
}

// WithPrinter attaches a Printer to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, &Printer{w: w})
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return &Printer{w: os.Stdout}
}

// Print writes output without a newline.
func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.w, a...)
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Directive writes the single line the shell wrapper evaluates to change
// directory.
func (p *Printer) Directive(path string) {
	p.Println(Directive(path))
}

// JSON writes v as indented JSON followed by a newline.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Directive returns the shell command that changes to path.
func Directive(path string) string {
	return "cd -- " + ShellQuote(path)
}

// ShellQuote single-quotes s for POSIX shells. The '\'' form is also
// understood by fish.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
