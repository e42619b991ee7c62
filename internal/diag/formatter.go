package diag

import (
	"fmt"
	"io"
	"strings"
)

// Formatter renders diagnostics with a snippet of the offending expression.
// Type expressions are single-line, so the snippet is at most one line with
// an underline beneath the span.
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a formatter writing to the given sink.
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// Format prints a diagnostic, with a snippet when the source is attached.
func (f *Formatter) Format(d Diagnostic) {
	f.printHeader(d)

	if d.Source != "" && d.Span.IsValid() {
		f.printSnippet(d)
	} else if d.Span.IsValid() {
		fmt.Fprintf(f.out, "  --> %s\n", d.Span.String())
	}

	for _, note := range d.Notes {
		fmt.Fprintf(f.out, "  = note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.out, "help: %s\n", d.Help)
	}
}

// printHeader prints the error header (error[CODE]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = "error"
	}

	if d.Code != "" {
		fmt.Fprintf(f.out, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.out, "%s: %s\n", severity, d.Message)
	}
}

// printSnippet prints the expression with an underline below the span.
func (f *Formatter) printSnippet(d Diagnostic) {
	fmt.Fprintf(f.out, "  |\n")
	fmt.Fprintf(f.out, "  | %s\n", d.Source)

	start := d.Span.Column - 1
	if start < 0 {
		start = 0
	}
	width := d.Span.End - d.Span.Start
	if width < 1 {
		width = 1
	}
	if start > len(d.Source) {
		start = len(d.Source)
	}
	if start+width > len(d.Source)+1 {
		width = len(d.Source) + 1 - start
		if width < 1 {
			width = 1
		}
	}

	fmt.Fprintf(f.out, "  | %s%s\n", strings.Repeat(" ", start), strings.Repeat("^", width))
}
