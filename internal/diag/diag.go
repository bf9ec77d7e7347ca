// Package diag implements the compiler's diagnostic model: stable
// short-coded errors/warnings with a source-span caret rendering.
//
// Grounded on errors/errors.go and internal/errors/errors.go from the
// teacher (CompilerError.Format/FormatWithContext), generalized from a
// single flat error type into a Bag that accumulates per spec.md §7's
// policy ("the checker does not stop at the first error; after each
// phase, if the error count > 0, the pipeline aborts before the next
// phase").
package diag

import (
	"fmt"
	"strings"

	"github.com/tml-lang/tmlc/ast"
)

// Severity distinguishes errors (which abort the next phase) from
// warnings (which never do).
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single reported problem: a stable short code (the
// T###/C###/E### families of spec.md §7), a severity, a message, the
// source span it points at, and the original source text (needed to
// render the caret).
type Diagnostic struct {
	Code     string
	Severity Severity
	Message  string
	Span     ast.Span
	Source   string
}

// Error implements the error interface so a Diagnostic can be returned
// or wrapped like any other Go error.
func (d *Diagnostic) Error() string { return d.Format(false) }

// Format renders "level: short-code: message" followed by a framed
// source excerpt with a caret, matching the teacher's CompilerError
// rendering style.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.Span.File != "" {
		fmt.Fprintf(&sb, "%s: %s: %s\n  --> %s:%s\n", d.Severity, d.Code, d.Message, d.Span.File, d.Span.Start)
	} else {
		fmt.Fprintf(&sb, "%s: %s: %s\n  --> %s\n", d.Severity, d.Code, d.Message, d.Span.Start)
	}

	if line := sourceLine(d.Source, d.Span.Start.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", d.Span.Start.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max(d.Span.Start.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Bag accumulates diagnostics for one module's compilation, mirroring
// the teacher's PassContext error list (internal/semantic/pass.go).
// It never aborts eagerly; callers check HasErrors() between phases.
type Bag struct {
	diags []*Diagnostic
}

// NewBag creates an empty diagnostic bag.
func NewBag() *Bag { return &Bag{} }

// Add appends a diagnostic.
func (b *Bag) Add(d *Diagnostic) { b.diags = append(b.diags, d) }

// Errorf is a convenience constructor for an Error-severity diagnostic.
func (b *Bag) Errorf(code string, span ast.Span, source string, format string, args ...any) {
	b.Add(&Diagnostic{Code: code, Severity: Error, Message: fmt.Sprintf(format, args...), Span: span, Source: source})
}

// Warnf is a convenience constructor for a Warning-severity diagnostic.
func (b *Bag) Warnf(code string, span ast.Span, source string, format string, args ...any) {
	b.Add(&Diagnostic{Code: code, Severity: Warning, Message: fmt.Sprintf(format, args...), Span: span, Source: source})
}

// HasErrors reports whether any Error-severity diagnostic is present;
// callers abort the pipeline before the next phase when true, per
// spec.md §7.
func (b *Bag) HasErrors() bool {
	for _, d := range b.diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Diagnostics returns all accumulated diagnostics in report order.
func (b *Bag) Diagnostics() []*Diagnostic { return b.diags }

// ErrorCount / WarningCount report counts by severity.
func (b *Bag) ErrorCount() int   { return b.count(Error) }
func (b *Bag) WarningCount() int { return b.count(Warning) }

func (b *Bag) count(sev Severity) int {
	n := 0
	for _, d := range b.diags {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Format renders every diagnostic in the bag, one per paragraph.
func (b *Bag) Format(color bool) string {
	parts := make([]string, len(b.diags))
	for i, d := range b.diags {
		parts[i] = d.Format(color)
	}
	return strings.Join(parts, "\n\n")
}
