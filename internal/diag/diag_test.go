package diag

import (
	"strings"
	"testing"

	"github.com/tml-lang/tmlc/ast"
)

func span(line, col int) ast.Span {
	return ast.Span{File: "test.tml", Start: ast.Pos{Line: line, Column: col}}
}

func TestDiagnosticFormat(t *testing.T) {
	tests := []struct {
		name        string
		d           *Diagnostic
		wantContain []string
	}{
		{
			name: "type mismatch with source",
			d: &Diagnostic{
				Code: "T057", Severity: Error, Message: "expected I32, found Str",
				Span: span(1, 10), Source: "let y: I32 = \"x\";",
			},
			wantContain: []string{"error: T057:", "test.tml:1:10", "let y: I32", "^"},
		},
		{
			name: "warning without source",
			d: &Diagnostic{
				Code: "W001", Severity: Warning, Message: "unused variable",
				Span: span(3, 1),
			},
			wantContain: []string{"warning: W001:", "3:1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.d.Format(false)
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("Format() missing %q\ngot:\n%s", want, got)
				}
			}
		})
	}
}

func TestBagAccumulatesWithoutAborting(t *testing.T) {
	bag := NewBag()
	bag.Errorf("T057", span(1, 1), "", "first error")
	bag.Warnf("W001", span(2, 1), "", "a warning")
	bag.Errorf("T078", span(3, 1), "", "second error")

	if !bag.HasErrors() {
		t.Fatal("expected HasErrors() to be true")
	}
	if got := bag.ErrorCount(); got != 2 {
		t.Errorf("ErrorCount() = %d, want 2", got)
	}
	if got := bag.WarningCount(); got != 1 {
		t.Errorf("WarningCount() = %d, want 1", got)
	}
	if got := len(bag.Diagnostics()); got != 3 {
		t.Errorf("Diagnostics() len = %d, want 3", got)
	}
}

func TestExplainKnownAndUnknown(t *testing.T) {
	if got := Explain("T038"); !strings.Contains(got, "Reserved name") {
		t.Errorf("Explain(T038) = %q", got)
	}
	if got := Explain("Z999"); !strings.Contains(got, "no explanation") {
		t.Errorf("Explain(Z999) = %q", got)
	}
}
