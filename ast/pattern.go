package ast

import "strings"

// Pattern is the left-hand side of a `when` arm or an `if let`
// condition. Concrete variants mirror spec.md §4.3's pattern-matching
// subsystem: enum patterns, literal/range patterns, or-patterns,
// struct/tuple/array destructuring, and plain bindings.
type Pattern interface {
	Node
	patternNode()
}

type patternBase struct{ span Span }

func (p patternBase) Span() Span { return p.span }

// WildcardPattern is `_`.
type WildcardPattern struct{ patternBase }

func (w *WildcardPattern) patternNode() {}
func (w *WildcardPattern) String() string { return "_" }

// BindingPattern binds the scrutinee (or a destructured piece of it) to
// a new local name.
type BindingPattern struct {
	patternBase
	Name string
}

func (b *BindingPattern) patternNode() {}
func (b *BindingPattern) String() string { return b.Name }

// LiteralPattern matches an exact scalar value.
type LiteralPattern struct {
	patternBase
	Value Expression // *IntLiteral, *FloatLiteral, *StringLiteral, *BoolLiteral, *CharLiteral
}

func (l *LiteralPattern) patternNode() {}
func (l *LiteralPattern) String() string { return l.Value.String() }

// RangePattern matches `lo..hi` (exclusive) or `lo..=hi` (inclusive).
type RangePattern struct {
	patternBase
	Low, High Expression
	Inclusive bool
}

func (r *RangePattern) patternNode() {}
func (r *RangePattern) String() string {
	if r.Inclusive {
		return r.Low.String() + "..=" + r.High.String()
	}
	return r.Low.String() + ".." + r.High.String()
}

// EnumPattern matches a specific variant, optionally destructuring its
// payload positionally.
type EnumPattern struct {
	patternBase
	EnumName    string // empty when inferred from scrutinee type
	VariantName string
	Payload     []Pattern
}

func (e *EnumPattern) patternNode() {}
func (e *EnumPattern) String() string {
	if len(e.Payload) == 0 {
		return e.VariantName
	}
	parts := make([]string, len(e.Payload))
	for i, p := range e.Payload {
		parts[i] = p.String()
	}
	return e.VariantName + "(" + strings.Join(parts, ", ") + ")"
}

// StructPattern destructures a struct by field name.
type StructPattern struct {
	patternBase
	StructName string
	Fields     map[string]Pattern
	HasRest    bool // `..` present, ignore remaining fields
}

func (s *StructPattern) patternNode() {}
func (s *StructPattern) String() string { return s.StructName + " { .. }" }

// TuplePattern destructures a tuple positionally.
type TuplePattern struct {
	patternBase
	Elements []Pattern
}

func (t *TuplePattern) patternNode() {}
func (t *TuplePattern) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ArrayPattern destructures a fixed array; RestBinding is non-empty
// when a `...rest` tail binding is present, binding the remainder to a
// slice pointer into the array (spec.md §4.3).
type ArrayPattern struct {
	patternBase
	Elements    []Pattern
	RestBinding string
}

func (a *ArrayPattern) patternNode() {}
func (a *ArrayPattern) String() string { return "[...]" }

// OrPattern combines sub-patterns with short-circuit `or` (spec.md
// §4.3's or-pattern rule).
type OrPattern struct {
	patternBase
	Alternatives []Pattern
}

func (o *OrPattern) patternNode() {}
func (o *OrPattern) String() string {
	parts := make([]string, len(o.Alternatives))
	for i, a := range o.Alternatives {
		parts[i] = a.String()
	}
	return strings.Join(parts, " | ")
}

// MatchArm is one `Pattern [if guard] => body` clause of a `when`
// expression.
type MatchArm struct {
	SpanValue Span
	Pattern   Pattern
	Guard     Expression // nil if no guard
	Body      Expression
}
