package ast

import (
	"fmt"
	"strings"
)

// TypeExpr is the parsed, *unresolved* spelling of a type as it appears
// in source (a parameter annotation, a field type, a turbofish argument,
// …). The checker (internal/check) walks a TypeExpr and produces an
// interned types.Type; this package never resolves names itself.
//
// This mirrors spec.md §3's Type sum one-for-one at the syntax level:
// one concrete struct per variant, matched by a type switch during
// resolution.
type TypeExpr interface {
	Node
	typeExprNode()
}

type typeExprBase struct{ span Span }

func (t typeExprBase) Span() Span { return t.span }

// PrimitiveTypeExpr names one of the built-in scalar kinds (I8..I128,
// U8..U128, F32, F64, Bool, Char, Str, Unit, Never).
type PrimitiveTypeExpr struct {
	typeExprBase
	Name string
}

func (p *PrimitiveTypeExpr) typeExprNode() {}
func (p *PrimitiveTypeExpr) String() string { return p.Name }

// NamedTypeExpr is a possibly-generic reference to a struct, enum,
// class, or type parameter: `Foo`, `pkg.Foo`, `List[I32]`.
type NamedTypeExpr struct {
	typeExprBase
	ModulePath string // dotted path prefix, empty if unqualified
	Name       string
	TypeArgs   []TypeExpr
}

func (n *NamedTypeExpr) typeExprNode() {}
func (n *NamedTypeExpr) String() string {
	var sb strings.Builder
	if n.ModulePath != "" {
		sb.WriteString(n.ModulePath)
		sb.WriteString(".")
	}
	sb.WriteString(n.Name)
	if len(n.TypeArgs) > 0 {
		parts := make([]string, len(n.TypeArgs))
		for i, a := range n.TypeArgs {
			parts[i] = a.String()
		}
		sb.WriteString("[")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("]")
	}
	return sb.String()
}

// RefTypeExpr is `ref T` / `mut ref T`.
type RefTypeExpr struct {
	typeExprBase
	IsMut    bool
	Inner    TypeExpr
	Lifetime string // empty if elided
}

func (r *RefTypeExpr) typeExprNode() {}
func (r *RefTypeExpr) String() string {
	if r.IsMut {
		return "mut ref " + r.Inner.String()
	}
	return "ref " + r.Inner.String()
}

// PtrTypeExpr is `ptr T` / `mut ptr T`.
type PtrTypeExpr struct {
	typeExprBase
	IsMut bool
	Inner TypeExpr
}

func (p *PtrTypeExpr) typeExprNode() {}
func (p *PtrTypeExpr) String() string {
	if p.IsMut {
		return "mutptr " + p.Inner.String()
	}
	return "ptr " + p.Inner.String()
}

// ArrayTypeExpr is `[T; N]` with N a const expression (kept as an
// Expression here; the checker evaluates it to a constant usize).
type ArrayTypeExpr struct {
	typeExprBase
	Element TypeExpr
	Size    Expression
}

func (a *ArrayTypeExpr) typeExprNode() {}
func (a *ArrayTypeExpr) String() string {
	return fmt.Sprintf("[%s; %s]", a.Element.String(), a.Size.String())
}

// SliceTypeExpr is `[T]`.
type SliceTypeExpr struct {
	typeExprBase
	Element TypeExpr
}

func (s *SliceTypeExpr) typeExprNode() {}
func (s *SliceTypeExpr) String() string { return "[" + s.Element.String() + "]" }

// TupleTypeExpr is `(T1, T2, ...)`.
type TupleTypeExpr struct {
	typeExprBase
	Elements []TypeExpr
}

func (t *TupleTypeExpr) typeExprNode() {}
func (t *TupleTypeExpr) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// FuncTypeExpr is `func(T1, T2) -> R` used for function-pointer fields
// and parameters.
type FuncTypeExpr struct {
	typeExprBase
	Params     []TypeExpr
	ReturnType TypeExpr
}

func (f *FuncTypeExpr) typeExprNode() {}
func (f *FuncTypeExpr) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("func(%s) -> %s", strings.Join(parts, ", "), f.ReturnType.String())
}

// ClosureTypeExpr is the spelling of a closure value's type at a
// binding site, e.g. `|I32| -> I32`.
type ClosureTypeExpr struct {
	typeExprBase
	Params     []TypeExpr
	ReturnType TypeExpr
}

func (c *ClosureTypeExpr) typeExprNode() {}
func (c *ClosureTypeExpr) String() string {
	parts := make([]string, len(c.Params))
	for i, p := range c.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("|%s| -> %s", strings.Join(parts, ", "), c.ReturnType.String())
}

// DynBehaviorTypeExpr is `dyn Behavior[Args]`.
type DynBehaviorTypeExpr struct {
	typeExprBase
	BehaviorName string
	TypeArgs     []TypeExpr
}

func (d *DynBehaviorTypeExpr) typeExprNode() {}
func (d *DynBehaviorTypeExpr) String() string {
	parts := make([]string, len(d.TypeArgs))
	for i, a := range d.TypeArgs {
		parts[i] = a.String()
	}
	if len(parts) == 0 {
		return "dyn " + d.BehaviorName
	}
	return fmt.Sprintf("dyn %s[%s]", d.BehaviorName, strings.Join(parts, ", "))
}

// NewSpan builds a Span in file from a start and an end line/column
// pair.
func NewSpan(file string, startLine, startCol, endLine, endCol int) Span {
	return Span{File: file, Start: Pos{startLine, startCol}, End: Pos{endLine, endCol}}
}
