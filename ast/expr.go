package ast

import "strings"

// Identifier is a bare name reference, resolved by the checker per
// spec.md §4.1's name-resolution order (local → enclosing impl/this →
// module → imports → global registry).
type Identifier struct {
	exprBase
	Name string
}

func (i *Identifier) expressionNode() {}
func (i *Identifier) String() string  { return i.Name }

// QualifiedIdent is `A::B` (module, or static-method/associated-item
// access on a type, per spec.md §4.1).
type QualifiedIdent struct {
	exprBase
	Qualifier string
	Name      string
}

func (q *QualifiedIdent) expressionNode() {}
func (q *QualifiedIdent) String() string  { return q.Qualifier + "::" + q.Name }

// Literals.

type IntLiteral struct {
	exprBase
	Value int64
	Raw   string
}

func (l *IntLiteral) expressionNode() {}
func (l *IntLiteral) String() string  { return l.Raw }

type FloatLiteral struct {
	exprBase
	Value float64
	Raw   string
}

func (l *FloatLiteral) expressionNode() {}
func (l *FloatLiteral) String() string  { return l.Raw }

type StringLiteral struct {
	exprBase
	Value string
}

func (l *StringLiteral) expressionNode() {}
func (l *StringLiteral) String() string  { return "\"" + l.Value + "\"" }

type BoolLiteral struct {
	exprBase
	Value bool
}

func (l *BoolLiteral) expressionNode() {}
func (l *BoolLiteral) String() string {
	if l.Value {
		return "true"
	}
	return "false"
}

type CharLiteral struct {
	exprBase
	Value rune
}

func (l *CharLiteral) expressionNode() {}
func (l *CharLiteral) String() string  { return "'" + string(l.Value) + "'" }

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	exprBase
	Elements []Expression
}

func (a *ArrayLiteral) expressionNode() {}
func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// TupleLiteral is `(e1, e2, ...)`.
type TupleLiteral struct {
	exprBase
	Elements []Expression
}

func (t *TupleLiteral) expressionNode() {}
func (t *TupleLiteral) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// StructLiteral is `Name { field: value, ... }`.
type StructLiteral struct {
	exprBase
	StructName string
	TypeArgs   []TypeExpr
	Fields     []StructLiteralField
}

type StructLiteralField struct {
	Name  string
	Value Expression
}

func (s *StructLiteral) expressionNode() {}
func (s *StructLiteral) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = f.Name + ": " + f.Value.String()
	}
	return s.StructName + " { " + strings.Join(parts, ", ") + " }"
}

// BinaryExpr covers arithmetic, comparison, bitwise, and short-circuit
// logical operators; Op is the textual operator (e.g. "+", "==", "and").
type BinaryExpr struct {
	exprBase
	Op    string
	Left  Expression
	Right Expression
}

func (b *BinaryExpr) expressionNode() {}
func (b *BinaryExpr) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}

// UnaryExpr covers negation, logical not, bitwise not, address-of, and
// deref.
type UnaryExpr struct {
	exprBase
	Op      string // "-", "not", "~", "&", "&mut", "*"
	Operand Expression
}

func (u *UnaryExpr) expressionNode() {}
func (u *UnaryExpr) String() string  { return u.Op + u.Operand.String() }

// CallExpr is `callee[TypeArgs](args)`; TypeArgs is the explicit
// turbofish list (spec.md §4.1's inference override), empty when the
// call relies on inference.
type CallExpr struct {
	exprBase
	Callee   Expression
	TypeArgs []TypeExpr
	Args     []Expression
}

func (c *CallExpr) expressionNode() {}
func (c *CallExpr) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// MethodCallExpr is `receiver.method[TypeArgs](args)`.
type MethodCallExpr struct {
	exprBase
	Receiver Expression
	Method   string
	TypeArgs []TypeExpr
	Args     []Expression
}

func (m *MethodCallExpr) expressionNode() {}
func (m *MethodCallExpr) String() string {
	parts := make([]string, len(m.Args))
	for i, a := range m.Args {
		parts[i] = a.String()
	}
	return m.Receiver.String() + "." + m.Method + "(" + strings.Join(parts, ", ") + ")"
}

// FieldExpr is `receiver.field` (a single hop; chains are nested
// FieldExprs, letting auto-deref lowering transit smart pointers one
// hop at a time per spec.md §4.3).
type FieldExpr struct {
	exprBase
	Receiver Expression
	Field    string
}

func (f *FieldExpr) expressionNode() {}
func (f *FieldExpr) String() string  { return f.Receiver.String() + "." + f.Field }

// IndexExpr is `receiver[index]`.
type IndexExpr struct {
	exprBase
	Receiver Expression
	Index    Expression
}

func (i *IndexExpr) expressionNode() {}
func (i *IndexExpr) String() string  { return i.Receiver.String() + "[" + i.Index.String() + "]" }

// ClosureParam is one `|name: Type|` closure parameter; Type may be
// nil when inferred from context.
type ClosureParam struct {
	Name string
	Type TypeExpr
}

// ClosureExpr is `|params| -> RetType body` (a block body or a single
// expression). Captures lists the outer names the closure reads or
// mutates; the checker in internal/check does not fill it in.
type ClosureExpr struct {
	exprBase
	Params     []ClosureParam
	ReturnType TypeExpr // nil if inferred
	Body       *BlockStmt
	Captures   []string
}

func (c *ClosureExpr) expressionNode() {}
func (c *ClosureExpr) String() string {
	parts := make([]string, len(c.Params))
	for i, p := range c.Params {
		parts[i] = p.Name
	}
	return "|" + strings.Join(parts, ", ") + "| " + c.Body.String()
}

// WhenExpr is the pattern-matching expression form (spec.md §4.3).
type WhenExpr struct {
	exprBase
	Scrutinee Expression
	Arms      []*MatchArm
}

func (w *WhenExpr) expressionNode() {}
func (w *WhenExpr) String() string  { return "when " + w.Scrutinee.String() + " { ... }" }

// IfExpr is `if cond { then } else { else }` used in expression
// position (its statement-position twin is IfStmt).
type IfExpr struct {
	exprBase
	Cond Expression
	Then Expression
	Else Expression
}

func (i *IfExpr) expressionNode() {}
func (i *IfExpr) String() string {
	return "if " + i.Cond.String() + " " + i.Then.String() + " else " + i.Else.String()
}

// TernaryExpr is `cond ? then : else`, structurally identical to IfExpr
// but always produces a value via a stack slot per spec.md §4.3.
type TernaryExpr struct {
	exprBase
	Cond Expression
	Then Expression
	Else Expression
}

func (t *TernaryExpr) expressionNode() {}
func (t *TernaryExpr) String() string {
	return t.Cond.String() + " ? " + t.Then.String() + " : " + t.Else.String()
}

// AwaitExpr is `expr.await` inside an async function.
type AwaitExpr struct {
	exprBase
	Value Expression
}

func (a *AwaitExpr) expressionNode() {}
func (a *AwaitExpr) String() string  { return a.Value.String() + ".await" }

// BlockExpr wraps a block used in expression position (its trailing
// statement, if an ExprStmt, supplies the value).
type BlockExpr struct {
	exprBase
	Block *BlockStmt
}

func (b *BlockExpr) expressionNode() {}
func (b *BlockExpr) String() string  { return b.Block.String() }
