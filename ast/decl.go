package ast

import "strings"

// Visibility mirrors spec.md §4.1's four-level class member visibility.
type Visibility int

const (
	VisPrivate Visibility = iota
	VisProtected
	VisInternal
	VisPublic
)

func (v Visibility) String() string {
	switch v {
	case VisPrivate:
		return "private"
	case VisProtected:
		return "protected"
	case VisInternal:
		return "internal"
	default:
		return "public"
	}
}

// DeriveKind enumerates the standard behaviors §3 says a declaration
// can synthesize via `derive`.
type DeriveKind int

const (
	DeriveReflect DeriveKind = iota
	DerivePartialEq
	DeriveDuplicate
	DeriveHash
	DeriveDefault
	DerivePartialOrd
	DeriveOrd
	DeriveDebug
	DeriveDisplay
	DeriveSerialize
	DeriveDeserialize
	DeriveFromStr
)

// TypeParam is one entry of a declaration's `[T, U: Behavior]` list.
type TypeParam struct {
	Name         string
	WhereClauses []string // behavior names this parameter must satisfy
}

// ConstParam is a `const N: Usize` generic parameter.
type ConstParam struct {
	Name string
	Type TypeExpr
}

// Field is one ordered, named, typed struct/class member.
type Field struct {
	SpanValue  Span
	Name       string
	Type       TypeExpr
	Visibility Visibility
}

// EnumVariant is one ordered enum case: a name plus an ordered list of
// payload types (empty for a unit variant).
type EnumVariant struct {
	SpanValue Span
	Name      string
	Payload   []TypeExpr
}

// StructDecl registers a struct keyed by its fully-qualified name once
// checked; see spec.md §3 "StructDef".
type StructDecl struct {
	SpanValue   Span
	Name        string
	TypeParams  []TypeParam
	ConstParams []ConstParam
	Fields      []*Field
	Derives     []DeriveKind
}

func (s *StructDecl) Span() Span      { return s.SpanValue }
func (s *StructDecl) declNode()       {}
func (s *StructDecl) DeclName() string { return s.Name }
func (s *StructDecl) String() string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name + ": " + f.Type.String()
	}
	return "struct " + s.Name + " { " + strings.Join(names, ", ") + " }"
}

// EnumDecl registers an enum. IsFlags marks an `@flags(U8)` bitflag
// enum; FlagsWidth is the underlying integer's bit width (0 otherwise).
type EnumDecl struct {
	SpanValue   Span
	Name        string
	TypeParams  []TypeParam
	ConstParams []ConstParam
	Variants    []*EnumVariant
	Derives     []DeriveKind
	IsFlags     bool
	FlagsWidth  int // 8, 16, 32, 64, or 128
}

func (e *EnumDecl) Span() Span      { return e.SpanValue }
func (e *EnumDecl) declNode()       {}
func (e *EnumDecl) DeclName() string { return e.Name }
func (e *EnumDecl) String() string {
	names := make([]string, len(e.Variants))
	for i, v := range e.Variants {
		names[i] = v.Name
	}
	return "enum " + e.Name + " { " + strings.Join(names, ", ") + " }"
}

// ClassDecl registers a class; BaseName is empty for a root class.
type ClassDecl struct {
	SpanValue  Span
	Name       string
	BaseName   string
	TypeParams []TypeParam
	Fields     []*Field
	Derives    []DeriveKind
}

func (c *ClassDecl) Span() Span      { return c.SpanValue }
func (c *ClassDecl) declNode()       {}
func (c *ClassDecl) DeclName() string { return c.Name }
func (c *ClassDecl) String() string {
	if c.BaseName != "" {
		return "class " + c.Name + "(" + c.BaseName + ")"
	}
	return "class " + c.Name
}

// Param is one function/method parameter. SelfKind is non-empty only
// for a method's first parameter (`this`, `ref this`, `mut ref this`).
type Param struct {
	Name     string
	Type     TypeExpr
	SelfKind string
}

// FuncDecl is a free function or an impl/class method body. Qualified
// name for impl methods is synthesized by the checker as "Type::method"
// per spec.md §3.
type FuncDecl struct {
	SpanValue  Span
	Name       string
	TypeParams []TypeParam
	ConstParams []ConstParam
	Params     []*Param
	ReturnType TypeExpr
	IsAsync    bool
	Body       *BlockStmt
	Visibility Visibility
}

func (f *FuncDecl) Span() Span      { return f.SpanValue }
func (f *FuncDecl) declNode()       {}
func (f *FuncDecl) DeclName() string { return f.Name }
func (f *FuncDecl) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.Name + ": " + paramTypeString(p)
	}
	prefix := "func "
	if f.IsAsync {
		prefix = "async func "
	}
	return prefix + f.Name + "(" + strings.Join(parts, ", ") + ")"
}

func paramTypeString(p *Param) string {
	if p.Type == nil {
		return p.SelfKind
	}
	return p.Type.String()
}

// BehaviorDecl is a trait definition: a named set of method signatures
// plus behaviors it requires as supertraits.
type BehaviorDecl struct {
	SpanValue     Span
	Name          string
	TypeParams    []TypeParam
	Methods       []*FuncSigDecl
	RequiredImpls []string
}

func (b *BehaviorDecl) Span() Span      { return b.SpanValue }
func (b *BehaviorDecl) declNode()       {}
func (b *BehaviorDecl) DeclName() string { return b.Name }
func (b *BehaviorDecl) String() string   { return "behavior " + b.Name }

// FuncSigDecl is a signature without a body, used inside BehaviorDecl.
type FuncSigDecl struct {
	SpanValue  Span
	Name       string
	TypeParams []TypeParam
	Params     []*Param
	ReturnType TypeExpr
	IsAsync    bool
}

func (f *FuncSigDecl) Span() Span { return f.SpanValue }
func (f *FuncSigDecl) String() string { return "func " + f.Name }

// ImplDecl is `impl[T] Behavior for Type where ...` or an inherent
// `impl Type { ... }` (BehaviorName empty in the inherent case).
type ImplDecl struct {
	SpanValue    Span
	TargetType   string
	BehaviorName string // empty for an inherent impl block
	TypeParams   []TypeParam
	WhereClauses []WhereClause
	Methods      []*FuncDecl
}

func (i *ImplDecl) Span() Span { return i.SpanValue }
func (i *ImplDecl) declNode()  {}
func (i *ImplDecl) DeclName() string {
	if i.BehaviorName != "" {
		return i.BehaviorName + " for " + i.TargetType
	}
	return i.TargetType
}
func (i *ImplDecl) String() string { return "impl " + i.DeclName() }

// WhereClause is one `T: Behavior1 + Behavior2` bound.
type WhereClause struct {
	TypeParam  string
	Behaviors  []string
}

// TypeAliasDecl is `type Name[T] = SomeType;`.
type TypeAliasDecl struct {
	SpanValue  Span
	Name       string
	TypeParams []TypeParam
	Target     TypeExpr
}

func (t *TypeAliasDecl) Span() Span      { return t.SpanValue }
func (t *TypeAliasDecl) declNode()       {}
func (t *TypeAliasDecl) DeclName() string { return t.Name }
func (t *TypeAliasDecl) String() string   { return "type " + t.Name + " = " + t.Target.String() }
