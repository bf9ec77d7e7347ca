// Package ast defines the typed input contract this compiler consumes:
// the tree the parser (out of scope here) is expected to produce. Every
// node carries a source Span so diagnostics and IR generation can point
// back at the original text.
//
// The checker (internal/check) annotates nodes in place by attaching a
// resolved types.Type to each Expression via SetTypePtr/GetTypePtr; nothing in
// this package depends on internal/types; it depends on nothing but the
// standard library.
package ast

import "fmt"

// Pos is a single source location, 1-indexed like the rest of the
// toolchain's diagnostics.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// Span is a half-open range [Start, End) within a single file.
type Span struct {
	File  string
	Start Pos
	End   Pos
}

func (s Span) String() string {
	if s.File == "" {
		return s.Start.String()
	}
	return fmt.Sprintf("%s:%s", s.File, s.Start)
}

// Node is the base interface implemented by every AST node.
type Node interface {
	Span() Span
	String() string
}

// Expression is any node that yields a value. TypePtr is an opaque
// pointer the checker fills in (it is a *types.Type wrapped behind an
// interface{} so this package never imports internal/types).
type Expression interface {
	Node
	expressionNode()
	GetTypePtr() any
	SetTypePtr(t any)
}

// Statement is any node that performs an action without itself being a
// value-producing expression (though it may wrap one, e.g. ExprStmt).
type Statement interface {
	Node
	statementNode()
}

// Decl is any top-level or nested declaration (struct, enum, class,
// behavior, impl, function, type alias).
type Decl interface {
	Node
	declNode()
	DeclName() string
}

// exprBase is embedded by concrete expression nodes to supply the
// TypePtr plumbing without repeating it everywhere.
type exprBase struct {
	span Span
	typ  any
}

func (e *exprBase) Span() Span        { return e.span }
func (e *exprBase) GetTypePtr() any    { return e.typ }
func (e *exprBase) SetTypePtr(t any)   { e.typ = t }

// Module is a single parsed, un-type-checked compilation unit: a dotted
// import path plus its top-level declarations. Mirrors spec.md §3's
// Module entity; the global module registry (path -> *Module) lives in
// internal/types (TypeEnv.Modules), not here, so this package stays a
// pure data contract.
type Module struct {
	SpanValue  Span
	Path       string
	Imports    []*Import
	Structs    []*StructDecl
	Enums      []*EnumDecl
	Classes    []*ClassDecl
	Functions  []*FuncDecl
	Behaviors  []*BehaviorDecl
	Impls      []*ImplDecl
	TypeAliases []*TypeAliasDecl
}

func (m *Module) Span() Span   { return m.SpanValue }
func (m *Module) String() string { return fmt.Sprintf("module %s", m.Path) }

// Import is a single `import a.b.c;` or `import a.b.c as alias;` clause.
type Import struct {
	SpanValue Span
	Path      string
	Alias     string // empty if not aliased
}

func (i *Import) Span() Span     { return i.SpanValue }
func (i *Import) String() string {
	if i.Alias != "" {
		return fmt.Sprintf("import %s as %s", i.Path, i.Alias)
	}
	return fmt.Sprintf("import %s", i.Path)
}
