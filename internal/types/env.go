package types

import "github.com/tml-lang/tmlc/ast"

// FieldDef is a checked, ordered, named, typed struct/class field.
type FieldDef struct {
	Name       string
	Type       *Type
	Visibility ast.Visibility
}

// EnumVariantDef is a checked enum case: a name, an ordered payload
// type list, and (for bitflag enums) its power-of-two discriminant.
type EnumVariantDef struct {
	Name        string
	Payload     []*Type
	Discriminant int64
}

// StructDef is the checked form of ast.StructDecl, registered keyed by
// fully-qualified name (spec.md §3).
type StructDef struct {
	QualifiedName string
	TypeParams    []string
	ConstParams   []string
	Fields        []*FieldDef
	Derives       []ast.DeriveKind
	IsLibrary     bool // true when registered by an imported module, not the local unit
}

// EnumDef is the checked form of ast.EnumDecl.
type EnumDef struct {
	QualifiedName string
	TypeParams    []string
	ConstParams   []string
	Variants      []*EnumVariantDef
	Derives       []ast.DeriveKind
	IsFlags       bool
	FlagsWidth    int
	IsLibrary     bool
}

// ClassDef is the checked form of ast.ClassDecl.
type ClassDef struct {
	QualifiedName string
	BaseName      string // empty for a root class
	TypeParams    []string
	Fields        []*FieldDef
	Derives       []ast.DeriveKind
	IsLibrary     bool
}

// FuncSig is a checked function/method signature (spec.md §3). The
// qualified name for an impl method is "Type::method".
type FuncSig struct {
	Name        string
	Params      []*Type
	ParamNames  []string
	ReturnType  *Type
	TypeParams  []string
	ConstParams []string
	// ParamBounds maps a type parameter name to the behavior names its
	// `where` clause requires (spec.md §4.1 "Behavior satisfaction").
	ParamBounds map[string][]string
	IsAsync     bool
	Span        ast.Span
	IsLibrary   bool
}

// Method is one checked impl-block method: its signature plus the body
// AST needed by the monomorphizer/IR generator, and how its receiver is
// taken (by value, ref, or mut ref — spec.md §3's ImplBlock.methods).
type Method struct {
	Sig      *FuncSig
	SelfKind string // "", "this", "ref this", "mut ref this"
	Body     *ast.BlockStmt
}

// ImplBlock is a checked impl (inherent or behavior) registered against
// a target type.
type ImplBlock struct {
	TargetTypeName string
	BehaviorName   string // empty for an inherent impl
	TypeParams     []string
	WhereClauses   []ast.WhereClause
	Methods        []*Method
}

// BehaviorDef is the checked trait definition.
type BehaviorDef struct {
	Name          string
	TypeParams    []string
	Methods       []*FuncSig
	RequiredImpls []string
}

// ImplKey identifies one (Type, Behavior) satisfaction entry in the
// ImplIndex, per spec.md §3 ("ImplIndex: (TypeName, BehaviorName) →
// ImplBlock*").
type ImplKey struct {
	TypeName     string
	BehaviorName string
}

// Module is the checked form of ast.Module: a registry of everything
// declared at this dotted path.
type Module struct {
	Path        string
	Structs     map[string]*StructDef
	Enums       map[string]*EnumDef
	Classes     map[string]*ClassDef
	Functions   map[string]*FuncSig
	FuncBodies  map[string]*ast.BlockStmt
	Behaviors   map[string]*BehaviorDef
	TypeAliases map[string]*Type
	Imports     []string // resolved dotted paths this module imports
}

func newModule(path string) *Module {
	return &Module{
		Path:        path,
		Structs:     make(map[string]*StructDef),
		Enums:       make(map[string]*EnumDef),
		Classes:     make(map[string]*ClassDef),
		Functions:   make(map[string]*FuncSig),
		FuncBodies:  make(map[string]*ast.BlockStmt),
		Behaviors:   make(map[string]*BehaviorDef),
		TypeAliases: make(map[string]*Type),
	}
}

// TypeEnv is the resolved symbol/type environment owned exclusively by
// the checker (spec.md §3/§5). It holds the global module registry (a
// dotted-path map), the ImplIndex used for behavior-bound satisfaction,
// and the shared Interner every Type is created through.
type TypeEnv struct {
	Interner *Interner
	Modules  map[string]*Module
	Impls    map[ImplKey][]*ImplBlock

	// ImplsByType indexes inherent + behavior impl blocks by target
	// type name for fast method-resolution lookups (spec.md §4.1 step 4).
	ImplsByType map[string][]*ImplBlock
}

// NewTypeEnv creates an empty environment.
func NewTypeEnv() *TypeEnv {
	return &TypeEnv{
		Interner:    NewInterner(),
		Modules:     make(map[string]*Module),
		Impls:       make(map[ImplKey][]*ImplBlock),
		ImplsByType: make(map[string][]*ImplBlock),
	}
}

// Module returns the module at path, creating it if absent. Mutability
// is confined to declaration registration / checking of one module at a
// time, per spec.md §5's shared-resource policy.
func (e *TypeEnv) Module(path string) *Module {
	if m, ok := e.Modules[path]; ok {
		return m
	}
	m := newModule(path)
	e.Modules[path] = m
	return m
}

// RegisterImpl adds an impl block to both the behavior-satisfaction
// index and the per-type lookup index.
func (e *TypeEnv) RegisterImpl(impl *ImplBlock) {
	e.ImplsByType[impl.TargetTypeName] = append(e.ImplsByType[impl.TargetTypeName], impl)
	if impl.BehaviorName != "" {
		key := ImplKey{TypeName: impl.TargetTypeName, BehaviorName: impl.BehaviorName}
		e.Impls[key] = append(e.Impls[key], impl)
	}
}

// Satisfies reports whether typeName has a registered impl of
// behaviorName — the core behavior-satisfaction check of spec.md §4.1.
func (e *TypeEnv) Satisfies(typeName, behaviorName string) bool {
	_, ok := e.Impls[ImplKey{TypeName: typeName, BehaviorName: behaviorName}]
	return ok
}

// FindMethod looks up an inherent or behavior method named `method` on
// `typeName`, returning the first impl block that declares it. Used by
// resolveMethod step 4 in internal/check.
func (e *TypeEnv) FindMethod(typeName, method string) (*Method, *ImplBlock, bool) {
	for _, impl := range e.ImplsByType[typeName] {
		for _, m := range impl.Methods {
			if m.Sig.Name == method {
				return m, impl, true
			}
		}
	}
	return nil, nil, false
}
