package check

import "github.com/tml-lang/tmlc/internal/types"

// ScopeKind identifies the kind of lexical scope, used for debugging
// and for deciding whether `this` is in play.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeFunction
	ScopeImplMethod
	ScopeBlock
)

// Scope is one lexical scope for local name resolution, chained to its
// parent. Grounded on internal/semantic/pass_context.go's Scope, but
// name resolution here is case-sensitive (TML, unlike DWScript, does
// not normalize identifiers).
type Scope struct {
	Symbols map[string]*types.Type
	Parent  *Scope
	Kind    ScopeKind

	// SelfType is set for ScopeImplMethod/ScopeFunction scopes that have
	// a receiver, used by name resolution step 2 of spec.md §4.1
	// ("enclosing impl's type parameters and `this`").
	SelfType *types.Type
}

// NewScope creates a scope chained to parent.
func NewScope(kind ScopeKind, parent *Scope) *Scope {
	return &Scope{Kind: kind, Symbols: make(map[string]*types.Type), Parent: parent}
}

// Define binds name to typ in this scope, shadowing any outer binding.
func (s *Scope) Define(name string, typ *types.Type) {
	s.Symbols[name] = typ
}

// Lookup searches this scope only.
func (s *Scope) Lookup(name string) (*types.Type, bool) {
	t, ok := s.Symbols[name]
	return t, ok
}

// LookupChain searches this scope then each parent in turn, implementing
// the "local scope" and "enclosing impl ... this" steps of spec.md
// §4.1's name resolution order.
func (s *Scope) LookupChain(name string) (*types.Type, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if t, ok := sc.Symbols[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// EnclosingSelf walks outward for the nearest scope carrying a receiver
// type, used to resolve bare `this`.
func (s *Scope) EnclosingSelf() (*types.Type, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if sc.SelfType != nil {
			return sc.SelfType, true
		}
	}
	return nil, false
}
