package check

import (
	"fmt"

	"github.com/tml-lang/tmlc/internal/types"
)

// ResolvedMethod is what method resolution produces: the signature to
// type-check the call against, plus enough provenance for later passes
// (the monomorphizer needs to know whether this was a builtin or an
// impl-backed dispatch).
type ResolvedMethod struct {
	Sig        *types.FuncSig
	Owner      *types.ImplBlock // nil for a builtin/synthetic method
	IsBuiltin  bool
	AutoDeref  int // number of smart-pointer layers unwrapped to find it
}

// resolveMethod implements the receiver-value part of the method
// resolution order: alias/reference unwrapping, impl lookup with the
// class base-chain walk, dyn-behavior substitution, the builtin
// primitive and container tables, closure call forms, and smart-pointer
// auto-deref (static dispatch on a bare type/class name is handled by
// the caller before a receiver value exists). A generic receiver is
// looked up by its parameter name in the impl index only; its where-
// clause behaviors are not consulted. Struct fields of function type
// are not tried as methods.
func (c *Context) resolveMethod(receiver *types.Type, method string, argc int) (*ResolvedMethod, error) {
	return c.resolveMethodDeref(receiver, method, argc, 0)
}

func (c *Context) resolveMethodDeref(receiver *types.Type, method string, argc, derefDepth int) (*ResolvedMethod, error) {
	t := expandAliasAndUnwrapRef(c, receiver)

	// Step 4/5: qualified ReceiverType::method against impls (inherent or
	// behavior), including class base-chain walk.
	if name := typeNameForImplLookup(t); name != "" {
		if m, impl, ok := c.Env.FindMethod(name, method); ok {
			return &ResolvedMethod{Sig: m.Sig, Owner: impl, AutoDeref: derefDepth}, nil
		}
		if t.Kind == types.KindClassType {
			for base := t.Base; base != nil; base = base.Base {
				if m, impl, ok := c.Env.FindMethod(base.Name, method); ok {
					return &ResolvedMethod{Sig: m.Sig, Owner: impl, AutoDeref: derefDepth}, nil
				}
			}
		}
	}

	// Step 6: DynBehaviorType receiver.
	if t.Kind == types.KindDynBehavior {
		if beh, ok := lookupBehavior(c, t.BehaviorName); ok {
			for _, sig := range beh.Methods {
				if sig.Name == method {
					return &ResolvedMethod{Sig: substituteBehaviorArgs(c, sig, beh, t.TypeArgs), AutoDeref: derefDepth}, nil
				}
			}
		}
	}

	// Step 8: builtin primitive method table.
	if t.Kind == types.KindPrimitive {
		if sig, ok := builtinPrimitiveMethod(c, t, method, argc); ok {
			return &ResolvedMethod{Sig: sig, IsBuiltin: true, AutoDeref: derefDepth}, nil
		}
	}

	// Step 9: Maybe/Outcome/List/array/slice/Ordering builtin table.
	if sig, ok := builtinContainerMethod(c, t, method); ok {
		return &ResolvedMethod{Sig: sig, IsBuiltin: true, AutoDeref: derefDepth}, nil
	}

	// Step 10: ClosureType/FuncType call/call_mut/call_once.
	if t.Kind == types.KindClosure || t.Kind == types.KindFunc {
		if method == "call" || method == "call_mut" || method == "call_once" {
			return &ResolvedMethod{Sig: &types.FuncSig{Name: method, Params: t.Params, ReturnType: t.ReturnType}, IsBuiltin: true, AutoDeref: derefDepth}, nil
		}
	}

	// Auto-deref through smart pointer families: retry on the single
	// inner type parameter.
	if t.Kind == types.KindNamed && types.IsSmartPointer(t.Name) && len(t.TypeArgs) == 1 {
		return c.resolveMethodDeref(t.TypeArgs[0], method, argc, derefDepth+1)
	}

	return nil, fmt.Errorf("no method %q found on type %s", method, receiver.String())
}

func expandAliasAndUnwrapRef(c *Context, t *types.Type) *types.Type {
	for t.Kind == types.KindNamed && len(t.TypeArgs) == 0 {
		if alias, ok := c.CurrentModule().TypeAliases[t.Name]; ok && alias != t {
			t = alias
			continue
		}
		break
	}
	for t.Kind == types.KindRef {
		t = t.Inner
	}
	return t
}

func typeNameForImplLookup(t *types.Type) string {
	switch t.Kind {
	case types.KindNamed, types.KindClassType, types.KindGeneric:
		return t.Name
	case types.KindPrimitive:
		return t.Prim.String()
	default:
		return ""
	}
}

func lookupBehavior(c *Context, name string) (*types.BehaviorDef, bool) {
	for _, m := range c.Env.Modules {
		if b, ok := m.Behaviors[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// substituteBehaviorArgs implements spec.md §9's "Implicit Self in
// behaviors" design note: an explicit substitution map {"Self": T} (here
// the dyn's own type arguments standing in for the behavior's type
// parameters) applied to the method signature.
func substituteBehaviorArgs(c *Context, sig *types.FuncSig, beh *types.BehaviorDef, dynArgs []*types.Type) *types.FuncSig {
	if len(dynArgs) == 0 || len(beh.TypeParams) == 0 {
		return sig
	}
	subst := make(map[string]*types.Type, len(beh.TypeParams))
	for i, p := range beh.TypeParams {
		if i < len(dynArgs) {
			subst[p] = dynArgs[i]
		}
	}
	return &types.FuncSig{
		Name:       sig.Name,
		Params:     substituteAll(c, sig.Params, subst),
		ParamNames: sig.ParamNames,
		ReturnType: substituteOne(c, sig.ReturnType, subst),
		IsAsync:    sig.IsAsync,
	}
}

func substituteAll(c *Context, ts []*types.Type, subst map[string]*types.Type) []*types.Type {
	out := make([]*types.Type, len(ts))
	for i, t := range ts {
		out[i] = substituteOne(c, t, subst)
	}
	return out
}

func substituteOne(c *Context, t *types.Type, subst map[string]*types.Type) *types.Type {
	if t == nil {
		return nil
	}
	if t.Kind == types.KindGeneric {
		if r, ok := subst[t.Name]; ok {
			return r
		}
	}
	return t
}
