package monomorph

import "github.com/tml-lang/tmlc/internal/types"

// Substitute replaces every KindGeneric leaf in t whose name is a key
// of subs with its bound concrete type, re-interning the result so the
// substituted type keeps participating in structural identity. This is
// the Go counterpart of
// _examples/original_source/compiler's types::substitute_type, called
// throughout gen_method_static_dispatch to specialize a generic
// method's parameter/return types for one instantiation.
func Substitute(in *types.Interner, t *types.Type, subs map[string]*types.Type) *types.Type {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case types.KindGeneric:
		if c, ok := subs[t.Name]; ok {
			return c
		}
		return t
	case types.KindNamed:
		if len(t.TypeArgs) == 0 {
			return t
		}
		return in.Named(t.ModulePath, t.Name, substituteAll(in, t.TypeArgs, subs))
	case types.KindClassType:
		base := t.Base
		if base != nil {
			base = Substitute(in, base, subs)
		}
		return in.ClassType(t.Name, base)
	case types.KindRef:
		return in.Ref(t.IsMut, Substitute(in, t.Inner, subs), t.Lifetime)
	case types.KindPtr:
		return in.Ptr(t.IsMut, Substitute(in, t.Inner, subs))
	case types.KindArray:
		return in.Array(Substitute(in, t.ElementArr, subs), t.Size)
	case types.KindSlice:
		return in.Slice(Substitute(in, t.ElementSlice, subs))
	case types.KindTuple:
		return in.Tuple(substituteAll(in, t.Elements, subs))
	case types.KindFunc:
		return in.Func(substituteAll(in, t.Params, subs), Substitute(in, t.ReturnType, subs))
	case types.KindClosure:
		return in.Closure(substituteAll(in, t.Params, subs), Substitute(in, t.ReturnType, subs))
	case types.KindDynBehavior:
		if len(t.TypeArgs) == 0 {
			return t
		}
		return in.DynBehavior(t.BehaviorName, substituteAll(in, t.TypeArgs, subs))
	default:
		return t
	}
}

func substituteAll(in *types.Interner, ts []*types.Type, subs map[string]*types.Type) []*types.Type {
	if len(ts) == 0 {
		return nil
	}
	out := make([]*types.Type, len(ts))
	for i, t := range ts {
		out[i] = Substitute(in, t, subs)
	}
	return out
}

// BindTypeParams zips typeParams (declaration order) with args
// (instantiation order) into the substitution map Substitute expects.
// Extra declared params with no corresponding arg are left unbound.
func BindTypeParams(typeParams []string, args []*types.Type) map[string]*types.Type {
	subs := make(map[string]*types.Type, len(typeParams))
	for i, name := range typeParams {
		if i < len(args) && args[i] != nil {
			subs[name] = args[i]
		}
	}
	return subs
}
