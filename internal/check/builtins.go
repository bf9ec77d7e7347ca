package check

import "github.com/tml-lang/tmlc/internal/types"

// builtinPrimitiveMethod implements spec.md §4.1 step 8: the fixed
// table of builtin methods on primitive receivers. Arithmetic on
// numerics returns Self; comparison returns Bool; cmp returns Ordering;
// partial_cmp returns Maybe[Ordering]; to_string/debug_string return
// Str; bitwise on integers returns Self; checked_*/saturating_*/
// wrapping_* on integers follow the checked/saturating/wrapping tables.
func builtinPrimitiveMethod(c *Context, self *types.Type, method string, argc int) (*types.FuncSig, bool) {
	in := c.Env.Interner
	isNumeric := self.Prim.IsInteger() || self.Prim.IsFloat()
	isInteger := self.Prim.IsInteger()

	switch method {
	case "add", "sub", "mul", "div", "rem", "bit_and", "bit_or", "bit_xor", "shl", "shr":
		isBitwise := method == "bit_and" || method == "bit_or" || method == "bit_xor" || method == "shl" || method == "shr"
		if !isNumeric || (isBitwise && !isInteger) {
			return nil, false
		}
		return &types.FuncSig{Name: method, Params: []*types.Type{self}, ReturnType: self}, true

	case "eq", "ne", "lt", "le", "gt", "ge":
		return &types.FuncSig{Name: method, Params: []*types.Type{self}, ReturnType: in.Bool()}, true

	case "cmp":
		return &types.FuncSig{Name: method, Params: []*types.Type{self}, ReturnType: in.Named("", "Ordering", nil)}, true

	case "partial_cmp":
		return &types.FuncSig{Name: method, Params: []*types.Type{self}, ReturnType: in.Named("", "Maybe", []*types.Type{in.Named("", "Ordering", nil)})}, true

	case "to_string", "debug_string":
		return &types.FuncSig{Name: method, ReturnType: in.Str()}, true

	case "checked_add", "checked_sub", "checked_mul", "checked_div":
		if !isInteger {
			return nil, false
		}
		return &types.FuncSig{Name: method, Params: []*types.Type{self}, ReturnType: in.Named("", "Maybe", []*types.Type{self})}, true

	case "saturating_add", "saturating_sub", "saturating_mul":
		if !isInteger {
			return nil, false
		}
		return &types.FuncSig{Name: method, Params: []*types.Type{self}, ReturnType: self}, true

	case "wrapping_add", "wrapping_sub", "wrapping_mul":
		if !isInteger {
			return nil, false
		}
		return &types.FuncSig{Name: method, Params: []*types.Type{self}, ReturnType: self}, true

	default:
		return nil, false
	}
}

// builtinContainerMethod implements spec.md §4.1 step 9: the fixed
// method table for Maybe[T]/Outcome[T,E]/List[T]/arrays/slices/Ordering.
func builtinContainerMethod(c *Context, t *types.Type, method string) (*types.FuncSig, bool) {
	in := c.Env.Interner

	switch {
	case t.Kind == types.KindNamed && t.Name == "Maybe" && len(t.TypeArgs) == 1:
		inner := t.TypeArgs[0]
		switch method {
		case "is_some":
			return &types.FuncSig{Name: method, ReturnType: in.Bool()}, true
		case "is_none":
			return &types.FuncSig{Name: method, ReturnType: in.Bool()}, true
		case "unwrap", "unwrap_or_default":
			return &types.FuncSig{Name: method, ReturnType: inner}, true
		case "unwrap_or":
			return &types.FuncSig{Name: method, Params: []*types.Type{inner}, ReturnType: inner}, true
		}

	case t.Kind == types.KindNamed && t.Name == "Outcome" && len(t.TypeArgs) == 2:
		okT, errT := t.TypeArgs[0], t.TypeArgs[1]
		switch method {
		case "is_ok", "is_err":
			return &types.FuncSig{Name: method, ReturnType: in.Bool()}, true
		case "unwrap":
			return &types.FuncSig{Name: method, ReturnType: okT}, true
		case "unwrap_err":
			return &types.FuncSig{Name: method, ReturnType: errT}, true
		}

	case t.Kind == types.KindNamed && t.Name == "List" && len(t.TypeArgs) == 1:
		elem := t.TypeArgs[0]
		switch method {
		case "len":
			return &types.FuncSig{Name: method, ReturnType: in.Primitive(types.U64)}, true
		case "get":
			return &types.FuncSig{Name: method, Params: []*types.Type{in.Primitive(types.U64)}, ReturnType: in.Named("", "Maybe", []*types.Type{elem})}, true
		case "push":
			return &types.FuncSig{Name: method, Params: []*types.Type{elem}, ReturnType: in.Unit()}, true
		case "pop":
			return &types.FuncSig{Name: method, ReturnType: in.Named("", "Maybe", []*types.Type{elem})}, true
		}

	case t.Kind == types.KindArray || t.Kind == types.KindSlice:
		elem := elementOf(t)
		switch method {
		case "len":
			return &types.FuncSig{Name: method, ReturnType: in.Primitive(types.U64)}, true
		case "get":
			return &types.FuncSig{Name: method, Params: []*types.Type{in.Primitive(types.U64)}, ReturnType: in.Named("", "Maybe", []*types.Type{elem})}, true
		}

	case t.Kind == types.KindNamed && t.Name == "Ordering":
		switch method {
		case "is_lt", "is_eq", "is_gt":
			return &types.FuncSig{Name: method, ReturnType: in.Bool()}, true
		case "reverse":
			return &types.FuncSig{Name: method, ReturnType: t}, true
		}
	}
	return nil, false
}

func elementOf(t *types.Type) *types.Type {
	if t.Kind == types.KindArray {
		return t.ElementArr
	}
	return t.ElementSlice
}
