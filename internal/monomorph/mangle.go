// Package monomorph turns the generic struct/enum/class/impl bodies
// the checker registered into one concrete symbol per type
// instantiation actually used by a program, mirroring the queue-driven
// instantiation the teacher's bytecode compiler does for plain
// functions but generalized to generic type arguments.
//
// Grounded on
// _examples/original_source/compiler/src/codegen/llvm/expr/method_static_dispatch.cpp's
// mangled-name scheme (parse_mangled_type_string / the "__"-separated
// suffix construction inline in gen_method_static_dispatch) and on
// spec.md §4.2's "deterministic mangled names, fixpoint worklist"
// requirement.
package monomorph

import (
	"strconv"
	"strings"

	"github.com/tml-lang/tmlc/internal/types"
)

// MangleType renders t into the flat, recoverable suffix the original
// LLVM codegen embeds in instantiated symbol names: primitives by
// name, ptr_/mutptr_ prefixes for pointer types, and a "__"-joined
// chain of argument suffixes for named types with type arguments.
func MangleType(t *types.Type) string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case types.KindPrimitive:
		return t.Prim.String()
	case types.KindPtr:
		if t.IsMut {
			return "mutptr_" + MangleType(t.Inner)
		}
		return "ptr_" + MangleType(t.Inner)
	case types.KindRef:
		if t.IsMut {
			return "mutref_" + MangleType(t.Inner)
		}
		return "ref_" + MangleType(t.Inner)
	case types.KindArray:
		return "arr" + strconv.FormatInt(t.Size, 10) + "_" + MangleType(t.ElementArr)
	case types.KindSlice:
		return "slice_" + MangleType(t.ElementSlice)
	case types.KindNamed, types.KindClassType:
		if len(t.TypeArgs) == 0 {
			return t.Name
		}
		parts := make([]string, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			parts[i] = MangleType(a)
		}
		return t.Name + "__" + strings.Join(parts, "__")
	case types.KindTuple:
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			parts[i] = MangleType(e)
		}
		return "tuple_" + strings.Join(parts, "_")
	case types.KindDynBehavior:
		return "dyn_" + t.BehaviorName
	default:
		return t.String()
	}
}

// MangleTypeArgs mangles a type-argument list into the suffix
// appended after a base name, e.g. ["I32", "F64"] -> "__I32__F64".
func MangleTypeArgs(args []*types.Type) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = MangleType(a)
	}
	return "__" + strings.Join(parts, "__")
}

// SymbolName builds the final emitted function name for an
// instantiation: "@tml_" + optional per-suite prefix + mangled type +
// "_" + method, matching gen_method_static_dispatch's fn_name
// construction (func_name/mangled_method_name there).
func SymbolName(prefix, typeName string, typeArgs []*types.Type, method string) string {
	name := "@tml_" + prefix + typeName + MangleTypeArgs(typeArgs)
	if method != "" {
		name += "_" + method
	}
	return name
}
