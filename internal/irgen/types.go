package irgen

import (
	"fmt"

	lltypes "github.com/llir/llvm/ir/types"

	"github.com/tml-lang/tmlc/internal/types"
)

// ptrType is the opaque pointer representation used for every
// reference, raw pointer, smart-pointer, and heap-allocated aggregate,
// matching _examples/original_source/compiler's "ptr" LLVM type used
// throughout method.cpp/method_static_dispatch.cpp for receivers and
// constructor returns.
var ptrType = lltypes.NewPointer(lltypes.I8)

// structLayout records a lowered struct/class/enum's LLVM type plus
// its field name -> index map, needed by FieldExpr lowering.
type structLayout struct {
	llvm        *lltypes.StructType
	fieldOffset map[string]int
}

// llvmType maps a checked Type to its LLVM representation. Aggregates
// (named structs/enums/classes) lower to ptrType, mirroring the
// teacher's "%struct.Name" handles used opaquely at call sites.
// declareStruct builds and memoizes a struct body with its field
// indices in g.structs, which FieldExpr lowering reads; nothing in this
// package calls declareStruct, so g.structs stays empty and
// lowerFieldAddr finds no layout.
func (g *Gen) llvmType(t *types.Type) (lltypes.Type, error) {
	if t == nil {
		return lltypes.Void, nil
	}
	switch t.Kind {
	case types.KindPrimitive:
		return primitiveLLVMType(t.Prim), nil
	case types.KindNamed, types.KindClassType:
		return ptrType, nil
	case types.KindRef, types.KindPtr:
		return ptrType, nil
	case types.KindArray, types.KindSlice, types.KindTuple:
		return ptrType, nil
	case types.KindFunc, types.KindClosure:
		return ptrType, nil
	case types.KindDynBehavior:
		return ptrType, nil
	case types.KindGeneric:
		return nil, fmt.Errorf("irgen: unresolved generic parameter %q reached codegen", t.Name)
	default:
		return nil, fmt.Errorf("irgen: unhandled type kind %v", t.Kind)
	}
}

func primitiveLLVMType(p types.Primitive) lltypes.Type {
	switch p {
	case types.I8, types.U8:
		return lltypes.I8
	case types.I16, types.U16:
		return lltypes.I16
	case types.I32, types.U32:
		return lltypes.I32
	case types.I64, types.U64:
		return lltypes.I64
	case types.I128, types.U128:
		return lltypes.I128
	case types.F32:
		return lltypes.Float
	case types.F64:
		return lltypes.Double
	case types.Bool:
		return lltypes.I1
	case types.Char:
		return lltypes.I32
	case types.Str:
		return ptrType
	case types.Unit, types.Never:
		return lltypes.Void
	default:
		return lltypes.Void
	}
}

// declareStruct registers name's LLVM struct body from its checked
// field list, memoizing the result so repeated references (e.g. a
// self-referential linked-list node behind a pointer) share one
// lltypes.StructType.
func (g *Gen) declareStruct(name string, fields []*types.FieldDef) (*structLayout, error) {
	if l, ok := g.structs[name]; ok {
		return l, nil
	}
	fieldTypes := make([]lltypes.Type, len(fields))
	offsets := make(map[string]int, len(fields))
	for i, f := range fields {
		lt, err := g.llvmType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s of %s: %w", f.Name, name, err)
		}
		fieldTypes[i] = lt
		offsets[f.Name] = i
	}
	st := lltypes.NewStruct(fieldTypes...)
	st.SetName(name)
	g.Module.NewTypeDef(name, st)
	layout := &structLayout{llvm: st, fieldOffset: offsets}
	g.structs[name] = layout
	return layout, nil
}
