package irgen

import (
	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"
)

// declareIntrinsics predeclares the handful of runtime entry points
// every lowered module may call regardless of what the source program
// does: allocation, reference counting, and panic/abort on an
// unreachable match arm. Grounded on runtime/tml_rt.c's exported C
// surface (tml_alloc/tml_rc_retain/tml_rc_release/tml_panic), the
// idiomatic counterpart of the teacher's declareGCFunctions /
// declareBuiltinFunctions split in internal/codegen/llvm.go.
func (g *Gen) declareIntrinsics() {
	g.declareExternal("tml_alloc", ptrType, lltypes.I64)
	g.declareExternal("tml_rc_retain", lltypes.Void, ptrType)
	g.declareExternal("tml_rc_release", lltypes.Void, ptrType)
	g.declareExternal("tml_panic", lltypes.Void, ptrType)
}

func (g *Gen) declareExternal(name string, ret lltypes.Type, paramTypes ...lltypes.Type) *ir.Func {
	params := make([]*ir.Param, len(paramTypes))
	for i, t := range paramTypes {
		params[i] = ir.NewParam("", t)
	}
	fn := g.Module.NewFunc(name, ret, params...)
	g.funcs[name] = fn
	return fn
}
