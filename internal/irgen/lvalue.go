package irgen

import (
	"github.com/llir/llvm/ir/value"

	"github.com/tml-lang/tmlc/ast"
)

// lowerLValue returns the address an assignment target should store
// into: a local's own alloca for an Identifier, or a computed GEP for
// a field/index target. Returns nil for any target shape codegen
// cannot yet address (e.g. through a closure capture cell).
func (g *Gen) lowerLValue(e ast.Expression) value.Value {
	switch t := e.(type) {
	case *ast.Identifier:
		if l, ok := g.vars[t.Name]; ok {
			return l.ptr
		}
		return nil
	case *ast.FieldExpr:
		return g.lowerFieldAddr(t)
	case *ast.IndexExpr:
		base := g.lowerExpr(t.Receiver)
		idx := g.lowerExpr(t.Index)
		elemTy, err := g.llvmType(exprType(t))
		if err != nil {
			return nil
		}
		return g.block.NewGetElementPtr(elemTy, base, idx)
	case *ast.UnaryExpr:
		if t.Op == "*" {
			return g.lowerExpr(t.Operand)
		}
		return nil
	default:
		return nil
	}
}

// lowerLValueAddr is the `&`/`&mut` operator: the address of an
// expression without loading through it. Identical to lowerLValue
// except it falls back to a throwaway alloca for non-addressable
// expressions (literals, call results) so `&(a + b)`-shaped code still
// lowers to something usable, matching the teacher's habit of never
// failing codegen outright on an edge case it hasn't special-cased.
func (g *Gen) lowerLValueAddr(e ast.Expression) value.Value {
	if addr := g.lowerLValue(e); addr != nil {
		return addr
	}
	v, ty := g.lowerExprTyped(e)
	llty, err := g.llvmType(ty)
	if err != nil {
		return nil
	}
	slot := g.block.NewAlloca(llty)
	g.block.NewStore(v, slot)
	return slot
}
