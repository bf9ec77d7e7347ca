package irgen

import (
	"github.com/llir/llvm/ir/value"

	"github.com/tml-lang/tmlc/ast"
	"github.com/tml-lang/tmlc/internal/types"
)

// lowerStmt lowers one statement, following the same node-kind switch
// internal/check/body.go's checkStmt and internal/monomorph's
// walkStmt use, so the three passes stay easy to read side by side.
func (g *Gen) lowerStmt(s ast.Statement, expectedReturn *types.Type) {
	switch st := s.(type) {
	case *ast.LetStmt:
		g.lowerLet(st)
	case *ast.ExprStmt:
		g.lowerExpr(st.Value)
	case *ast.AssignStmt:
		g.lowerAssign(st)
	case *ast.IfStmt:
		g.lowerIfStmt(st, expectedReturn)
	case *ast.WhileStmt:
		g.lowerWhile(st, expectedReturn)
	case *ast.LoopStmt:
		g.lowerLoop(st, expectedReturn)
	case *ast.ForStmt:
		g.lowerFor(st, expectedReturn)
	case *ast.ReturnStmt:
		g.lowerReturn(st, expectedReturn)
	case *ast.ThrowStmt:
		g.lowerThrow(st)
	case *ast.BreakStmt:
		if len(g.breakTo) > 0 {
			g.block.NewBr(g.breakTo[len(g.breakTo)-1])
		}
	case *ast.ContinueStmt:
		if len(g.contTo) > 0 {
			g.block.NewBr(g.contTo[len(g.contTo)-1])
		}
	case *ast.BlockStmt:
		g.lowerBlock(st, expectedReturn)
	case *ast.DeclStmt:
		// local nested declarations are not lowered as callable symbols
		// yet; they carry no runtime effect on their own.
	}
}

func (g *Gen) lowerLet(st *ast.LetStmt) {
	val, ty := g.lowerExprTyped(st.Value)
	llty, err := g.llvmType(ty)
	if err != nil {
		return
	}
	slot := g.block.NewAlloca(llty)
	slot.SetName(st.Name + ".addr")
	g.block.NewStore(val, slot)
	g.vars[st.Name] = local{ptr: slot, ty: ty}
	g.scopes[len(g.scopes)-1].locals = append(g.scopes[len(g.scopes)-1].locals, st.Name)
}

func (g *Gen) lowerAssign(st *ast.AssignStmt) {
	slot := g.lowerLValue(st.Target)
	if slot == nil {
		return
	}
	val := g.lowerExpr(st.Value)
	if st.Op != "=" {
		ty := exprType(st.Target)
		llty, err := g.llvmType(ty)
		if err != nil {
			return
		}
		cur := g.block.NewLoad(llty, slot)
		val = g.combineCompoundAssign(st.Op, cur, val, ty)
	}
	g.block.NewStore(val, slot)
}

// combineCompoundAssign reduces `x += v` (etc.) to its underlying
// binary operator; op is the full compound operator ("+=", "<<=", ...).
func (g *Gen) combineCompoundAssign(op string, cur, val value.Value, ty *types.Type) value.Value {
	isFloat := ty != nil && ty.Kind == types.KindPrimitive && (ty.Prim == types.F32 || ty.Prim == types.F64)
	unsigned := ty != nil && ty.Kind == types.KindPrimitive && ty.Prim.IsInteger() && !ty.Prim.IsSigned()
	switch op {
	case "+=":
		if isFloat {
			return g.block.NewFAdd(cur, val)
		}
		return g.block.NewAdd(cur, val)
	case "-=":
		if isFloat {
			return g.block.NewFSub(cur, val)
		}
		return g.block.NewSub(cur, val)
	case "*=":
		if isFloat {
			return g.block.NewFMul(cur, val)
		}
		return g.block.NewMul(cur, val)
	case "/=":
		if isFloat {
			return g.block.NewFDiv(cur, val)
		}
		if unsigned {
			return g.block.NewUDiv(cur, val)
		}
		return g.block.NewSDiv(cur, val)
	case "%=":
		if isFloat {
			return g.block.NewFRem(cur, val)
		}
		if unsigned {
			return g.block.NewURem(cur, val)
		}
		return g.block.NewSRem(cur, val)
	case "&=":
		return g.block.NewAnd(cur, val)
	case "|=":
		return g.block.NewOr(cur, val)
	case "^=":
		return g.block.NewXor(cur, val)
	case "<<=":
		return g.block.NewShl(cur, val)
	case ">>=":
		if unsigned {
			return g.block.NewLShr(cur, val)
		}
		return g.block.NewAShr(cur, val)
	default:
		return val
	}
}

func (g *Gen) lowerIfStmt(st *ast.IfStmt, expectedReturn *types.Type) {
	cond := g.lowerExpr(st.Cond)
	thenBlk := g.fn.NewBlock("")
	endBlk := g.fn.NewBlock("")
	var elseBlk = endBlk
	if st.Else != nil {
		elseBlk = g.fn.NewBlock("")
	}
	g.block.NewCondBr(cond, thenBlk, elseBlk)

	g.block = thenBlk
	g.lowerBlock(st.Then, expectedReturn)
	if g.block.Term == nil {
		g.block.NewBr(endBlk)
	}

	if st.Else != nil {
		g.block = elseBlk
		g.lowerStmt(st.Else, expectedReturn)
		if g.block.Term == nil {
			g.block.NewBr(endBlk)
		}
	}

	g.block = endBlk
}

func (g *Gen) lowerWhile(st *ast.WhileStmt, expectedReturn *types.Type) {
	condBlk := g.fn.NewBlock("")
	bodyBlk := g.fn.NewBlock("")
	endBlk := g.fn.NewBlock("")

	g.block.NewBr(condBlk)

	g.block = condBlk
	cond := g.lowerExpr(st.Cond)
	g.block.NewCondBr(cond, bodyBlk, endBlk)

	g.breakTo = append(g.breakTo, endBlk)
	g.contTo = append(g.contTo, condBlk)
	g.block = bodyBlk
	g.lowerBlock(st.Body, expectedReturn)
	if g.block.Term == nil {
		g.block.NewBr(condBlk)
	}
	g.breakTo = g.breakTo[:len(g.breakTo)-1]
	g.contTo = g.contTo[:len(g.contTo)-1]

	g.block = endBlk
}

func (g *Gen) lowerLoop(st *ast.LoopStmt, expectedReturn *types.Type) {
	bodyBlk := g.fn.NewBlock("")
	endBlk := g.fn.NewBlock("")

	g.block.NewBr(bodyBlk)

	g.breakTo = append(g.breakTo, endBlk)
	g.contTo = append(g.contTo, bodyBlk)
	g.block = bodyBlk
	g.lowerBlock(st.Body, expectedReturn)
	if g.block.Term == nil {
		g.block.NewBr(bodyBlk)
	}
	g.breakTo = g.breakTo[:len(g.breakTo)-1]
	g.contTo = g.contTo[:len(g.contTo)-1]

	g.block = endBlk
}

// lowerFor only handles the ForRange shape directly (`for i in lo to
// hi`); ForCollection/ForIterator need an iterator-protocol call
// sequence that belongs with the List/Iterator builtin lowering, not
// yet wired here.
func (g *Gen) lowerFor(st *ast.ForStmt, expectedReturn *types.Type) {
	if st.Kind != ast.ForRange {
		return
	}
	lo := g.lowerExpr(st.RangeLow)
	hi := g.lowerExpr(st.RangeHigh)

	idxSlot := g.block.NewAlloca(lo.Type())
	idxSlot.SetName(st.Binding + ".addr")
	g.block.NewStore(lo, idxSlot)
	g.vars[st.Binding] = local{ptr: idxSlot, ty: g.env.Interner.Primitive(types.I64)}

	condBlk := g.fn.NewBlock("")
	bodyBlk := g.fn.NewBlock("")
	stepBlk := g.fn.NewBlock("")
	endBlk := g.fn.NewBlock("")

	g.block.NewBr(condBlk)

	g.block = condBlk
	cur := g.block.NewLoad(lo.Type(), idxSlot)
	pred := loopPred(st.Inclusive)
	cond := g.block.NewICmp(pred, cur, hi)
	g.block.NewCondBr(cond, bodyBlk, endBlk)

	g.breakTo = append(g.breakTo, endBlk)
	g.contTo = append(g.contTo, stepBlk)
	g.block = bodyBlk
	g.lowerBlock(st.Body, expectedReturn)
	if g.block.Term == nil {
		g.block.NewBr(stepBlk)
	}
	g.breakTo = g.breakTo[:len(g.breakTo)-1]
	g.contTo = g.contTo[:len(g.contTo)-1]

	g.block = stepBlk
	cur2 := g.block.NewLoad(lo.Type(), idxSlot)
	one := oneOf(lo.Type())
	next := g.block.NewAdd(cur2, one)
	g.block.NewStore(next, idxSlot)
	g.block.NewBr(condBlk)

	g.block = endBlk
}

func (g *Gen) lowerReturn(st *ast.ReturnStmt, expectedReturn *types.Type) {
	if st.Value == nil {
		g.block.NewRet(nil)
		return
	}
	val := g.lowerExpr(st.Value)
	g.block.NewRet(val)
}

// lowerThrow lowers `throw expr` to a tml_panic call; TML's checked
// exceptions are resolved to ordinary control flow by the checker
// (Outcome[T, E] propagation), so by the time a ThrowStmt reaches
// codegen it denotes an unrecoverable abort path.
func (g *Gen) lowerThrow(st *ast.ThrowStmt) {
	val := g.lowerExpr(st.Value)
	g.block.NewCall(g.funcs["tml_panic"], val)
	g.block.NewUnreachable()
}
