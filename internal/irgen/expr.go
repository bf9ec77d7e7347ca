package irgen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/tml-lang/tmlc/ast"
	"github.com/tml-lang/tmlc/internal/monomorph"
	"github.com/tml-lang/tmlc/internal/types"
)

// exprType reads the *types.Type the checker stamped onto e via
// SetTypePtr; irgen only ever runs on checker output, so a missing
// annotation is a programming error, not a user-facing one.
func exprType(e ast.Expression) *types.Type {
	t, _ := e.GetTypePtr().(*types.Type)
	return t
}

// lowerExpr lowers e and discards its static type; most callers that
// only need the value (conditions, call arguments already matched by
// the checker) go through this.
func (g *Gen) lowerExpr(e ast.Expression) value.Value {
	v, _ := g.lowerExprTyped(e)
	return v
}

// lowerExprTyped lowers e and returns both the LLVM value and its
// checked type, needed wherever the caller must pick a representation
// (let-binding an alloca, selecting an arithmetic intrinsic).
func (g *Gen) lowerExprTyped(e ast.Expression) (value.Value, *types.Type) {
	ty := exprType(e)
	switch ex := e.(type) {
	case *ast.IntLiteral:
		return constant.NewInt(intLLType(ty), ex.Value), ty
	case *ast.FloatLiteral:
		return constant.NewFloat(floatLLType(ty), ex.Value), ty
	case *ast.BoolLiteral:
		return constant.NewBool(ex.Value), ty
	case *ast.CharLiteral:
		return constant.NewInt(lltypes.I32, int64(ex.Value)), ty
	case *ast.StringLiteral:
		return g.lowerStringLiteral(ex.Value), ty
	case *ast.Identifier:
		return g.lowerIdentLoad(ex.Name), ty
	case *ast.UnaryExpr:
		return g.lowerUnary(ex), ty
	case *ast.BinaryExpr:
		return g.lowerBinary(ex), ty
	case *ast.CallExpr:
		return g.lowerCall(ex), ty
	case *ast.MethodCallExpr:
		return g.lowerMethodCall(ex), ty
	case *ast.FieldExpr:
		return g.lowerFieldLoad(ex), ty
	case *ast.IndexExpr:
		return g.lowerIndexLoad(ex), ty
	case *ast.IfExpr:
		return g.lowerIfExpr(ex), ty
	case *ast.TernaryExpr:
		return g.lowerTernary(ex), ty
	case *ast.BlockExpr:
		return g.lowerBlockExpr(ex), ty
	case *ast.AwaitExpr:
		// the async executor resumes this call already resolved by the
		// time a synchronous lowering reaches it; treated as a pass-through.
		return g.lowerExpr(ex.Value), ty
	default:
		return nil, ty
	}
}

func intLLType(t *types.Type) lltypes.Type {
	if t == nil || t.Kind != types.KindPrimitive {
		return lltypes.I64
	}
	return primitiveLLVMType(t.Prim)
}

func floatLLType(t *types.Type) lltypes.Type {
	if t != nil && t.Kind == types.KindPrimitive && t.Prim == types.F32 {
		return lltypes.Float
	}
	return lltypes.Double
}

func (g *Gen) lowerStringLiteral(s string) value.Value {
	data := constant.NewCharArrayFromString(s + "\x00")
	gv := g.Module.NewGlobalDef("", data)
	gv.Immutable = true
	zero := constant.NewInt(lltypes.I64, 0)
	return g.block.NewGetElementPtr(data.Type(), gv, zero, zero)
}

func (g *Gen) lowerIdentLoad(name string) value.Value {
	l, ok := g.vars[name]
	if !ok {
		return nil
	}
	lt, err := g.llvmType(l.ty)
	if err != nil {
		return nil
	}
	return g.block.NewLoad(lt, l.ptr)
}

func (g *Gen) lowerUnary(u *ast.UnaryExpr) value.Value {
	switch u.Op {
	case "-":
		v := g.lowerExpr(u.Operand)
		if isFloatExpr(u.Operand) {
			return g.block.NewFNeg(v)
		}
		return g.block.NewSub(constant.NewInt(v.Type().(*lltypes.IntType), 0), v)
	case "not":
		v := g.lowerExpr(u.Operand)
		return g.block.NewXor(v, constant.NewBool(true))
	case "~":
		v := g.lowerExpr(u.Operand)
		allOnes := constant.NewInt(v.Type().(*lltypes.IntType), -1)
		return g.block.NewXor(v, allOnes)
	case "&", "&mut":
		return g.lowerLValueAddr(u.Operand)
	case "*":
		v := g.lowerExpr(u.Operand)
		elemTy, err := g.llvmType(exprType(u))
		if err != nil {
			return nil
		}
		return g.block.NewLoad(elemTy, v)
	default:
		return nil
	}
}

func isFloatExpr(e ast.Expression) bool {
	t := exprType(e)
	return t != nil && t.Kind == types.KindPrimitive && (t.Prim == types.F32 || t.Prim == types.F64)
}

// lowerBinary dispatches arithmetic/comparison/bitwise operators per
// operand primitive kind, mirroring internal/check/builtins.go's
// per-primitive operator table: float ops use the F* instructions,
// signed/unsigned integer comparisons pick the matching icmp predicate.
func (g *Gen) lowerBinary(b *ast.BinaryExpr) value.Value {
	if b.Op == "and" || b.Op == "or" {
		return g.lowerShortCircuit(b)
	}
	l := g.lowerExpr(b.Left)
	r := g.lowerExpr(b.Right)
	isFloat := isFloatExpr(b.Left)
	unsigned := isUnsignedExpr(b.Left)

	switch b.Op {
	case "+":
		if isFloat {
			return g.block.NewFAdd(l, r)
		}
		return g.block.NewAdd(l, r)
	case "-":
		if isFloat {
			return g.block.NewFSub(l, r)
		}
		return g.block.NewSub(l, r)
	case "*":
		if isFloat {
			return g.block.NewFMul(l, r)
		}
		return g.block.NewMul(l, r)
	case "/":
		if isFloat {
			return g.block.NewFDiv(l, r)
		}
		if unsigned {
			return g.block.NewUDiv(l, r)
		}
		return g.block.NewSDiv(l, r)
	case "%":
		if isFloat {
			return g.block.NewFRem(l, r)
		}
		if unsigned {
			return g.block.NewURem(l, r)
		}
		return g.block.NewSRem(l, r)
	case "&":
		return g.block.NewAnd(l, r)
	case "|":
		return g.block.NewOr(l, r)
	case "^":
		return g.block.NewXor(l, r)
	case "<<":
		return g.block.NewShl(l, r)
	case ">>":
		if unsigned {
			return g.block.NewLShr(l, r)
		}
		return g.block.NewAShr(l, r)
	case "==", "!=", "<", "<=", ">", ">=":
		if isFloat {
			return g.block.NewFCmp(floatPred(b.Op), l, r)
		}
		return g.block.NewICmp(intPred(b.Op, unsigned), l, r)
	default:
		return nil
	}
}

func isUnsignedExpr(e ast.Expression) bool {
	t := exprType(e)
	if t == nil || t.Kind != types.KindPrimitive {
		return false
	}
	switch t.Prim {
	case types.U8, types.U16, types.U32, types.U64, types.U128:
		return true
	default:
		return false
	}
}

// lowerShortCircuit lowers `and`/`or` via basic-block branching so the
// right operand is only evaluated when it can affect the result,
// matching the source language's short-circuit semantics.
func (g *Gen) lowerShortCircuit(b *ast.BinaryExpr) value.Value {
	l := g.lowerExpr(b.Left)
	startBlk := g.block
	rhsBlk := g.fn.NewBlock("")
	endBlk := g.fn.NewBlock("")

	if b.Op == "and" {
		g.block.NewCondBr(l, rhsBlk, endBlk)
	} else {
		g.block.NewCondBr(l, endBlk, rhsBlk)
	}

	g.block = rhsBlk
	r := g.lowerExpr(b.Right)
	rhsEndBlk := g.block
	g.block.NewBr(endBlk)

	g.block = endBlk
	phi := g.block.NewPhi(
		ir.NewIncoming(l, startBlk),
		ir.NewIncoming(r, rhsEndBlk),
	)
	return phi
}

func loopPred(inclusive bool) enum.IPred {
	if inclusive {
		return enum.IPredSLE
	}
	return enum.IPredSLT
}

func intPred(op string, unsigned bool) enum.IPred {
	switch op {
	case "==":
		return enum.IPredEQ
	case "!=":
		return enum.IPredNE
	case "<":
		if unsigned {
			return enum.IPredULT
		}
		return enum.IPredSLT
	case "<=":
		if unsigned {
			return enum.IPredULE
		}
		return enum.IPredSLE
	case ">":
		if unsigned {
			return enum.IPredUGT
		}
		return enum.IPredSGT
	default: // ">="
		if unsigned {
			return enum.IPredUGE
		}
		return enum.IPredSGE
	}
}

func floatPred(op string) enum.FPred {
	switch op {
	case "==":
		return enum.FPredOEQ
	case "!=":
		return enum.FPredONE
	case "<":
		return enum.FPredOLT
	case "<=":
		return enum.FPredOLE
	case ">":
		return enum.FPredOGT
	default: // ">="
		return enum.FPredOGE
	}
}

func oneOf(t lltypes.Type) value.Value {
	it, ok := t.(*lltypes.IntType)
	if !ok {
		return constant.NewInt(lltypes.I64, 1)
	}
	return constant.NewInt(it, 1)
}

// lowerCall only resolves direct calls to non-generic free functions
// (no turbofish on the call, which is the common case); a call that
// supplies explicit type arguments needs those resolved to *types.Type
// before a mangled symbol can be looked up, which requires the
// checker's type-resolution tables and is wired in by the pipeline
// driver that owns both the checker and this package, not here.
func (g *Gen) lowerCall(c *ast.CallExpr) value.Value {
	id, ok := c.Callee.(*ast.Identifier)
	if !ok || len(c.TypeArgs) != 0 {
		return nil
	}
	symbol := monomorph.SymbolName("", id.Name, nil, "")
	fn, ok := g.funcs[symbol]
	if !ok {
		return nil
	}
	args := make([]value.Value, len(c.Args))
	for i, a := range c.Args {
		args[i] = g.lowerExpr(a)
	}
	return g.block.NewCall(fn, args...)
}

// lowerMethodCall resolves a non-generic method call on a receiver
// whose checked type is already known; a generic receiver/method call
// needs the same type-argument resolution lowerCall punts on.
func (g *Gen) lowerMethodCall(m *ast.MethodCallExpr) value.Value {
	recv := g.lowerExpr(m.Receiver)
	recvTy := exprType(m.Receiver)
	if recvTy == nil || len(m.TypeArgs) != 0 {
		return nil
	}
	symbol := monomorph.SymbolName("", recvTy.Name, nil, m.Method)
	fn, ok := g.funcs[symbol]
	if !ok {
		return nil
	}
	args := make([]value.Value, 0, len(m.Args)+1)
	args = append(args, recv)
	for _, a := range m.Args {
		args = append(args, g.lowerExpr(a))
	}
	return g.block.NewCall(fn, args...)
}

func (g *Gen) lowerFieldLoad(f *ast.FieldExpr) value.Value {
	addr := g.lowerFieldAddr(f)
	if addr == nil {
		return nil
	}
	lt, err := g.llvmType(exprType(f))
	if err != nil {
		return nil
	}
	return g.block.NewLoad(lt, addr)
}

func (g *Gen) lowerFieldAddr(f *ast.FieldExpr) value.Value {
	recvTy := exprType(f.Receiver)
	if recvTy == nil {
		return nil
	}
	layout, ok := g.structs[recvTy.Name]
	if !ok {
		return nil
	}
	idx, ok := layout.fieldOffset[f.Field]
	if !ok {
		return nil
	}
	base := g.lowerExpr(f.Receiver)
	zero := constant.NewInt(lltypes.I32, 0)
	i := constant.NewInt(lltypes.I32, int64(idx))
	return g.block.NewGetElementPtr(layout.llvm, base, zero, i)
}

func (g *Gen) lowerIndexLoad(ix *ast.IndexExpr) value.Value {
	base := g.lowerExpr(ix.Receiver)
	idx := g.lowerExpr(ix.Index)
	elemTy, err := g.llvmType(exprType(ix))
	if err != nil {
		return nil
	}
	addr := g.block.NewGetElementPtr(elemTy, base, idx)
	return g.block.NewLoad(elemTy, addr)
}

func (g *Gen) lowerIfExpr(ie *ast.IfExpr) value.Value {
	cond := g.lowerExpr(ie.Cond)
	thenBlk := g.fn.NewBlock("")
	elseBlk := g.fn.NewBlock("")
	endBlk := g.fn.NewBlock("")
	g.block.NewCondBr(cond, thenBlk, elseBlk)

	g.block = thenBlk
	thenVal := g.lowerExpr(ie.Then)
	thenEnd := g.block
	g.block.NewBr(endBlk)

	g.block = elseBlk
	elseVal := g.lowerExpr(ie.Else)
	elseEnd := g.block
	g.block.NewBr(endBlk)

	g.block = endBlk
	return g.block.NewPhi(ir.NewIncoming(thenVal, thenEnd), ir.NewIncoming(elseVal, elseEnd))
}

func (g *Gen) lowerTernary(t *ast.TernaryExpr) value.Value {
	return g.lowerIfExpr(&ast.IfExpr{Cond: t.Cond, Then: t.Then, Else: t.Else})
}

func (g *Gen) lowerBlockExpr(b *ast.BlockExpr) value.Value {
	stmts := b.Block.Statements
	if len(stmts) == 0 {
		return nil
	}
	g.pushScope()
	var result value.Value = nil
	for i, s := range stmts {
		if g.block.Term != nil {
			break
		}
		if i == len(stmts)-1 {
			if last, ok := s.(*ast.ExprStmt); ok {
				result = g.lowerExpr(last.Value)
				continue
			}
		}
		g.lowerStmt(s, nil)
	}
	g.popScope()
	return result
}
