package irgen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"

	"github.com/tml-lang/tmlc/ast"
	"github.com/tml-lang/tmlc/internal/monomorph"
	"github.com/tml-lang/tmlc/internal/types"
)

// local is one in-scope binding: the stack slot holding its value and
// the checked type needed to interpret that slot (GEP field offsets,
// intrinsic selection, drop calls).
type local struct {
	ptr value.Value
	ty  *types.Type
}

// defineInstantiation lowers one monomorphized function/method body
// into its already-declared ir.Func, following the teacher's
// generateFunction shape: new entry block, alloca+store every
// parameter up front (so later loads/stores are uniform), lower the
// body, then backfill a terminator if the body fell off the end.
func (g *Gen) defineInstantiation(inst *monomorph.Instantiation) error {
	fn := g.funcs[inst.Symbol]
	if fn == nil {
		return fmt.Errorf("irgen: %s was not declared before define", inst.Symbol)
	}

	g.fn = fn
	g.block = fn.NewBlock("entry")
	g.vars = make(map[string]local)
	g.breakTo = nil
	g.contTo = nil
	g.pushScope()

	paramIdx := 0
	if inst.SelfKind != "" {
		g.bindParam("this", fn.Params[0], inst.SelfType)
		paramIdx = 1
	}
	for i, p := range inst.Sig.Params {
		g.bindParam(inst.Sig.ParamNames[i], fn.Params[paramIdx+i], p)
	}

	g.lowerBlock(inst.Body, inst.Sig.ReturnType)
	g.popScope()

	if g.block.Term == nil {
		if inst.Sig.ReturnType == nil || inst.Sig.ReturnType.Kind == types.KindPrimitive && inst.Sig.ReturnType.Prim == types.Unit {
			g.block.NewRet(nil)
		} else {
			g.block.NewUnreachable()
		}
	}
	return nil
}

func (g *Gen) bindParam(name string, p *ir.Param, ty *types.Type) {
	slot := g.block.NewAlloca(p.Type())
	slot.SetName(name + ".addr")
	g.block.NewStore(p, slot)
	g.vars[name] = local{ptr: slot, ty: ty}
	g.scopes[len(g.scopes)-1].locals = append(g.scopes[len(g.scopes)-1].locals, name)
}

func (g *Gen) pushScope() { g.scopes = append(g.scopes, dropScope{}) }

// popScope emits a tml_rc_release call for every local bound to a
// heap-owning type in the scope being exited, in reverse declaration
// order, per SPEC_FULL.md §4.3's drop-scope stack.
func (g *Gen) popScope() {
	top := g.scopes[len(g.scopes)-1]
	g.scopes = g.scopes[:len(g.scopes)-1]
	if g.block.Term != nil {
		// TODO: a return/throw inside this scope already terminated the
		// block, so these drops never run. Needs drop emission hoisted
		// to right before the return's NewRet, not after.
		return
	}
	for i := len(top.locals) - 1; i >= 0; i-- {
		l := g.vars[top.locals[i]]
		if !needsDrop(l.ty) {
			continue
		}
		val := g.block.NewLoad(ptrType, l.ptr)
		g.block.NewCall(g.funcs["tml_rc_release"], val)
	}
}

// needsDrop reports whether a value of type t owns a reference count
// that must be released on scope exit: named aggregates and Arc/Rc/Box
// families, per spec.md §4.1's smart-pointer vocabulary.
func needsDrop(t *types.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case types.KindNamed:
		return true
	default:
		return false
	}
}

func (g *Gen) lowerBlock(b *ast.BlockStmt, expectedReturn *types.Type) {
	if b == nil {
		return
	}
	g.pushScope()
	for _, s := range b.Statements {
		if g.block.Term != nil {
			break
		}
		g.lowerStmt(s, expectedReturn)
	}
	g.popScope()
}
