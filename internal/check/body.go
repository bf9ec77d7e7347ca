package check

import (
	"github.com/tml-lang/tmlc/ast"
	"github.com/tml-lang/tmlc/internal/types"
)

// BodyPass is spec.md §4.1 pass 2: check every function, impl method,
// and class method body against its declared return type, annotating
// each ast.Expression node with its inferred type via SetTypePtr.
type BodyPass struct{}

func (BodyPass) Name() string { return "body" }

func (BodyPass) Run(mod *ast.Module, ctx *Context) error {
	for _, f := range mod.Functions {
		if f.Body == nil {
			continue
		}
		checkFuncBody(ctx, f.Name, f.TypeParams, f.Params, f.ReturnType, f.Body, nil)
	}
	for _, impl := range mod.Impls {
		selfTy := ctx.resolveSelfType(impl.TargetType)
		for _, m := range impl.Methods {
			if m.Body == nil {
				continue
			}
			checkFuncBody(ctx, m.Name, append(append([]ast.TypeParam{}, impl.TypeParams...), m.TypeParams...), m.Params, m.ReturnType, m.Body, selfTy)
		}
	}
	return nil
}

func (c *Context) resolveSelfType(targetTypeName string) *types.Type {
	if p, ok := primitiveByName(targetTypeName); ok {
		return c.Env.Interner.Primitive(p)
	}
	if _, ok := c.CurrentModule().Classes[targetTypeName]; ok {
		return c.Env.Interner.ClassType(targetTypeName, nil)
	}
	return c.Env.Interner.Named("", targetTypeName, nil)
}

func checkFuncBody(ctx *Context, name string, tps []ast.TypeParam, params []*ast.Param, retExpr ast.TypeExpr, body *ast.BlockStmt, selfTy *types.Type) {
	pop := ctx.PushScope(ScopeFunction)
	defer pop()
	ctx.Scope().SelfType = selfTy

	tparams := tparamSetOf(typeParamNames(tps))
	for _, p := range params {
		if p.SelfKind != "" {
			continue
		}
		pt, err := ctx.resolveTypeExpr(p.Type, tparams)
		if err != nil {
			ctx.Diags.Errorf("T057", body.SpanValue, ctx.Source, "function %s: parameter %s: %v", name, p.Name, err)
			continue
		}
		ctx.Scope().Define(p.Name, pt)
	}

	var retType *types.Type
	if retExpr != nil {
		rt, err := ctx.resolveTypeExpr(retExpr, tparams)
		if err == nil {
			retType = rt
		}
	}
	if retType == nil {
		retType = ctx.Env.Interner.Unit()
	}

	ctx.checkBlock(body, retType)
}

func (c *Context) checkBlock(b *ast.BlockStmt, expectedReturn *types.Type) {
	pop := c.PushScope(ScopeBlock)
	defer pop()
	for _, s := range b.Statements {
		c.checkStmt(s, expectedReturn)
	}
}

func (c *Context) checkStmt(s ast.Statement, expectedReturn *types.Type) {
	switch st := s.(type) {
	case *ast.LetStmt:
		var declared *types.Type
		if st.Type != nil {
			if t, err := c.resolveTypeExpr(st.Type, nil); err == nil {
				declared = t
			}
		}
		valType := c.checkExpr(st.Value)
		if declared != nil && valType != nil && declared != valType {
			c.Diags.Errorf("T057", st.SpanValue, c.Source,
				"let %s: declared type %s does not match initializer type %s", st.Name, declared.String(), valType.String())
		}
		bound := declared
		if bound == nil {
			bound = valType
		}
		c.Scope().Define(st.Name, bound)

	case *ast.ExprStmt:
		c.checkExpr(st.Value)

	case *ast.AssignStmt:
		targetType := c.checkExpr(st.Target)
		valType := c.checkExpr(st.Value)
		if targetType != nil && valType != nil && targetType != valType {
			c.Diags.Errorf("T057", st.SpanValue, c.Source,
				"cannot assign %s to target of type %s", valType.String(), targetType.String())
		}

	case *ast.IfStmt:
		c.checkExpr(st.Cond)
		c.checkBlock(st.Then, expectedReturn)
		if st.Else != nil {
			c.checkStmt(st.Else, expectedReturn)
		}

	case *ast.WhileStmt:
		c.checkExpr(st.Cond)
		c.checkBlock(st.Body, expectedReturn)

	case *ast.LoopStmt:
		c.checkBlock(st.Body, expectedReturn)

	case *ast.ForStmt:
		pop := c.PushScope(ScopeBlock)
		switch st.Kind {
		case ast.ForRange:
			c.checkExpr(st.RangeLow)
			c.checkExpr(st.RangeHigh)
			c.Scope().Define(st.Binding, c.Env.Interner.Primitive(types.I64))
		case ast.ForCollection, ast.ForIterator:
			elemTy := c.elementTypeOfIterable(c.checkExpr(st.Iterable))
			c.Scope().Define(st.Binding, elemTy)
		}
		c.checkBlock(st.Body, expectedReturn)
		pop()

	case *ast.ReturnStmt:
		if st.Value != nil {
			got := c.checkExpr(st.Value)
			if expectedReturn != nil && got != nil && got != expectedReturn {
				c.Diags.Errorf("T057", st.SpanValue, c.Source,
					"return type %s does not match declared return type %s", got.String(), expectedReturn.String())
			}
		}

	case *ast.ThrowStmt:
		c.checkExpr(st.Value)

	case *ast.BreakStmt, *ast.ContinueStmt:
		// no type obligations

	case *ast.DeclStmt:
		// local struct/enum/function declared inside a block body; not
		// part of the module-level registry, so nothing to check yet.

	case *ast.BlockStmt:
		c.checkBlock(st, expectedReturn)
	}
}

func (c *Context) elementTypeOfIterable(t *types.Type) *types.Type {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case types.KindArray:
		return t.ElementArr
	case types.KindSlice:
		return t.ElementSlice
	case types.KindNamed:
		if t.Name == "List" && len(t.TypeArgs) == 1 {
			return t.TypeArgs[0]
		}
	}
	return nil
}
