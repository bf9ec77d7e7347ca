package check

import (
	"github.com/tml-lang/tmlc/ast"
	"github.com/tml-lang/tmlc/internal/types"
)

// checkExpr type-checks e, annotates it via SetTypePtr, and returns the
// resolved type (nil if checking failed and a diagnostic was recorded).
func (c *Context) checkExpr(e ast.Expression) *types.Type {
	if e == nil {
		return nil
	}
	t := c.checkExprInner(e)
	if t != nil {
		e.SetTypePtr(t)
	}
	return t
}

func (c *Context) checkExprInner(e ast.Expression) *types.Type {
	in := c.Env.Interner
	switch ex := e.(type) {
	case *ast.IntLiteral:
		return in.Primitive(types.I32)
	case *ast.FloatLiteral:
		return in.Primitive(types.F64)
	case *ast.StringLiteral:
		return in.Str()
	case *ast.BoolLiteral:
		return in.Bool()
	case *ast.CharLiteral:
		return in.Primitive(types.Char)

	case *ast.Identifier:
		return c.resolveIdentifier(ex)

	case *ast.QualifiedIdent:
		return c.resolveQualified(ex)

	case *ast.ArrayLiteral:
		var elemType *types.Type
		for _, el := range ex.Elements {
			t := c.checkExpr(el)
			if elemType == nil {
				elemType = t
			}
		}
		if elemType == nil {
			return nil
		}
		return in.Array(elemType, int64(len(ex.Elements)))

	case *ast.TupleLiteral:
		elems := make([]*types.Type, len(ex.Elements))
		for i, el := range ex.Elements {
			elems[i] = c.checkExpr(el)
		}
		return in.Tuple(elems)

	case *ast.StructLiteral:
		return c.checkStructLiteral(ex)

	case *ast.BinaryExpr:
		return c.checkBinary(ex)

	case *ast.UnaryExpr:
		return c.checkUnary(ex)

	case *ast.CallExpr:
		return c.checkCall(ex)

	case *ast.MethodCallExpr:
		return c.checkMethodCall(ex)

	case *ast.FieldExpr:
		return c.checkField(ex)

	case *ast.IndexExpr:
		return c.checkIndex(ex)

	case *ast.ClosureExpr:
		return c.checkClosure(ex)

	case *ast.WhenExpr:
		return c.checkWhen(ex)

	case *ast.IfExpr:
		c.checkExpr(ex.Cond)
		thenT := c.checkExpr(ex.Then)
		c.checkExpr(ex.Else)
		return thenT

	case *ast.TernaryExpr:
		c.checkExpr(ex.Cond)
		thenT := c.checkExpr(ex.Then)
		c.checkExpr(ex.Else)
		return thenT

	case *ast.AwaitExpr:
		inner := c.checkExpr(ex.Value)
		if inner != nil && inner.Kind == types.KindNamed && inner.Name == "Future" && len(inner.TypeArgs) == 1 {
			return inner.TypeArgs[0]
		}
		return inner

	case *ast.BlockExpr:
		return c.checkBlockExpr(ex)

	default:
		return nil
	}
}

func (c *Context) resolveIdentifier(id *ast.Identifier) *types.Type {
	if id.Name == "this" {
		if t, ok := c.Scope().EnclosingSelf(); ok {
			return t
		}
	}
	if t, ok := c.Scope().LookupChain(id.Name); ok {
		return t
	}
	if sig, ok := c.CurrentModule().Functions[id.Name]; ok {
		return c.Env.Interner.Func(sig.Params, sig.ReturnType)
	}
	return nil
}

func (c *Context) resolveQualified(q *ast.QualifiedIdent) *types.Type {
	if mod, ok := c.Env.Modules[q.Qualifier]; ok {
		if sig, ok := mod.Functions[q.Name]; ok {
			return c.Env.Interner.Func(sig.Params, sig.ReturnType)
		}
		return nil
	}
	// Static method / associated item on a type: handled by checkCall
	// when the callee is a QualifiedIdent, since the arguments determine
	// overload selection for primitive statics like I32::default().
	return nil
}

func (c *Context) checkStructLiteral(s *ast.StructLiteral) *types.Type {
	def, ok := c.CurrentModule().Structs[s.StructName]
	if !ok {
		return nil
	}
	fieldTypes := make(map[string]*types.Type, len(def.Fields))
	for _, f := range def.Fields {
		fieldTypes[f.Name] = f.Type
	}
	for _, fv := range s.Fields {
		declared, ok := fieldTypes[fv.Name]
		got := c.checkExpr(fv.Value)
		if ok && declared != nil && got != nil && declared != got {
			c.Diags.Errorf("T057", s.Span(), c.Source,
				"field %s.%s: expected %s, got %s", s.StructName, fv.Name, declared.String(), got.String())
		}
	}
	args, err := c.resolveTypeExprs(s.TypeArgs, nil)
	if err != nil {
		args = nil
	}
	return c.Env.Interner.Named("", s.StructName, args)
}

func (c *Context) checkBinary(b *ast.BinaryExpr) *types.Type {
	in := c.Env.Interner
	left := c.checkExpr(b.Left)
	right := c.checkExpr(b.Right)
	switch b.Op {
	case "==", "!=", "<", "<=", ">", ">=":
		return in.Bool()
	case "and", "or":
		return in.Bool()
	default:
		if left != nil && right != nil && left != right {
			c.Diags.Errorf("T057", b.Span(), c.Source,
				"operator %s: mismatched operand types %s and %s", b.Op, left.String(), right.String())
		}
		return left
	}
}

func (c *Context) checkUnary(u *ast.UnaryExpr) *types.Type {
	operandT := c.checkExpr(u.Operand)
	switch u.Op {
	case "not":
		return c.Env.Interner.Bool()
	case "&":
		return c.Env.Interner.Ref(false, operandT, "")
	case "&mut":
		return c.Env.Interner.Ref(true, operandT, "")
	case "*":
		if operandT != nil && (operandT.Kind == types.KindRef || operandT.Kind == types.KindPtr) {
			return operandT.Inner
		}
		return operandT
	default:
		return operandT
	}
}

func (c *Context) checkCall(call *ast.CallExpr) *types.Type {
	for _, a := range call.Args {
		c.checkExpr(a)
	}

	switch callee := call.Callee.(type) {
	case *ast.QualifiedIdent:
		// Static dispatch: primitive type name or class name as static
		// receiver (spec.md §4.1 method-resolution steps 1-2).
		if p, ok := primitiveByName(callee.Qualifier); ok {
			if sig, ok := builtinPrimitiveStatic(c, p, callee.Name); ok {
				return sig.ReturnType
			}
		}
		if def, ok := c.CurrentModule().Classes[callee.Qualifier]; ok {
			if m, _, ok := c.Env.FindMethod(def.QualifiedName, callee.Name); ok {
				return m.Sig.ReturnType
			}
			if m, _, ok := c.Env.FindMethod(callee.Qualifier, callee.Name); ok {
				return m.Sig.ReturnType
			}
		}
		if m, _, ok := c.Env.FindMethod(callee.Qualifier, callee.Name); ok {
			return m.Sig.ReturnType
		}
		return nil

	default:
		if id, ok := call.Callee.(*ast.Identifier); ok {
			if sig, ok := c.CurrentModule().Functions[id.Name]; ok && len(call.TypeArgs) > 0 {
				if typeArgs, err := c.resolveTypeExprs(call.TypeArgs, nil); err == nil {
					c.checkBehaviorBounds(sig, typeArgs, call.Span())
				}
			}
		}
		calleeT := c.checkExpr(call.Callee)
		if calleeT == nil {
			return nil
		}
		if calleeT.Kind == types.KindFunc || calleeT.Kind == types.KindClosure {
			return calleeT.ReturnType
		}
		return nil
	}
}

func builtinPrimitiveStatic(c *Context, p types.Primitive, method string) (*types.FuncSig, bool) {
	in := c.Env.Interner
	self := in.Primitive(p)
	if method == "default" {
		return &types.FuncSig{Name: method, ReturnType: self}, true
	}
	return nil, false
}

func (c *Context) checkMethodCall(mc *ast.MethodCallExpr) *types.Type {
	recvT := c.checkExpr(mc.Receiver)
	for _, a := range mc.Args {
		c.checkExpr(a)
	}
	if recvT == nil {
		return nil
	}
	resolved, err := c.resolveMethod(recvT, mc.Method, len(mc.Args))
	if err != nil {
		code := "T078"
		if recvT.Kind == types.KindDynBehavior {
			code = "T079"
		}
		c.Diags.Errorf(code, mc.Span(), c.Source, "%v", err)
		return nil
	}
	return resolved.Sig.ReturnType
}

func (c *Context) checkField(f *ast.FieldExpr) *types.Type {
	recvT := c.checkExpr(f.Receiver)
	if recvT == nil {
		return nil
	}
	return c.fieldTypeWithAutoDeref(recvT, f.Field)
}

func (c *Context) fieldTypeWithAutoDeref(t *types.Type, field string) *types.Type {
	u := expandAliasAndUnwrapRef(c, t)
	if ft, ok := c.lookupField(u, field); ok {
		return ft
	}
	if u.Kind == types.KindNamed && types.IsSmartPointer(u.Name) && len(u.TypeArgs) == 1 {
		return c.fieldTypeWithAutoDeref(u.TypeArgs[0], field)
	}
	return nil
}

func (c *Context) lookupField(t *types.Type, field string) (*types.Type, bool) {
	var fields []*types.FieldDef
	switch t.Kind {
	case types.KindNamed:
		if def, ok := c.CurrentModule().Structs[t.Name]; ok {
			fields = def.Fields
		}
	case types.KindClassType:
		for cur := t; cur != nil; cur = cur.Base {
			if def, ok := c.CurrentModule().Classes[cur.Name]; ok {
				fields = append(fields, def.Fields...)
			}
		}
	}
	for _, fd := range fields {
		if fd.Name == field {
			return fd.Type, true
		}
	}
	return nil, false
}

func (c *Context) checkIndex(ix *ast.IndexExpr) *types.Type {
	recvT := c.checkExpr(ix.Receiver)
	c.checkExpr(ix.Index)
	if recvT == nil {
		return nil
	}
	switch recvT.Kind {
	case types.KindArray:
		return recvT.ElementArr
	case types.KindSlice:
		return recvT.ElementSlice
	case types.KindNamed:
		if recvT.Name == "List" && len(recvT.TypeArgs) == 1 {
			return recvT.TypeArgs[0]
		}
	}
	return nil
}

func (c *Context) checkClosure(cl *ast.ClosureExpr) *types.Type {
	pop := c.PushScope(ScopeFunction)
	defer pop()

	params := make([]*types.Type, len(cl.Params))
	for i, p := range cl.Params {
		var pt *types.Type
		if p.Type != nil {
			if t, err := c.resolveTypeExpr(p.Type, nil); err == nil {
				pt = t
			}
		}
		params[i] = pt
		c.Scope().Define(p.Name, pt)
	}

	var ret *types.Type
	if cl.ReturnType != nil {
		if t, err := c.resolveTypeExpr(cl.ReturnType, nil); err == nil {
			ret = t
		}
	}
	c.checkBlock(cl.Body, ret)
	if ret == nil {
		ret = c.Env.Interner.Unit()
	}
	return c.Env.Interner.Closure(params, ret)
}

func (c *Context) checkWhen(w *ast.WhenExpr) *types.Type {
	scrutT := c.checkExpr(w.Scrutinee)
	var resultT *types.Type
	for _, arm := range w.Arms {
		pop := c.PushScope(ScopeBlock)
		c.bindPattern(arm.Pattern, scrutT)
		if arm.Guard != nil {
			c.checkExpr(arm.Guard)
		}
		bodyT := c.checkExpr(arm.Body)
		pop()
		if resultT == nil {
			resultT = bodyT
		}
	}
	return resultT
}

// bindPattern binds the names a pattern introduces into the current
// scope, using scrutT to type enum-payload and struct-field bindings
// (spec.md §4.3's pattern-matching lowering operates on the same
// structure, at the IR level, once this checker has resolved types).
func (c *Context) bindPattern(p ast.Pattern, scrutT *types.Type) {
	switch pat := p.(type) {
	case *ast.BindingPattern:
		c.Scope().Define(pat.Name, scrutT)
	case *ast.EnumPattern:
		def := c.lookupEnumDef(scrutT)
		var payload []*types.Type
		if def != nil {
			for _, v := range def.Variants {
				if v.Name == pat.VariantName {
					payload = v.Payload
					break
				}
			}
		}
		for i, sub := range pat.Payload {
			var pt *types.Type
			if i < len(payload) {
				pt = payload[i]
			}
			c.bindPattern(sub, pt)
		}
	case *ast.StructPattern:
		fields := c.structFieldMap(pat.StructName)
		for name, sub := range pat.Fields {
			c.bindPattern(sub, fields[name])
		}
	case *ast.TuplePattern:
		for i, sub := range pat.Elements {
			var et *types.Type
			if scrutT != nil && scrutT.Kind == types.KindTuple && i < len(scrutT.Elements) {
				et = scrutT.Elements[i]
			}
			c.bindPattern(sub, et)
		}
	case *ast.ArrayPattern:
		var elemT *types.Type
		if scrutT != nil {
			elemT = elementOf(scrutT)
		}
		for _, sub := range pat.Elements {
			c.bindPattern(sub, elemT)
		}
		if pat.RestBinding != "" && scrutT != nil {
			c.Scope().Define(pat.RestBinding, c.Env.Interner.Slice(elemT))
		}
	case *ast.OrPattern:
		for _, alt := range pat.Alternatives {
			c.bindPattern(alt, scrutT)
		}
	case *ast.RangePattern:
		c.checkExpr(pat.Low)
		c.checkExpr(pat.High)
	case *ast.LiteralPattern:
		c.checkExpr(pat.Value)
	case *ast.WildcardPattern:
		// binds nothing
	}
}

func (c *Context) lookupEnumDef(t *types.Type) *types.EnumDef {
	if t == nil || t.Kind != types.KindNamed {
		return nil
	}
	return c.CurrentModule().Enums[t.Name]
}

func (c *Context) structFieldMap(structName string) map[string]*types.Type {
	out := map[string]*types.Type{}
	if def, ok := c.CurrentModule().Structs[structName]; ok {
		for _, f := range def.Fields {
			out[f.Name] = f.Type
		}
	}
	return out
}

func (c *Context) checkBlockExpr(b *ast.BlockExpr) *types.Type {
	pop := c.PushScope(ScopeBlock)
	defer pop()
	var last *types.Type
	for _, s := range b.Block.Statements {
		if es, ok := s.(*ast.ExprStmt); ok {
			last = c.checkExpr(es.Value)
			continue
		}
		c.checkStmt(s, nil)
	}
	return last
}
