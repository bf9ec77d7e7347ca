package check

import (
	"fmt"

	"github.com/tml-lang/tmlc/ast"
	"github.com/tml-lang/tmlc/internal/types"
)

// typeParamSet tracks which names are in-scope type parameters (of the
// enclosing struct/enum/class/function/impl/behavior) so resolveTypeExpr
// can tell a generic parameter from an unresolved named type.
type typeParamSet map[string]bool

// resolveTypeExpr converts a parsed ast.TypeExpr into an interned
// internal/types.Type, expanding type aliases registered in the current
// module (spec.md §4.1: "Evaluate the receiver's type. Expand type
// aliases.").
func (c *Context) resolveTypeExpr(te ast.TypeExpr, tparams typeParamSet) (*types.Type, error) {
	in := c.Env.Interner
	switch t := te.(type) {
	case *ast.PrimitiveTypeExpr:
		return resolvePrimitiveName(in, t.Name)

	case *ast.NamedTypeExpr:
		if t.ModulePath == "" && tparams[t.Name] {
			return in.Generic(t.Name), nil
		}
		if t.ModulePath == "" {
			if p, ok := primitiveByName(t.Name); ok {
				return in.Primitive(p), nil
			}
			if alias, ok := c.CurrentModule().TypeAliases[t.Name]; ok {
				return alias, nil
			}
		}
		args, err := c.resolveTypeExprs(t.TypeArgs, tparams)
		if err != nil {
			return nil, err
		}
		return in.Named(t.ModulePath, t.Name, args), nil

	case *ast.RefTypeExpr:
		inner, err := c.resolveTypeExpr(t.Inner, tparams)
		if err != nil {
			return nil, err
		}
		return in.Ref(t.IsMut, inner, t.Lifetime), nil

	case *ast.PtrTypeExpr:
		inner, err := c.resolveTypeExpr(t.Inner, tparams)
		if err != nil {
			return nil, err
		}
		return in.Ptr(t.IsMut, inner), nil

	case *ast.ArrayTypeExpr:
		elem, err := c.resolveTypeExpr(t.Element, tparams)
		if err != nil {
			return nil, err
		}
		size, err := c.evalConstSize(t.Size)
		if err != nil {
			return nil, err
		}
		return in.Array(elem, size), nil

	case *ast.SliceTypeExpr:
		elem, err := c.resolveTypeExpr(t.Element, tparams)
		if err != nil {
			return nil, err
		}
		return in.Slice(elem), nil

	case *ast.TupleTypeExpr:
		elems, err := c.resolveTypeExprs(t.Elements, tparams)
		if err != nil {
			return nil, err
		}
		return in.Tuple(elems), nil

	case *ast.FuncTypeExpr:
		params, err := c.resolveTypeExprs(t.Params, tparams)
		if err != nil {
			return nil, err
		}
		ret, err := c.resolveTypeExpr(t.ReturnType, tparams)
		if err != nil {
			return nil, err
		}
		return in.Func(params, ret), nil

	case *ast.ClosureTypeExpr:
		params, err := c.resolveTypeExprs(t.Params, tparams)
		if err != nil {
			return nil, err
		}
		ret, err := c.resolveTypeExpr(t.ReturnType, tparams)
		if err != nil {
			return nil, err
		}
		return in.Closure(params, ret), nil

	case *ast.DynBehaviorTypeExpr:
		args, err := c.resolveTypeExprs(t.TypeArgs, tparams)
		if err != nil {
			return nil, err
		}
		return in.DynBehavior(t.BehaviorName, args), nil

	default:
		return nil, fmt.Errorf("unresolvable type expression %T", te)
	}
}

func (c *Context) resolveTypeExprs(tes []ast.TypeExpr, tparams typeParamSet) ([]*types.Type, error) {
	if len(tes) == 0 {
		return nil, nil
	}
	out := make([]*types.Type, len(tes))
	for i, te := range tes {
		r, err := c.resolveTypeExpr(te, tparams)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// evalConstSize evaluates an array-size expression. Only integer
// literals are accepted; an identifier naming a const generic parameter
// is reported as an error, as is any other expression.
func (c *Context) evalConstSize(e ast.Expression) (int64, error) {
	switch v := e.(type) {
	case *ast.IntLiteral:
		return v.Value, nil
	case *ast.Identifier:
		return 0, fmt.Errorf("const generic parameter %q is not resolved to a literal size here", v.Name)
	default:
		return 0, fmt.Errorf("array size must be a constant expression")
	}
}

var primitiveNameTable = map[string]types.Primitive{
	"I8": types.I8, "I16": types.I16, "I32": types.I32, "I64": types.I64, "I128": types.I128,
	"U8": types.U8, "U16": types.U16, "U32": types.U32, "U64": types.U64, "U128": types.U128,
	"F32": types.F32, "F64": types.F64, "Bool": types.Bool, "Char": types.Char, "Str": types.Str,
	"Unit": types.Unit, "Never": types.Never,
}

func primitiveByName(name string) (types.Primitive, bool) {
	p, ok := primitiveNameTable[name]
	return p, ok
}

func resolvePrimitiveName(in *types.Interner, name string) (*types.Type, error) {
	p, ok := primitiveByName(name)
	if !ok {
		return nil, fmt.Errorf("not a primitive type name: %q", name)
	}
	return in.Primitive(p), nil
}
