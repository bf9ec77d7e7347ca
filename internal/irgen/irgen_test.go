package irgen

import (
	"testing"

	"github.com/tml-lang/tmlc/ast"
	"github.com/tml-lang/tmlc/internal/types"
)

// buildAddEnv registers one non-generic free function `add(a, b) -> I64
// { return a + b; }` so LowerModule has something concrete to lower.
func buildAddEnv() *types.TypeEnv {
	env := types.NewTypeEnv()
	in := env.Interner
	i64 := in.Primitive(types.I64)

	left := &ast.Identifier{Name: "a"}
	left.SetTypePtr(i64)
	right := &ast.Identifier{Name: "b"}
	right.SetTypePtr(i64)
	sum := &ast.BinaryExpr{Op: "+", Left: left, Right: right}
	sum.SetTypePtr(i64)

	body := &ast.BlockStmt{Statements: []ast.Statement{
		&ast.ReturnStmt{Value: sum},
	}}

	sig := &types.FuncSig{
		Name:       "add",
		Params:     []*types.Type{i64, i64},
		ParamNames: []string{"a", "b"},
		ReturnType: i64,
	}

	mod := env.Module("test")
	mod.Functions["add"] = sig
	mod.FuncBodies["add"] = body
	return env
}

func TestLowerModuleDefinesNonGenericFunction(t *testing.T) {
	env := buildAddEnv()
	g := New(env, "test")

	if err := g.LowerModule(nil); err != nil {
		t.Fatalf("LowerModule() error = %v", err)
	}

	fn, ok := g.funcs["@tml_add"]
	if !ok {
		t.Fatalf("expected @tml_add to be declared, got %d funcs", len(g.funcs))
	}
	if len(fn.Blocks) == 0 {
		t.Fatalf("expected add() to have a lowered body")
	}
	last := fn.Blocks[len(fn.Blocks)-1]
	if last.Term == nil {
		t.Errorf("expected final block to have a terminator")
	}
}
