package check

import (
	"testing"

	"github.com/tml-lang/tmlc/ast"
	"github.com/tml-lang/tmlc/internal/types"
)

func sp() ast.Span { return ast.Span{File: "t.tml", Start: ast.Pos{Line: 1, Column: 1}} }

func prim(name string) ast.TypeExpr { return &ast.PrimitiveTypeExpr{Name: name} }

func TestRegisterPassRejectsReservedName(t *testing.T) {
	env := types.NewTypeEnv()
	mod := &ast.Module{
		Path:    "app",
		Structs: []*ast.StructDecl{{SpanValue: sp(), Name: "I32"}},
	}
	ctx := CheckModule(env, mod, "")
	if !ctx.Diags.HasErrors() {
		t.Fatal("expected an error for redeclaring I32")
	}
	found := false
	for _, d := range ctx.Diags.Diagnostics() {
		if d.Code == "T038" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a T038 diagnostic, got %v", ctx.Diags.Diagnostics())
	}
}

func TestRegisterAndCheckStructFunctionBody(t *testing.T) {
	env := types.NewTypeEnv()
	mod := &ast.Module{
		Path: "app",
		Structs: []*ast.StructDecl{{
			SpanValue: sp(), Name: "Point",
			Fields: []*ast.Field{
				{SpanValue: sp(), Name: "x", Type: prim("I32"), Visibility: ast.VisPublic},
				{SpanValue: sp(), Name: "y", Type: prim("I32"), Visibility: ast.VisPublic},
			},
		}},
		Functions: []*ast.FuncDecl{{
			SpanValue: sp(), Name: "origin",
			ReturnType: &ast.NamedTypeExpr{Name: "Point"},
			Body: &ast.BlockStmt{SpanValue: sp(), Statements: []ast.Statement{
				&ast.ReturnStmt{SpanValue: sp(), Value: &ast.StructLiteral{
					StructName: "Point",
					Fields: []ast.StructLiteralField{
						{Name: "x", Value: &ast.IntLiteral{Value: 0, Raw: "0"}},
						{Name: "y", Value: &ast.IntLiteral{Value: 0, Raw: "0"}},
					},
				}},
			}},
		}},
	}

	ctx := CheckModule(env, mod, "")
	if ctx.Diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Diags.Diagnostics())
	}
	if _, ok := ctx.Env.Module("app").Structs["Point"]; !ok {
		t.Fatalf("Point struct not registered")
	}
}

func TestRegisterDetectsMismatchedReturnType(t *testing.T) {
	env := types.NewTypeEnv()
	mod := &ast.Module{
		Path: "app",
		Functions: []*ast.FuncDecl{{
			SpanValue:  sp(),
			Name:       "give_bool",
			ReturnType: prim("Bool"),
			Body: &ast.BlockStmt{SpanValue: sp(), Statements: []ast.Statement{
				&ast.ReturnStmt{SpanValue: sp(), Value: &ast.IntLiteral{Value: 1, Raw: "1"}},
			}},
		}},
	}
	ctx := CheckModule(env, mod, "")
	if !ctx.Diags.HasErrors() {
		t.Fatal("expected a type mismatch error")
	}
}

func TestMethodResolutionViaImpl(t *testing.T) {
	env := types.NewTypeEnv()
	mod := &ast.Module{
		Path:    "app",
		Structs: []*ast.StructDecl{{SpanValue: sp(), Name: "Point"}},
		Impls: []*ast.ImplDecl{{
			SpanValue:  sp(),
			TargetType: "Point",
			Methods: []*ast.FuncDecl{{
				SpanValue: sp(), Name: "magnitude",
				Params:     []*ast.Param{{Name: "this", SelfKind: "ref this"}},
				ReturnType: prim("I32"),
				Body:       &ast.BlockStmt{SpanValue: sp()},
			}},
		}},
	}
	ctx := CheckModule(env, mod, "")
	if ctx.Diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Diags.Diagnostics())
	}

	recv := env.Interner.Named("app", "Point", nil)
	resolved, err := ctx.resolveMethod(recv, "magnitude", 0)
	if err != nil {
		t.Fatalf("resolveMethod failed: %v", err)
	}
	if resolved.Sig.ReturnType != env.Interner.Primitive(types.I32) {
		t.Errorf("magnitude() return type = %v, want I32", resolved.Sig.ReturnType)
	}
}

func TestMethodResolutionAutoDerefThroughSmartPointer(t *testing.T) {
	env := types.NewTypeEnv()
	mod := &ast.Module{
		Path:    "app",
		Structs: []*ast.StructDecl{{SpanValue: sp(), Name: "Point"}},
		Impls: []*ast.ImplDecl{{
			SpanValue:  sp(),
			TargetType: "Point",
			Methods: []*ast.FuncDecl{{
				SpanValue: sp(), Name: "magnitude",
				Params:     []*ast.Param{{Name: "this", SelfKind: "ref this"}},
				ReturnType: prim("I32"),
				Body:       &ast.BlockStmt{SpanValue: sp()},
			}},
		}},
	}
	ctx := CheckModule(env, mod, "")
	if ctx.Diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", ctx.Diags.Diagnostics())
	}

	boxed := env.Interner.Named("", "Box", []*types.Type{env.Interner.Named("app", "Point", nil)})
	resolved, err := ctx.resolveMethod(boxed, "magnitude", 0)
	if err != nil {
		t.Fatalf("auto-deref resolution failed: %v", err)
	}
	if resolved.AutoDeref != 1 {
		t.Errorf("AutoDeref = %d, want 1", resolved.AutoDeref)
	}
}

func TestFlagsEnumRejectsPayloadVariant(t *testing.T) {
	env := types.NewTypeEnv()
	mod := &ast.Module{
		Path: "app",
		Enums: []*ast.EnumDecl{{
			SpanValue: sp(), Name: "Perms", IsFlags: true, FlagsWidth: 8,
			Variants: []*ast.EnumVariant{
				{SpanValue: sp(), Name: "Read"},
				{SpanValue: sp(), Name: "Write", Payload: []ast.TypeExpr{prim("I32")}},
			},
		}},
	}
	ctx := CheckModule(env, mod, "")
	if !ctx.Diags.HasErrors() {
		t.Fatal("expected a T081 error for a payload-carrying flags variant")
	}
}

func TestBehaviorBoundUnsatisfiedReported(t *testing.T) {
	env := types.NewTypeEnv()
	mod := &ast.Module{
		Path:    "app",
		Structs: []*ast.StructDecl{{SpanValue: sp(), Name: "Widget"}},
		Functions: []*ast.FuncDecl{{
			SpanValue:  sp(),
			Name:       "show",
			TypeParams: []ast.TypeParam{{Name: "T", WhereClauses: []string{"Display"}}},
			ReturnType: prim("Unit"),
			Body:       &ast.BlockStmt{SpanValue: sp()},
		}},
	}
	ctx := CheckModule(env, mod, "")
	if ctx.Diags.HasErrors() {
		t.Fatalf("unexpected errors during registration: %v", ctx.Diags.Diagnostics())
	}

	sig := ctx.CurrentModule().Functions["show"]
	widget := env.Interner.Named("app", "Widget", nil)
	ctx.checkBehaviorBounds(sig, []*types.Type{widget}, sp())

	found := false
	for _, d := range ctx.Diags.Diagnostics() {
		if d.Code == "T-bound-unsatisfied" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected T-bound-unsatisfied, got %v", ctx.Diags.Diagnostics())
	}
}
