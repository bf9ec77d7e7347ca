package monomorph

import (
	"testing"

	"github.com/tml-lang/tmlc/ast"
	"github.com/tml-lang/tmlc/internal/types"
)

func TestMangleType(t *testing.T) {
	in := types.NewInterner()

	tests := []struct {
		name string
		t    *types.Type
		want string
	}{
		{"primitive", in.Primitive(types.I32), "I32"},
		{"named no args", in.Named("", "Point", nil), "Point"},
		{"named one arg", in.Named("", "List", []*types.Type{in.Primitive(types.I64)}), "List__I64"},
		{
			"named two args",
			in.Named("", "Pair", []*types.Type{in.Primitive(types.I32), in.Primitive(types.Bool)}),
			"Pair__I32__Bool",
		},
		{"ptr", in.Ptr(false, in.Primitive(types.I32)), "ptr_I32"},
		{"mutptr", in.Ptr(true, in.Primitive(types.I32)), "mutptr_I32"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MangleType(tc.t); got != tc.want {
				t.Errorf("MangleType() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSymbolName(t *testing.T) {
	in := types.NewInterner()
	args := []*types.Type{in.Primitive(types.I32)}
	got := SymbolName("", "Mutex", args, "new")
	want := "@tml_Mutex__I32_new"
	if got != want {
		t.Errorf("SymbolName() = %q, want %q", got, want)
	}
}

func TestSubstituteReplacesGenericParam(t *testing.T) {
	in := types.NewInterner()
	generic := in.Generic("T")
	list := in.Named("", "List", []*types.Type{generic})

	subs := BindTypeParams([]string{"T"}, []*types.Type{in.Primitive(types.I64)})
	got := Substitute(in, list, subs)

	want := in.Named("", "List", []*types.Type{in.Primitive(types.I64)})
	if got != want {
		t.Errorf("Substitute() = %s, want %s", got.String(), want.String())
	}
}

func sp() ast.Span { return ast.Span{File: "t.tml", Start: ast.Pos{Line: 1, Column: 1}} }

func TestMonomorphizerInstantiatesGenericMethod(t *testing.T) {
	env := types.NewTypeEnv()
	in := env.Interner
	generic := in.Generic("T")

	env.RegisterImpl(&types.ImplBlock{
		TargetTypeName: "Stack",
		TypeParams:     []string{"T"},
		Methods: []*types.Method{{
			Sig: &types.FuncSig{
				Name:       "push",
				Params:     []*types.Type{generic},
				ParamNames: []string{"item"},
				ReturnType: in.Unit(),
				Span:       sp(),
			},
			SelfKind: "mut ref this",
			Body:     &ast.BlockStmt{SpanValue: sp()},
		}},
	})

	m := New(env)
	m.Enqueue(Request{TypeName: "Stack", Method: "push", TypeArgs: []*types.Type{in.Primitive(types.I64)}})

	results, err := m.Run()
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d instantiations, want 1", len(results))
	}

	inst := results[0]
	if inst.Symbol != "@tml_Stack__I64_push" {
		t.Errorf("Symbol = %q, want @tml_Stack__I64_push", inst.Symbol)
	}
	if inst.Sig.Params[0] != in.Primitive(types.I64) {
		t.Errorf("push param type = %s, want I64", inst.Sig.Params[0].String())
	}
	if inst.SelfKind != "mut ref this" {
		t.Errorf("SelfKind = %q, want %q", inst.SelfKind, "mut ref this")
	}
}

func TestMonomorphizerDedupesRepeatedRequests(t *testing.T) {
	env := types.NewTypeEnv()
	in := env.Interner
	generic := in.Generic("T")

	env.RegisterImpl(&types.ImplBlock{
		TargetTypeName: "Box",
		TypeParams:     []string{"T"},
		Methods: []*types.Method{{
			Sig: &types.FuncSig{
				Name:       "get",
				Params:     []*types.Type{},
				ReturnType: generic,
				Span:       sp(),
			},
			SelfKind: "ref this",
			Body:     &ast.BlockStmt{SpanValue: sp()},
		}},
	})

	m := New(env)
	req := Request{TypeName: "Box", Method: "get", TypeArgs: []*types.Type{in.Primitive(types.Bool)}}
	m.Enqueue(req)
	m.Enqueue(req)

	results, err := m.Run()
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d instantiations after duplicate enqueue, want 1", len(results))
	}
}

func TestMonomorphizerMissingMethodErrors(t *testing.T) {
	env := types.NewTypeEnv()
	m := New(env)
	m.Enqueue(Request{TypeName: "Nope", Method: "nope"})

	if _, err := m.Run(); err == nil {
		t.Error("expected an error for an unregistered method request")
	}
}
