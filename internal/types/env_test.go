package types

import "testing"

func TestTypeEnvModuleRegistration(t *testing.T) {
	env := NewTypeEnv()
	m := env.Module("app.geometry")
	m.Structs["Point"] = &StructDef{QualifiedName: "app.geometry.Point"}

	again := env.Module("app.geometry")
	if again != m {
		t.Fatalf("Module() returned a different instance on second call")
	}
	if _, ok := again.Structs["Point"]; !ok {
		t.Fatalf("Point struct lost across Module() calls")
	}
}

func TestTypeEnvSatisfiesAndFindMethod(t *testing.T) {
	env := NewTypeEnv()
	sig := &FuncSig{Name: "describe", ReturnType: env.Interner.Str()}
	impl := &ImplBlock{
		TargetTypeName: "Point",
		BehaviorName:   "Display",
		Methods:        []*Method{{Sig: sig, SelfKind: "ref this"}},
	}
	env.RegisterImpl(impl)

	if !env.Satisfies("Point", "Display") {
		t.Errorf("Satisfies(Point, Display) = false, want true")
	}
	if env.Satisfies("Point", "Debug") {
		t.Errorf("Satisfies(Point, Debug) = true, want false")
	}

	method, owner, ok := env.FindMethod("Point", "describe")
	if !ok {
		t.Fatalf("FindMethod(Point, describe) not found")
	}
	if method.Sig.Name != "describe" || owner.BehaviorName != "Display" {
		t.Errorf("FindMethod returned wrong method/impl: %+v / %+v", method, owner)
	}

	if _, _, ok := env.FindMethod("Point", "missing"); ok {
		t.Errorf("FindMethod(Point, missing) = true, want false")
	}
}

func TestTypeEnvInherentImplNotInBehaviorIndex(t *testing.T) {
	env := NewTypeEnv()
	env.RegisterImpl(&ImplBlock{
		TargetTypeName: "Point",
		Methods:        []*Method{{Sig: &FuncSig{Name: "new"}}},
	})

	if _, _, ok := env.FindMethod("Point", "new"); !ok {
		t.Fatalf("inherent method not found via FindMethod")
	}
	if len(env.Impls) != 0 {
		t.Errorf("inherent impl leaked into behavior ImplIndex: %v", env.Impls)
	}
}
