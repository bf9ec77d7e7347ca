package types

import "testing"

func TestInternerStructuralIdentity(t *testing.T) {
	in := NewInterner()

	a := in.Primitive(I32)
	b := in.Primitive(I32)
	if a != b {
		t.Fatalf("Primitive(I32) not interned: %p != %p", a, b)
	}

	arr1 := in.Array(in.I32(), 16)
	arr2 := in.Array(in.I32(), 16)
	if arr1 != arr2 {
		t.Errorf("Array(I32, 16) not interned")
	}

	arr3 := in.Array(in.I32(), 8)
	if arr1 == arr3 {
		t.Errorf("Array(I32, 16) and Array(I32, 8) must be distinct types")
	}

	named1 := in.Named("app", "List", []*Type{in.I32()})
	named2 := in.Named("app", "List", []*Type{in.I32()})
	if named1 != named2 {
		t.Errorf("List[I32] not interned across separate calls")
	}

	named3 := in.Named("app", "List", []*Type{in.Bool()})
	if named1 == named3 {
		t.Errorf("List[I32] and List[Bool] must be distinct types")
	}
}

func TestCanonicalKeyDistinguishesRefMutability(t *testing.T) {
	in := NewInterner()
	ref := in.Ref(false, in.I32(), "")
	mutRef := in.Ref(true, in.I32(), "")
	if ref.CanonicalKey() == mutRef.CanonicalKey() {
		t.Errorf("ref I32 and mut ref I32 must have distinct keys")
	}
}

func TestTypeString(t *testing.T) {
	in := NewInterner()
	tests := []struct {
		ty   *Type
		want string
	}{
		{in.I32(), "I32"},
		{in.Slice(in.Bool()), "[Bool]"},
		{in.Array(in.I32(), 4), "[I32; 4]"},
		{in.Ref(true, in.I32(), ""), "mut ref I32"},
		{in.Named("", "List", []*Type{in.I32()}), "List[I32]"},
		{in.DynBehavior("Display", nil), "dyn Display"},
	}
	for _, tt := range tests {
		if got := tt.ty.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestIsSmartPointer(t *testing.T) {
	for _, name := range []string{"Arc", "Box", "Rc", "RwLockWriteGuard"} {
		if !IsSmartPointer(name) {
			t.Errorf("IsSmartPointer(%q) = false, want true", name)
		}
	}
	if IsSmartPointer("List") {
		t.Errorf("IsSmartPointer(List) = true, want false")
	}
}

func TestReservedPrimitiveNames(t *testing.T) {
	for _, name := range []string{"I32", "Str", "Future", "Waker"} {
		if !ReservedPrimitiveNames[name] {
			t.Errorf("ReservedPrimitiveNames[%q] = false, want true", name)
		}
	}
	if ReservedPrimitiveNames["MyStruct"] {
		t.Errorf("ReservedPrimitiveNames[MyStruct] = true, want false")
	}
}
