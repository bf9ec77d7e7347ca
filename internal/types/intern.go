package types

// Interner owns every Type node created during one compilation, per
// spec.md §5's ownership rule ("The TypeEnv exclusively owns all type,
// decl, impl, and behavior objects"). Construct new Types only through
// an Interner's constructors so that CanonicalKey equality implies
// pointer equality.
type Interner struct {
	table map[string]*Type
}

// NewInterner creates an empty Interner. Primitive types are interned
// on first use, like every other type.
func NewInterner() *Interner {
	in := &Interner{table: make(map[string]*Type)}
	return in
}

func (in *Interner) intern(t *Type) *Type {
	key := t.computeKey()
	if existing, ok := in.table[key]; ok {
		return existing
	}
	t.key = key
	in.table[key] = t
	return t
}

// Primitive interns a primitive type.
func (in *Interner) Primitive(p Primitive) *Type {
	return in.intern(&Type{Kind: KindPrimitive, Prim: p})
}

// Named interns a (possibly generic) named type reference.
func (in *Interner) Named(modulePath, name string, typeArgs []*Type) *Type {
	return in.intern(&Type{Kind: KindNamed, ModulePath: modulePath, Name: name, TypeArgs: typeArgs})
}

// Generic interns an unbound type parameter.
func (in *Interner) Generic(name string) *Type {
	return in.intern(&Type{Kind: KindGeneric, Name: name})
}

// Ref interns a reference type.
func (in *Interner) Ref(isMut bool, inner *Type, lifetime string) *Type {
	return in.intern(&Type{Kind: KindRef, IsMut: isMut, Inner: inner, Lifetime: lifetime})
}

// Ptr interns a raw pointer type.
func (in *Interner) Ptr(isMut bool, inner *Type) *Type {
	return in.intern(&Type{Kind: KindPtr, IsMut: isMut, Inner: inner})
}

// Array interns a fixed-size array type; Size participates in identity
// per spec.md §4.2 ("arrays of different sizes are different types").
func (in *Interner) Array(element *Type, size int64) *Type {
	return in.intern(&Type{Kind: KindArray, ElementArr: element, Size: size})
}

// Slice interns an unsized slice type.
func (in *Interner) Slice(element *Type) *Type {
	return in.intern(&Type{Kind: KindSlice, ElementSlice: element})
}

// Tuple interns a tuple type.
func (in *Interner) Tuple(elements []*Type) *Type {
	return in.intern(&Type{Kind: KindTuple, Elements: elements})
}

// Func interns a function-pointer type.
func (in *Interner) Func(params []*Type, ret *Type) *Type {
	return in.intern(&Type{Kind: KindFunc, Params: params, ReturnType: ret})
}

// Closure interns a closure value's type.
func (in *Interner) Closure(params []*Type, ret *Type) *Type {
	return in.intern(&Type{Kind: KindClosure, Params: params, ReturnType: ret})
}

// ClassType interns a class type, optionally with a base class.
func (in *Interner) ClassType(name string, base *Type) *Type {
	return in.intern(&Type{Kind: KindClassType, Name: name, Base: base})
}

// DynBehavior interns a `dyn Behavior[Args]` existential type.
func (in *Interner) DynBehavior(behaviorName string, typeArgs []*Type) *Type {
	return in.intern(&Type{Kind: KindDynBehavior, BehaviorName: behaviorName, TypeArgs: typeArgs})
}

// Well-known convenience accessors, used throughout the checker so call
// sites don't repeat `in.Primitive(types.I32)`.
func (in *Interner) I32() *Type  { return in.Primitive(I32) }
func (in *Interner) Bool() *Type { return in.Primitive(Bool) }
func (in *Interner) Str() *Type  { return in.Primitive(Str) }
func (in *Interner) Unit() *Type { return in.Primitive(Unit) }
