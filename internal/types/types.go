// Package types implements the Type sum of spec.md §3 and its interning
// invariant ("every Type node is interned by structural identity during
// checking; two syntactically equal types share the same identity").
//
// Grounded on internal/types/*.go from the teacher, generalized from
// DWScript's class-hierarchy type model to TML's full sum (primitives,
// named types with type arguments, generics, refs, pointers, arrays,
// slices, tuples, funcs, closures, class types, dyn-behavior types),
// and on spec.md §9's "Arena-owned Type nodes with integer indices"
// design note — here expressed as pointer identity into one Interner
// rather than raw integer indices, which is the idiomatic Go rendering
// of the same arena-ownership idea (a *Type is stable and comparable
// for the program's lifetime once interned).
package types

import (
	"fmt"
	"strings"
)

// Kind discriminates the Type sum's variants.
type Kind int

const (
	KindPrimitive Kind = iota
	KindNamed
	KindGeneric
	KindRef
	KindPtr
	KindArray
	KindSlice
	KindTuple
	KindFunc
	KindClosure
	KindClassType
	KindDynBehavior
)

// Primitive enumerates spec.md §3's primitive kinds.
type Primitive int

const (
	I8 Primitive = iota
	I16
	I32
	I64
	I128
	U8
	U16
	U32
	U64
	U128
	F32
	F64
	Bool
	Char
	Str
	Unit
	Never
)

var primitiveNames = map[Primitive]string{
	I8: "I8", I16: "I16", I32: "I32", I64: "I64", I128: "I128",
	U8: "U8", U16: "U16", U32: "U32", U64: "U64", U128: "U128",
	F32: "F32", F64: "F64", Bool: "Bool", Char: "Char", Str: "Str",
	Unit: "Unit", Never: "Never",
}

func (p Primitive) String() string { return primitiveNames[p] }

// IsInteger reports whether p is one of the I*/U* kinds.
func (p Primitive) IsInteger() bool { return p <= U128 }

// IsSigned reports whether p is one of the I* kinds.
func (p Primitive) IsSigned() bool { return p <= I128 }

// IsFloat reports whether p is F32 or F64.
func (p Primitive) IsFloat() bool { return p == F32 || p == F64 }

// BitWidth returns the integer's bit width, or 0 for non-integers.
func (p Primitive) BitWidth() int {
	switch p {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32:
		return 32
	case I64, U64:
		return 64
	case I128, U128:
		return 128
	default:
		return 0
	}
}

// Type is the single concrete representation of every variant in
// spec.md §3's Type sum. Only the fields relevant to Kind are
// meaningful; this mirrors the teacher's practice of one struct per
// AST concept rather than a Go sum via interfaces, chosen here because
// interning requires one canonical comparable key function
// (CanonicalKey) shared across all variants.
type Type struct {
	Kind Kind

	// KindPrimitive
	Prim Primitive

	// KindNamed / KindGeneric / KindClassType
	Name       string
	ModulePath string
	TypeArgs   []*Type
	Base       *Type // KindClassType: base class, nil for a root class

	// KindRef / KindPtr
	IsMut    bool
	Inner    *Type
	Lifetime string

	// KindArray
	ElementArr *Type
	Size       int64 // evaluated const size; part of type identity

	// KindSlice
	ElementSlice *Type

	// KindTuple
	Elements []*Type

	// KindFunc / KindClosure
	Params     []*Type
	ReturnType *Type

	// KindDynBehavior
	BehaviorName string

	key string // memoized CanonicalKey, set once at intern time
}

// CanonicalKey returns the structural key used for interning: two
// Types with an equal key MUST be pointer-identical once both have
// passed through an Interner.
func (t *Type) CanonicalKey() string {
	if t.key != "" {
		return t.key
	}
	return t.computeKey()
}

func (t *Type) computeKey() string {
	switch t.Kind {
	case KindPrimitive:
		return "prim:" + t.Prim.String()
	case KindNamed:
		return "named:" + t.ModulePath + ":" + t.Name + argsKey(t.TypeArgs)
	case KindGeneric:
		return "generic:" + t.Name
	case KindRef:
		return fmt.Sprintf("ref:%v:%s:%s", t.IsMut, t.Inner.CanonicalKey(), t.Lifetime)
	case KindPtr:
		return fmt.Sprintf("ptr:%v:%s", t.IsMut, t.Inner.CanonicalKey())
	case KindArray:
		return fmt.Sprintf("array:%s:%d", t.ElementArr.CanonicalKey(), t.Size)
	case KindSlice:
		return "slice:" + t.ElementSlice.CanonicalKey()
	case KindTuple:
		return "tuple:" + argsKey(t.Elements)
	case KindFunc:
		return "func:" + argsKey(t.Params) + "->" + t.ReturnType.CanonicalKey()
	case KindClosure:
		base := "closure:" + argsKey(t.Params) + "->" + t.ReturnType.CanonicalKey()
		if t.Base != nil {
			base += ":" + t.Base.CanonicalKey()
		}
		return base
	case KindClassType:
		k := "class:" + t.Name
		if t.Base != nil {
			k += ":" + t.Base.CanonicalKey()
		}
		return k
	case KindDynBehavior:
		return "dyn:" + t.BehaviorName + argsKey(t.TypeArgs)
	default:
		return "unknown"
	}
}

func argsKey(args []*Type) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.CanonicalKey()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// String renders the type in TML surface syntax, best-effort.
func (t *Type) String() string {
	switch t.Kind {
	case KindPrimitive:
		return t.Prim.String()
	case KindNamed:
		if len(t.TypeArgs) == 0 {
			return t.Name
		}
		return t.Name + "[" + joinTypeStrings(t.TypeArgs) + "]"
	case KindGeneric:
		return t.Name
	case KindRef:
		if t.IsMut {
			return "mut ref " + t.Inner.String()
		}
		return "ref " + t.Inner.String()
	case KindPtr:
		if t.IsMut {
			return "mutptr " + t.Inner.String()
		}
		return "ptr " + t.Inner.String()
	case KindArray:
		return fmt.Sprintf("[%s; %d]", t.ElementArr.String(), t.Size)
	case KindSlice:
		return "[" + t.ElementSlice.String() + "]"
	case KindTuple:
		return "(" + joinTypeStrings(t.Elements) + ")"
	case KindFunc:
		return "func(" + joinTypeStrings(t.Params) + ") -> " + t.ReturnType.String()
	case KindClosure:
		return "|" + joinTypeStrings(t.Params) + "| -> " + t.ReturnType.String()
	case KindClassType:
		return t.Name
	case KindDynBehavior:
		if len(t.TypeArgs) == 0 {
			return "dyn " + t.BehaviorName
		}
		return "dyn " + t.BehaviorName + "[" + joinTypeStrings(t.TypeArgs) + "]"
	default:
		return "<?>"
	}
}

func joinTypeStrings(ts []*Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// IsSmartPointer reports whether Name is one of the auto-deref smart
// pointer families named in spec.md §4.1 (Arc, Box/Heap, Rc, Shared,
// MutexGuard, RwLock*Guard, Ref, RefMut).
func IsSmartPointer(name string) bool {
	switch name {
	case "Arc", "Box", "Heap", "Rc", "Shared", "MutexGuard",
		"RwLockReadGuard", "RwLockWriteGuard", "Ref", "RefMut":
		return true
	default:
		return false
	}
}

// ReservedPrimitiveNames lists identifiers that cannot be redeclared
// per spec.md §4.1 (failure T038).
var ReservedPrimitiveNames = map[string]bool{
	"I8": true, "I16": true, "I32": true, "I64": true, "I128": true,
	"U8": true, "U16": true, "U32": true, "U64": true, "U128": true,
	"F32": true, "F64": true, "Bool": true, "Char": true, "Str": true,
	"Unit": true, "Never": true, "StringBuilder": true, "Future": true,
	"Context": true, "Waker": true,
}
