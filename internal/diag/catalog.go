package diag

// Catalog maps a stable short code (spec.md §7's T###/C###/E###
// families) to the canonical paragraph `tml explain <code>` prints.
// Grounded on the error codes spec.md §4.1 and §4.3 name explicitly;
// entries absent here still round-trip through explain as "no
// explanation on file for <code>" rather than panicking.
var Catalog = map[string]string{
	"T038": "Reserved name redeclared. Primitive type names (I8..I128, " +
		"U8..U128, F32, F64, Bool, Char, Str, Unit, Never, StringBuilder, " +
		"Future, Context, Waker) cannot be used as a struct, enum, class, " +
		"or type-alias name.",
	"T057": "Type mismatch. The expression's inferred or declared type does " +
		"not match the type required by its context (an assignment, a " +
		"return, a call argument, …).",
	"T078": "Unknown method on a class receiver. No method with this name " +
		"was found on the receiver's class or any class in its base chain.",
	"T079": "Unknown method on a dyn-behavior receiver. The behavior named " +
		"by the dyn type does not declare a method with this name.",
	"T080": "Pointer method called with the wrong number of arguments.",
	"T081": "Bitflag enum rule violated: all variants of an @flags enum " +
		"must be unit variants (no payload).",
	"T082": "Bitflag enum rule violated: discriminants must auto-assign as " +
		"powers of two and may not be hand-assigned.",
	"T083": "Bitflag enum has more variants than the underlying integer's " +
		"bit width allows.",
	"T084": "Bitflag enum's underlying type is not an unsigned integer.",
	"T-bound-unsatisfied": "A generic call site instantiates a type " +
		"parameter with a concrete type that does not implement one of the " +
		"behaviors named in the parameter's `where` clause.",
	"C003": "Malformed intrinsic call: wrong argument count for the " +
		"recognized intrinsic name.",
	"C006": "Malformed intrinsic call: an argument's type does not match " +
		"what the intrinsic requires.",
	"C015": "Unknown method encountered at the lowering stage after type " +
		"checking claimed it was resolved — an internal consistency error.",
	"C017": "Missing runtime symbol: the generated IR calls a runtime " +
		"function the linked C runtime does not provide.",
	"C018": "Atomic intrinsic used with an invalid ordering argument.",
	"C019": "compare_exchange / compare_exchange_weak signature mismatch: " +
		"the checker expects these to return Outcome[T, T].",
	"C021": "SIMD intrinsic used on a non-vector operand.",
	"C035": "Reflection intrinsic (field_count, field_offset, …) used on a " +
		"type that does not carry a Reflect derive.",
}

// Explain returns the canonical paragraph for a code, or a generic
// fallback when the code is not in the catalog.
func Explain(code string) string {
	if msg, ok := Catalog[code]; ok {
		return msg
	}
	return "no explanation on file for " + code
}
