package monomorph

import "github.com/tml-lang/tmlc/internal/types"

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
