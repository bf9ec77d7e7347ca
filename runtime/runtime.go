// Package runtime embeds the small C runtime for native TML binaries:
// allocation, string, panic, list, and file-I/O symbols the IR
// generator assumes exist (the externs declared in internal/irgen's
// declareIntrinsics, and the C-level companions listed by SPEC_FULL.md's
// runtime glue module). Source holds the text of tml_rt.c. No package
// in this module reads Source: internal/nativebuild neither compiles
// nor links the runtime into a binary.
package runtime

import _ "embed"

//go:embed tml_rt.c
var Source string

// FileName is the name of the embedded runtime source file.
const FileName = "tml_rt.c"
