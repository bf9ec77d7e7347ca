// Package nativebuild turns generated LLVM IR into object files and
// object files into linked binaries, grounded on the teacher's
// pkg/platform/{native,wasm} split (two implementations behind one
// Platform interface) generalized here into one Backend/Linker pair
// with a plugin-backed implementation and a subprocess-shelled
// fallback, and on
// _examples/original_source/compiler/include/backend/{llvm_backend.hpp,lld_linker.hpp}
// for the exact method surface (CompileIRToObject, CompileIRToBuffer,
// Link, IsLLDAvailable).
package nativebuild

import "context"

// CompileOptions mirrors LLVMCompileOptions from llvm_backend.hpp.
type CompileOptions struct {
	OptLevel            int // 0-3
	DebugInfo           bool
	TargetTriple        string // empty means host-native
	CPU                 string
	Features            string
	PositionIndependent bool
}

// CompileResult mirrors LLVMCompileResult.
type CompileResult struct {
	Success    bool
	ObjectPath string
	ObjectData []byte
	Error      string
	Warnings   []string
}

// OutputType mirrors LLDOutputType from lld_linker.hpp.
type OutputType int

const (
	OutputExecutable OutputType = iota
	OutputSharedLib
	OutputStaticLib
)

// LinkOptions mirrors LLDLinkOptions.
type LinkOptions struct {
	OutputType      OutputType
	LibraryPaths    []string
	Libraries       []string
	ExtraFlags      []string
	TargetTriple    string
	Subsystem       string // Windows: "console", "windows"
	DebugInfo       bool
	EntryPoint      string
	ExportAllSyms   bool
	ImportLib       bool
}

// LinkResult mirrors LLDLinkResult.
type LinkResult struct {
	Success    bool
	OutputFile string
	ImportLib  string
	Error      string
	Warnings   []string
}

// Backend compiles LLVM IR text to an object file or in-memory buffer.
type Backend interface {
	CompileIRToObject(ctx context.Context, ir, outPath string, opts CompileOptions) (CompileResult, error)
	CompileIRToBuffer(ctx context.Context, ir string, opts CompileOptions) (CompileResult, error)
	IsAvailable() bool
}

// Linker links object files into an executable, shared library, or
// static archive. The spec's "linker is not re-entrant" constraint
// applies only to in-process linker implementations; SerializedLinker
// (linker.go) is what actually enforces it for callers.
type Linker interface {
	Link(ctx context.Context, objectFiles []string, outPath string, opts LinkOptions) (LinkResult, error)
	IsAvailable() bool
	IsLLDAvailable() bool
}
