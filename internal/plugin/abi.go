// Package plugin loads the compiler's optional capabilities (parse,
// typecheck, codegen, test running, formatting, the MCP server, ...)
// from separately built, optionally compressed shared objects with a
// fixed ABI, grounded directly on
// _examples/original_source/compiler/include/plugin/{abi.h,loader.hpp}.
//
// Go has no portable way to dlopen a true C ABI without cgo. This
// package expresses the same loader contract (search path order,
// zstd-or-raw discovery, CRC32 cache validation, ABI-version check,
// idempotent load, reverse-order unload) using Go's own plugin package
// (plugin.Open/plugin.Lookup) as the dlopen/dlsym analogue: a plugin
// target here is a .so built with `go build -buildmode=plugin`
// exporting the symbols named by the Sym* constants below, each typed
// as the Go function the C declaration would marshal to.
package plugin

// ABIVersion is the loader's required plugin ABI version. A plugin
// reporting any other value in its PluginInfo is rejected.
const ABIVersion uint32 = 1

// PluginInfo is the Go-typed mirror of the C PluginInfo struct: static
// metadata a plugin owns and the loader never mutates or frees.
type PluginInfo struct {
	ABIVersion   uint32
	Name         string
	Version      string
	Capabilities []string
	Dependencies []string
}

// Capability strings a plugin's PluginInfo.Capabilities may list.
const (
	CapParse        = "parse"
	CapTypecheck    = "typecheck"
	CapMIR          = "mir"
	CapCodegenIR    = "codegen_ir"
	CapTargetX86_64 = "target_x86_64"
	CapTargetAArch64 = "target_aarch64"
	CapTargetCUDA   = "target_cuda"
	CapEmitObj      = "emit_obj"
	CapEmitAsm      = "emit_asm"
	CapLink         = "link"
	CapFormat       = "format"
	CapLint         = "lint"
	CapDoc          = "doc"
	CapSearch       = "search"
	CapTestRun      = "test_run"
	CapCoverage     = "coverage"
	CapBenchmark    = "benchmark"
	CapFuzz         = "fuzz"
	CapMCPServer    = "mcp_server"
)

// Plugin names of the five artifacts the persisted layout ships,
// confirmed as the complete set by the five stub plugin sources under
// original_source/compiler/src/plugin.
const (
	NameCompiler   = "tml_compiler"
	NameCodegenX86 = "tml_codegen_x86"
	NameTools      = "tml_tools"
	NameTest       = "tml_test"
	NameMCP        = "tml_mcp"
)

// Exported symbol names every plugin must provide. A host looks these
// up via (*plugin.Plugin).Lookup after Open succeeds.
const (
	SymPluginQuery    = "PluginQuery"
	SymPluginInit     = "PluginInit"
	SymPluginShutdown = "PluginShutdown"
)

// Additional symbol names a codegen-capable plugin (CapCodegenIR) must
// also export, the Go-typed equivalent of spec section 6.2's C surface.
const (
	SymCodegenCompileIRToObject = "CodegenCompileIRToObject"
	SymCodegenLinkObjects       = "CodegenLinkObjects"
	SymCodegenIsAvailable       = "CodegenIsAvailable"
	SymCodegenLLDIsAvailable    = "CodegenLLDIsAvailable"
)

// OutputType mirrors the C surface's output_type parameter.
type OutputType int

const (
	OutputExecutable OutputType = iota
	OutputSharedLib
	OutputStaticLib
)

// HostContext is passed to a plugin's PluginInit; plugins in this
// toolchain's scope do not need anything from it yet, but the symbol
// is kept non-empty so its shape can grow without an ABI version bump
// (new fields only, per spec's additive-versioning intent).
type HostContext struct {
	Verbose bool
}

// PluginQueryFunc, PluginInitFunc, and PluginShutdownFunc are the Go
// function types the three mandatory exported symbols must satisfy.
type (
	PluginQueryFunc    func() *PluginInfo
	PluginInitFunc     func(*HostContext) int
	PluginShutdownFunc func()
)

// CodegenCompileIRToObjectFunc, CodegenLinkObjectsFunc,
// CodegenIsAvailableFunc, and CodegenLLDIsAvailableFunc are the Go
// function types for the codegen plugin's additional C surface.
// Error strings are returned as a plain Go string rather than a
// caller-freed heap pointer (codegen_free_error has no Go-side
// counterpart: Go's garbage collector owns the string).
type (
	CodegenCompileIRToObjectFunc func(ir, outPath string, optLevel int, debugInfo bool) (err string, ok bool)
	CodegenLinkObjectsFunc       func(objPaths []string, outPath string, outputType OutputType) (err string, ok bool)
	CodegenIsAvailableFunc       func() bool
	CodegenLLDIsAvailableFunc    func() bool
)
