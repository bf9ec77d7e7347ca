package nativebuild

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// SubprocessBackend shells out to a clang-like driver to turn IR text
// into an object file, the fallback path spec section 4.4 describes
// for when no in-process backend is linked in. This toolchain never
// links LLVM's C API in-process (llir/llvm itself has no object
// emitter), so this is the only Backend implementation that does not
// require a codegen plugin.
type SubprocessBackend struct {
	ClangPath string
}

// NewSubprocessBackend returns a backend driving the named clang
// executable, or "clang" on PATH if clangPath is empty.
func NewSubprocessBackend(clangPath string) *SubprocessBackend {
	if clangPath == "" {
		clangPath = "clang"
	}
	return &SubprocessBackend{ClangPath: clangPath}
}

func (b *SubprocessBackend) IsAvailable() bool {
	_, err := exec.LookPath(b.ClangPath)
	return err == nil
}

func (b *SubprocessBackend) CompileIRToObject(ctx context.Context, ir, outPath string, opts CompileOptions) (CompileResult, error) {
	irFile, err := os.CreateTemp("", "tml-*.ll")
	if err != nil {
		return CompileResult{}, fmt.Errorf("nativebuild: create temp IR file: %w", err)
	}
	defer os.Remove(irFile.Name())
	if _, err := irFile.WriteString(ir); err != nil {
		irFile.Close()
		return CompileResult{}, fmt.Errorf("nativebuild: write temp IR file: %w", err)
	}
	irFile.Close()

	args := b.compileArgs(irFile.Name(), outPath, opts)
	cmd := exec.CommandContext(ctx, b.ClangPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return CompileResult{Success: false, Error: stderr.String()}, fmt.Errorf("nativebuild: clang: %w: %s", err, stderr.String())
	}
	return CompileResult{Success: true, ObjectPath: outPath}, nil
}

func (b *SubprocessBackend) CompileIRToBuffer(ctx context.Context, ir string, opts CompileOptions) (CompileResult, error) {
	outFile, err := os.CreateTemp("", "tml-*.o")
	if err != nil {
		return CompileResult{}, fmt.Errorf("nativebuild: create temp object file: %w", err)
	}
	outPath := outFile.Name()
	outFile.Close()
	defer os.Remove(outPath)

	res, err := b.CompileIRToObject(ctx, ir, outPath, opts)
	if err != nil {
		return res, err
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		return CompileResult{}, fmt.Errorf("nativebuild: read compiled object: %w", err)
	}
	res.ObjectData = data
	res.ObjectPath = ""
	return res, nil
}

func (b *SubprocessBackend) compileArgs(irPath, outPath string, opts CompileOptions) []string {
	args := []string{"-c", "-x", "ir", irPath, "-o", outPath, "-O" + strconv.Itoa(clamp(opts.OptLevel, 0, 3))}
	if opts.DebugInfo {
		args = append(args, "-g")
	}
	if opts.TargetTriple != "" {
		args = append(args, "-target", opts.TargetTriple)
	}
	if opts.CPU != "" {
		args = append(args, "-mcpu="+opts.CPU)
	}
	if opts.Features != "" {
		args = append(args, "-Xclang", "-target-feature", "-Xclang", opts.Features)
	}
	if opts.PositionIndependent {
		args = append(args, "-fPIC")
	}
	return args
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SubprocessLinker shells out to lld-link/ld.lld for executables and
// shared libraries, and to llvm-ar for static libraries. Static
// libraries always go through this path per spec section 4.4, even
// when a plugin-backed in-process linker is loaded.
type SubprocessLinker struct {
	LLDPath   string
	ArPath    string
}

// NewSubprocessLinker returns a linker driving the named lld/ar
// executables, defaulting to "ld.lld" and "llvm-ar" on PATH.
func NewSubprocessLinker(lldPath, arPath string) *SubprocessLinker {
	if lldPath == "" {
		lldPath = "ld.lld"
	}
	if arPath == "" {
		arPath = "llvm-ar"
	}
	return &SubprocessLinker{LLDPath: lldPath, ArPath: arPath}
}

func (l *SubprocessLinker) IsAvailable() bool {
	_, err := exec.LookPath(l.LLDPath)
	return err == nil
}

func (l *SubprocessLinker) IsLLDAvailable() bool { return l.IsAvailable() }

func (l *SubprocessLinker) Link(ctx context.Context, objectFiles []string, outPath string, opts LinkOptions) (LinkResult, error) {
	if opts.OutputType == OutputStaticLib {
		return l.archive(ctx, objectFiles, outPath)
	}

	args := append([]string{}, objectFiles...)
	args = append(args, "-o", outPath)
	for _, p := range opts.LibraryPaths {
		args = append(args, "-L"+p)
	}
	for _, lib := range opts.Libraries {
		args = append(args, "-l"+lib)
	}
	if opts.OutputType == OutputSharedLib {
		args = append(args, "-shared")
	}
	if opts.EntryPoint != "" {
		args = append(args, "-e", opts.EntryPoint)
	}
	args = append(args, opts.ExtraFlags...)

	cmd := exec.CommandContext(ctx, l.LLDPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return LinkResult{Success: false, Error: stderr.String()}, fmt.Errorf("nativebuild: %s: %w: %s", filepath.Base(l.LLDPath), err, stderr.String())
	}
	return LinkResult{Success: true, OutputFile: outPath}, nil
}

func (l *SubprocessLinker) archive(ctx context.Context, objectFiles []string, outPath string) (LinkResult, error) {
	args := append([]string{"rcs", outPath}, objectFiles...)
	cmd := exec.CommandContext(ctx, l.ArPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return LinkResult{Success: false, Error: stderr.String()}, fmt.Errorf("nativebuild: %s: %w: %s", filepath.Base(l.ArPath), err, stderr.String())
	}
	return LinkResult{Success: true, OutputFile: outPath}, nil
}
