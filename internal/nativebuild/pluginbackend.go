package nativebuild

import (
	"context"
	"fmt"

	"github.com/tml-lang/tmlc/internal/plugin"
)

// PluginBackend drives a loaded codegen plugin's C surface in process,
// preferred over SubprocessBackend whenever one is available (spec
// section 4.4's "prefer in-process when linked").
type PluginBackend struct {
	codegen *plugin.Codegen
}

// NewPluginBackend wraps an already-resolved codegen plugin surface.
func NewPluginBackend(cg *plugin.Codegen) *PluginBackend {
	return &PluginBackend{codegen: cg}
}

func (b *PluginBackend) IsAvailable() bool { return b.codegen.IsAvailable() }

func (b *PluginBackend) CompileIRToObject(_ context.Context, ir, outPath string, opts CompileOptions) (CompileResult, error) {
	errMsg, ok := b.codegen.CompileIRToObject(ir, outPath, opts.OptLevel, opts.DebugInfo)
	if !ok {
		return CompileResult{Success: false, Error: errMsg}, fmt.Errorf("nativebuild: plugin compile failed: %s", errMsg)
	}
	return CompileResult{Success: true, ObjectPath: outPath}, nil
}

// CompileIRToBuffer has no direct plugin-surface equivalent (the ABI
// only exposes compiling to a path); it compiles to a temp file and
// reads the bytes back, same as SubprocessBackend.CompileIRToBuffer.
func (b *PluginBackend) CompileIRToBuffer(ctx context.Context, ir string, opts CompileOptions) (CompileResult, error) {
	tmp, err := tempObjectPath()
	if err != nil {
		return CompileResult{}, err
	}
	defer removeQuiet(tmp)

	res, err := b.CompileIRToObject(ctx, ir, tmp, opts)
	if err != nil {
		return res, err
	}
	data, err := readAll(tmp)
	if err != nil {
		return CompileResult{}, err
	}
	res.ObjectData = data
	res.ObjectPath = ""
	return res, nil
}

// PluginLinker drives a loaded codegen plugin's link surface in
// process for executables and shared libraries. Static libraries are
// never routed here; SerializedLinker always uses the subprocess
// archiver for those, matching spec section 4.4.
type PluginLinker struct {
	codegen *plugin.Codegen
}

func NewPluginLinker(cg *plugin.Codegen) *PluginLinker {
	return &PluginLinker{codegen: cg}
}

func (l *PluginLinker) IsAvailable() bool    { return l.codegen.IsAvailable() }
func (l *PluginLinker) IsLLDAvailable() bool { return l.codegen.LLDIsAvailable() }

func (l *PluginLinker) Link(_ context.Context, objectFiles []string, outPath string, opts LinkOptions) (LinkResult, error) {
	errMsg, ok := l.codegen.LinkObjects(objectFiles, outPath, plugin.OutputType(opts.OutputType))
	if !ok {
		return LinkResult{Success: false, Error: errMsg}, fmt.Errorf("nativebuild: plugin link failed: %s", errMsg)
	}
	return LinkResult{Success: true, OutputFile: outPath}, nil
}
