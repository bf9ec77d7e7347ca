package nativebuild

import (
	"context"
	"os"
	"testing"

	"github.com/tml-lang/tmlc/internal/plugin"
)

func TestPluginBackendCompileIRToObject(t *testing.T) {
	cg := &plugin.Codegen{
		CompileIRToObject: func(ir, outPath string, optLevel int, debugInfo bool) (string, bool) {
			return "", true
		},
		IsAvailable: func() bool { return true },
	}
	b := NewPluginBackend(cg)

	res, err := b.CompileIRToObject(context.Background(), "; ir", "/tmp/out.o", CompileOptions{})
	if err != nil {
		t.Fatalf("CompileIRToObject() error = %v", err)
	}
	if !res.Success || res.ObjectPath != "/tmp/out.o" {
		t.Errorf("CompileIRToObject() result = %+v", res)
	}
}

func TestPluginBackendCompileIRToObjectFailure(t *testing.T) {
	cg := &plugin.Codegen{
		CompileIRToObject: func(ir, outPath string, optLevel int, debugInfo bool) (string, bool) {
			return "bad IR", false
		},
	}
	b := NewPluginBackend(cg)

	_, err := b.CompileIRToObject(context.Background(), "; ir", "/tmp/out.o", CompileOptions{})
	if err == nil {
		t.Fatalf("CompileIRToObject() error = nil, want failure")
	}
}

func TestPluginBackendCompileIRToBuffer(t *testing.T) {
	cg := &plugin.Codegen{
		CompileIRToObject: func(ir, outPath string, optLevel int, debugInfo bool) (string, bool) {
			if err := os.WriteFile(outPath, []byte("object"), 0o644); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			return "", true
		},
	}
	b := NewPluginBackend(cg)

	res, err := b.CompileIRToBuffer(context.Background(), "; ir", CompileOptions{})
	if err != nil {
		t.Fatalf("CompileIRToBuffer() error = %v", err)
	}
	if string(res.ObjectData) != "object" {
		t.Errorf("CompileIRToBuffer() data = %q, want %q", res.ObjectData, "object")
	}
}

func TestPluginLinkerLink(t *testing.T) {
	cg := &plugin.Codegen{
		LinkObjects: func(objPaths []string, outPath string, outputType plugin.OutputType) (string, bool) {
			if outputType != plugin.OutputSharedLib {
				t.Errorf("outputType = %v, want OutputSharedLib", outputType)
			}
			return "", true
		},
	}
	l := NewPluginLinker(cg)

	res, err := l.Link(context.Background(), []string{"a.o"}, "out.so", LinkOptions{OutputType: OutputSharedLib})
	if err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	if !res.Success {
		t.Errorf("Link() result = %+v, want success", res)
	}
}
