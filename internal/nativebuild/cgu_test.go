package nativebuild

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
)

// fakeBackend compiles by returning the requested output path instead
// of shelling out, so the worker pool's dispatch logic can be tested
// without a real clang binary.
type fakeBackend struct {
	instances int32
}

func (b *fakeBackend) IsAvailable() bool { return true }
func (b *fakeBackend) CompileIRToObject(_ context.Context, _, outPath string, _ CompileOptions) (CompileResult, error) {
	return CompileResult{Success: true, ObjectPath: outPath}, nil
}
func (b *fakeBackend) CompileIRToBuffer(context.Context, string, CompileOptions) (CompileResult, error) {
	return CompileResult{}, nil
}

func TestCompileCGUsRunsEveryUnit(t *testing.T) {
	var instanceCount int32
	newBackend := func() Backend {
		atomic.AddInt32(&instanceCount, 1)
		return &fakeBackend{}
	}

	cgus := make([]CGU, 8)
	for i := range cgus {
		cgus[i] = CGU{Name: fmt.Sprintf("cgu%d", i), IR: "; empty module"}
	}

	results := CompileCGUs(context.Background(), newBackend, cgus, t.TempDir(), CompileOptions{}, 4)
	if len(results) != len(cgus) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(cgus))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("results[%d].Err = %v", i, r.Err)
		}
		if r.Name != cgus[i].Name {
			t.Errorf("results[%d].Name = %q, want %q", i, r.Name, cgus[i].Name)
		}
	}
}

func TestCompileCGUsCreatesOneBackendPerWorkerNotPerCGU(t *testing.T) {
	var instanceCount int32
	newBackend := func() Backend {
		atomic.AddInt32(&instanceCount, 1)
		return &fakeBackend{}
	}

	cgus := make([]CGU, 20)
	for i := range cgus {
		cgus[i] = CGU{Name: fmt.Sprintf("cgu%d", i)}
	}

	CompileCGUs(context.Background(), newBackend, cgus, t.TempDir(), CompileOptions{}, 3)

	if instanceCount != 3 {
		t.Errorf("backend instances created = %d, want 3 (one per worker)", instanceCount)
	}
}

func TestCompileCGUsEmptyInput(t *testing.T) {
	results := CompileCGUs(context.Background(), func() Backend { return &fakeBackend{} }, nil, t.TempDir(), CompileOptions{}, 4)
	if len(results) != 0 {
		t.Errorf("results for empty input = %v, want empty", results)
	}
}
