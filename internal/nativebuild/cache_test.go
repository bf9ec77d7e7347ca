package nativebuild

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestHashFlagsDiffersOnOptLevel(t *testing.T) {
	a := HashFlags(CompileOptions{OptLevel: 0})
	b := HashFlags(CompileOptions{OptLevel: 3})
	if a == b {
		t.Errorf("HashFlags() same for OptLevel 0 and 3: %d", a)
	}
}

func TestHashFlagsStableForSameOptions(t *testing.T) {
	opts := CompileOptions{OptLevel: 2, DebugInfo: true, TargetTriple: "x86_64-unknown-linux-gnu"}
	if HashFlags(opts) != HashFlags(opts) {
		t.Errorf("HashFlags() not stable across identical calls")
	}
}

func TestObjectCacheGetOrCompileWritesOnce(t *testing.T) {
	dir := t.TempDir()
	c := NewObjectCache(dir)
	key := CacheKey{Path: "/src/runtime.c", FlagHash: 42}

	calls := 0
	compile := func(outPath string) error {
		calls++
		return os.WriteFile(outPath, []byte("object bytes"), 0o644)
	}

	path1, err := c.GetOrCompile(context.Background(), key, compile)
	if err != nil {
		t.Fatalf("GetOrCompile() error = %v", err)
	}
	path2, err := c.GetOrCompile(context.Background(), key, compile)
	if err != nil {
		t.Fatalf("GetOrCompile() second call error = %v", err)
	}

	if path1 != path2 {
		t.Errorf("GetOrCompile() paths differ: %q vs %q", path1, path2)
	}
	if calls != 1 {
		t.Errorf("compile called %d times, want 1 (second call should hit cache)", calls)
	}
}

func TestObjectCachePathIncludesFlagHash(t *testing.T) {
	c := NewObjectCache(t.TempDir())
	p1 := c.Path(CacheKey{Path: "/src/runtime.c", FlagHash: 1})
	p2 := c.Path(CacheKey{Path: "/src/runtime.c", FlagHash: 2})
	if p1 == p2 {
		t.Errorf("Path() identical for different FlagHash values: %q", p1)
	}
	if filepath.Dir(p1) != c.dir {
		t.Errorf("Path() = %q, want under %q", p1, c.dir)
	}
}
