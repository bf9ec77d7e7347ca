package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestNewLoaderSearchPathOrder(t *testing.T) {
	t.Setenv("PLUGIN_DIR", "/opt/tml/plugins")

	l := NewLoader("/usr/bin", "/var/cache/tml")
	want := []string{
		filepath.Join("/usr/bin", "plugins"),
		"/opt/tml/plugins",
		filepath.Join("/usr/bin", "..", "lib", "tml", "plugins"),
	}
	if len(l.searchPaths) != len(want) {
		t.Fatalf("searchPaths = %v, want %v", l.searchPaths, want)
	}
	for i := range want {
		if l.searchPaths[i] != want[i] {
			t.Errorf("searchPaths[%d] = %q, want %q", i, l.searchPaths[i], want[i])
		}
	}
}

func TestNewLoaderSearchPathOrderNoPluginDirEnv(t *testing.T) {
	t.Setenv("PLUGIN_DIR", "")

	l := NewLoader("/usr/bin", "/var/cache/tml")
	want := []string{
		filepath.Join("/usr/bin", "plugins"),
		filepath.Join("/usr/bin", "..", "lib", "tml", "plugins"),
	}
	if len(l.searchPaths) != len(want) {
		t.Fatalf("searchPaths = %v, want %v", l.searchPaths, want)
	}
}

func TestLoaderResolveNotFound(t *testing.T) {
	l := NewLoader(t.TempDir(), t.TempDir())
	if _, err := l.resolve("tml_compiler"); err == nil {
		t.Fatalf("resolve() on empty search path = nil error, want not-found")
	}
}

func TestLoaderDecompressCachedPopulatesIndex(t *testing.T) {
	pluginDir := t.TempDir()
	cacheDir := t.TempDir()

	content := []byte("pretend shared library bytes")
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd.NewWriter() error = %v", err)
	}
	compressed := enc.EncodeAll(content, nil)
	enc.Close()

	compressedPath := filepath.Join(pluginDir, "tml_codegen_x86.so.zst")
	if err := os.WriteFile(compressedPath, compressed, 0o644); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}

	l := NewLoader(pluginDir, cacheDir)
	decompPath, err := l.decompressCached("tml_codegen_x86", compressedPath)
	if err != nil {
		t.Fatalf("decompressCached() error = %v", err)
	}

	got, err := os.ReadFile(decompPath)
	if err != nil {
		t.Fatalf("os.ReadFile(%s) error = %v", decompPath, err)
	}
	if string(got) != string(content) {
		t.Errorf("decompressed content = %q, want %q", got, content)
	}

	entry, ok := l.index.Lookup("tml_codegen_x86")
	if !ok {
		t.Fatalf("index.Lookup() after decompressCached() found nothing")
	}
	if entry.DecompPath != decompPath {
		t.Errorf("index entry path = %q, want %q", entry.DecompPath, decompPath)
	}

	// A second call with the same compressed artifact should hit the
	// cache and return the same path without re-decompressing.
	again, err := l.decompressCached("tml_codegen_x86", compressedPath)
	if err != nil {
		t.Fatalf("decompressCached() second call error = %v", err)
	}
	if again != decompPath {
		t.Errorf("second decompressCached() = %q, want %q (cache hit)", again, decompPath)
	}
}

func TestHasCapability(t *testing.T) {
	info := &PluginInfo{Capabilities: []string{CapParse, CapCodegenIR}}
	if !hasCapability(info, CapCodegenIR) {
		t.Errorf("hasCapability(%v, %s) = false, want true", info.Capabilities, CapCodegenIR)
	}
	if hasCapability(info, CapLink) {
		t.Errorf("hasCapability(%v, %s) = true, want false", info.Capabilities, CapLink)
	}
}

func TestUnloadAllIsSafeWhenEmpty(t *testing.T) {
	l := NewLoader(t.TempDir(), t.TempDir())
	l.UnloadAll() // must not panic with nothing loaded
}
