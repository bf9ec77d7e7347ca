package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/tml-lang/tmlc/internal/atomicfile"
)

// PluginCacheIndex is the <cache_dir>/plugins/index.json file recording
// which compressed plugin artifacts have already been decompressed and
// under what CRC32 of the compressed source, so a loader can skip
// redundant decompression. It is read and patched with gjson/sjson
// rather than unmarshaled into a Go struct: each load touches exactly
// one plugin's entry, and the file otherwise holds entries this process
// never needs to understand (other plugins, other hosts sharing the
// same cache directory).
type PluginCacheIndex struct {
	path string
}

// NewPluginCacheIndex opens the index file rooted at cacheDir. The file
// itself need not exist yet; it is created on first Record.
func NewPluginCacheIndex(cacheDir string) *PluginCacheIndex {
	return &PluginCacheIndex{path: filepath.Join(cacheDir, "plugins", "index.json")}
}

// Entry is one plugin's recorded cache state.
type Entry struct {
	CRC32    uint32
	DecompPath string
}

// Lookup returns the recorded entry for name, if any.
func (idx *PluginCacheIndex) Lookup(name string) (Entry, bool) {
	data, err := os.ReadFile(idx.path)
	if err != nil {
		return Entry{}, false
	}
	result := gjson.GetBytes(data, "plugins."+gjsonEscape(name))
	if !result.Exists() {
		return Entry{}, false
	}
	return Entry{
		CRC32:      uint32(result.Get("crc32").Uint()),
		DecompPath: result.Get("path").String(),
	}, true
}

// Record patches in (or overwrites) the entry for name, creating the
// index file if it does not exist yet. The write is atomic: a
// concurrent reader never observes a half-written index.
func (idx *PluginCacheIndex) Record(name string, e Entry) error {
	data, err := os.ReadFile(idx.path)
	if err != nil {
		data = []byte("{}")
	}

	json := string(data)
	json, err = sjson.Set(json, "plugins."+gjsonEscape(name)+".crc32", e.CRC32)
	if err != nil {
		return fmt.Errorf("config: patch plugin index crc32: %w", err)
	}
	json, err = sjson.Set(json, "plugins."+gjsonEscape(name)+".path", e.DecompPath)
	if err != nil {
		return fmt.Errorf("config: patch plugin index path: %w", err)
	}

	return atomicfile.WriteFile(idx.path, []byte(json), 0o644)
}

// gjsonEscape escapes the path separators gjson/sjson treat specially
// (".", "*", "?") in a plugin name before using it as a path segment.
// Plugin names in this toolchain are simple identifiers (tml_compiler,
// tml_codegen_x86, ...) so this is a defensive no-op in practice.
func gjsonEscape(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r == '.' || r == '*' || r == '?' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
