package plugin

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	goplugin "plugin"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/tml-lang/tmlc/internal/atomicfile"
	"github.com/tml-lang/tmlc/internal/config"
)

// LoadedPlugin is a borrowed reference to one successfully initialized
// plugin: its metadata plus the three mandatory symbols resolved to
// their Go function types.
type LoadedPlugin struct {
	Name string
	Info *PluginInfo

	handle   *goplugin.Plugin
	query    PluginQueryFunc
	initFn   PluginInitFunc
	shutdown PluginShutdownFunc
}

// Symbol resolves an additional exported symbol by name, for the
// extension lookups spec section 4.5 describes (e.g. a compiler
// plugin's own further-delegated entry points). Call this only after
// the plugin has already been loaded.
func (lp *LoadedPlugin) Symbol(name string) (goplugin.Symbol, error) {
	sym, err := lp.handle.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("plugin: %s: symbol %s: %w", lp.Name, name, err)
	}
	return sym, nil
}

// Loader discovers, decompresses, opens, and tracks plugin handles.
// It owns every handle it hands out; callers hold borrowed references
// valid until UnloadAll.
type Loader struct {
	searchPaths []string
	cacheDir    string
	index       *config.PluginCacheIndex

	mu     sync.Mutex
	loaded map[string]*LoadedPlugin
	order  []string // load order, for reverse-order unload
}

// NewLoader builds the search path order of spec section 4.5 step 1:
// (a) <exeDir>/plugins/, (b) $PLUGIN_DIR, (c) <exeDir>/../lib/tml/plugins/.
func NewLoader(exeDir, cacheDir string) *Loader {
	paths := []string{filepath.Join(exeDir, "plugins")}
	if pd := os.Getenv("PLUGIN_DIR"); pd != "" {
		paths = append(paths, pd)
	}
	paths = append(paths, filepath.Join(exeDir, "..", "lib", "tml", "plugins"))

	return &Loader{
		searchPaths: paths,
		cacheDir:    cacheDir,
		index:       config.NewPluginCacheIndex(cacheDir),
		loaded:      make(map[string]*LoadedPlugin),
	}
}

// pluginExt is the platform's shared library extension. Build-tagged
// Windows/Darwin variants would override this; this toolchain's
// primary target is Linux, so ".so" is the default.
const pluginExt = "so"

// Load resolves name to a shared library, decompressing it into the
// cache if needed, opens it, validates the ABI version, and calls
// PluginInit. A second Load of an already-loaded name returns the
// existing handle unchanged (step 6 of spec section 4.5).
func (l *Loader) Load(name string, hostCtx *HostContext) (*LoadedPlugin, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lp, ok := l.loaded[name]; ok {
		return lp, nil
	}

	path, err := l.resolve(name)
	if err != nil {
		return nil, err
	}

	handle, err := goplugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("plugin: open %s: %w", path, err)
	}

	querySym, err := handle.Lookup(SymPluginQuery)
	if err != nil {
		return nil, fmt.Errorf("plugin: %s: missing %s: %w", name, SymPluginQuery, err)
	}
	query, ok := querySym.(PluginQueryFunc)
	if !ok {
		return nil, fmt.Errorf("plugin: %s: %s has wrong type", name, SymPluginQuery)
	}

	info := query()
	if info == nil {
		return nil, fmt.Errorf("plugin: %s: %s returned nil", name, SymPluginQuery)
	}
	if info.ABIVersion != ABIVersion {
		return nil, fmt.Errorf("plugin: %s: ABI version %d, want %d", name, info.ABIVersion, ABIVersion)
	}

	initSym, err := handle.Lookup(SymPluginInit)
	if err != nil {
		return nil, fmt.Errorf("plugin: %s: missing %s: %w", name, SymPluginInit, err)
	}
	initFn, ok := initSym.(PluginInitFunc)
	if !ok {
		return nil, fmt.Errorf("plugin: %s: %s has wrong type", name, SymPluginInit)
	}

	shutdownSym, err := handle.Lookup(SymPluginShutdown)
	if err != nil {
		return nil, fmt.Errorf("plugin: %s: missing %s: %w", name, SymPluginShutdown, err)
	}
	shutdownFn, ok := shutdownSym.(PluginShutdownFunc)
	if !ok {
		return nil, fmt.Errorf("plugin: %s: %s has wrong type", name, SymPluginShutdown)
	}

	if rc := initFn(hostCtx); rc != 0 {
		return nil, fmt.Errorf("plugin: %s: PluginInit returned %d", name, rc)
	}

	lp := &LoadedPlugin{Name: name, Info: info, handle: handle, query: query, initFn: initFn, shutdown: shutdownFn}
	l.loaded[name] = lp
	l.order = append(l.order, name)
	return lp, nil
}

// resolve finds name's shared library across the search paths, either
// ready to load or as a zstd-compressed artifact to be decompressed
// into the cache first.
func (l *Loader) resolve(name string) (string, error) {
	for _, dir := range l.searchPaths {
		raw := filepath.Join(dir, name+"."+pluginExt)
		if fileExists(raw) {
			return raw, nil
		}
		compressed := raw + ".zst"
		if fileExists(compressed) {
			return l.decompressCached(name, compressed)
		}
	}
	return "", fmt.Errorf("plugin: %s not found in %v", name, l.searchPaths)
}

// decompressCached implements spec section 4.5 step 3: check the cache
// index for an existing decompression whose recorded CRC32 matches the
// compressed artifact; if not, decompress into the cache and record it.
// The cache never shrinks automatically, so a stale index entry that
// fails validation simply gets overwritten, never deleted.
func (l *Loader) decompressCached(name, compressedPath string) (string, error) {
	compressed, err := os.ReadFile(compressedPath)
	if err != nil {
		return "", fmt.Errorf("plugin: read %s: %w", compressedPath, err)
	}
	sum := crc32.ChecksumIEEE(compressed)

	decompPath := filepath.Join(l.cacheDir, "plugins", name+"."+pluginExt)
	if entry, ok := l.index.Lookup(name); ok && entry.CRC32 == sum && fileExists(entry.DecompPath) {
		return entry.DecompPath, nil
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return "", fmt.Errorf("plugin: init zstd reader: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return "", fmt.Errorf("plugin: decompress %s: %w", compressedPath, err)
	}

	if err := atomicfile.WriteFile(decompPath, out, 0o755); err != nil {
		return "", fmt.Errorf("plugin: write decompressed %s: %w", decompPath, err)
	}
	if err := l.index.Record(name, config.Entry{CRC32: sum, DecompPath: decompPath}); err != nil {
		return "", fmt.Errorf("plugin: record cache index for %s: %w", name, err)
	}
	return decompPath, nil
}

// UnloadAll calls Shutdown on every loaded plugin in reverse load
// order, per spec section 4.5's unload contract. The OS never truly
// releases a Go plugin handle (the runtime provides no dlclose), so
// this only runs teardown hooks and clears the loader's bookkeeping.
func (l *Loader) UnloadAll() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := len(l.order) - 1; i >= 0; i-- {
		name := l.order[i]
		if lp, ok := l.loaded[name]; ok {
			lp.shutdown()
		}
	}
	l.loaded = make(map[string]*LoadedPlugin)
	l.order = nil
}

// Get returns an already-loaded plugin by name, if any.
func (l *Loader) Get(name string) (*LoadedPlugin, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lp, ok := l.loaded[name]
	return lp, ok
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
