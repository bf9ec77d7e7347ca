package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tml-lang/tmlc/internal/plugin"
)

// loadCompilerPlugin resolves the running executable's directory,
// builds a plugin.Loader rooted there with the user's cache directory,
// and loads the tml_compiler plugin. build, run, check, test, fmt, lint,
// lex and parse call it before doing anything else; mcp loads the
// tml_mcp plugin itself, and init, explain, version and help load none.
func loadCompilerPlugin() (*plugin.LoadedPlugin, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("tml: locate executable: %w", err)
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	cacheDir = filepath.Join(cacheDir, "tml")

	loader := plugin.NewLoader(filepath.Dir(exe), cacheDir)
	lp, err := loader.Load(plugin.NameCompiler, &plugin.HostContext{Verbose: verbose})
	if err != nil {
		return nil, fmt.Errorf("tml: load %s: %w", plugin.NameCompiler, err)
	}
	return lp, nil
}

// defaultOutputPath strips the source extension to derive an output
// binary name, e.g. "main.tml" -> "main".
func defaultOutputPath(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	if ext == "" {
		return sourcePath + ".out"
	}
	return sourcePath[:len(sourcePath)-len(ext)]
}
