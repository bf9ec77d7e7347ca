// Package config loads the project manifest and the plugin
// decompression-cache index, the two pieces of on-disk configuration
// state the rest of the toolchain treats as ambient. Grounded on the
// teacher's use of goccy/go-yaml and tidwall/gjson+sjson as indirect
// dependencies of its snapshot tooling, promoted here to direct,
// concrete uses.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Manifest is the parsed form of a project's tml.yaml: the handful of
// build settings a project can override rather than take from command
// line flags or host defaults.
type Manifest struct {
	TargetTriple string `yaml:"target_triple"`
	PluginDir    string `yaml:"plugin_dir"`
	OptLevel     int    `yaml:"opt_level"`
	CGUCount     int    `yaml:"cgu_count"`
}

// DefaultManifest returns the settings used when no tml.yaml is present:
// native target, no plugin dir override, unoptimized, one CGU per
// logical core is left to the caller (CGUCount 0 means "unspecified").
func DefaultManifest() *Manifest {
	return &Manifest{OptLevel: 0, CGUCount: 0}
}

// LoadManifest reads and parses path as a tml.yaml manifest. A missing
// file is not an error: callers get DefaultManifest back so `tml build`
// works in a directory with no manifest at all.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultManifest(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	m := DefaultManifest()
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return m, nil
}
