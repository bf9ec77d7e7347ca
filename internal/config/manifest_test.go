package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifestMissingFileReturnsDefault(t *testing.T) {
	m, err := LoadManifest(filepath.Join(t.TempDir(), "tml.yaml"))
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if *m != *DefaultManifest() {
		t.Errorf("LoadManifest() on missing file = %+v, want default %+v", m, DefaultManifest())
	}
}

func TestLoadManifestParsesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tml.yaml")
	content := "target_triple: x86_64-pc-linux-gnu\nplugin_dir: /opt/tml/plugins\nopt_level: 2\ncgu_count: 4\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}

	want := &Manifest{
		TargetTriple: "x86_64-pc-linux-gnu",
		PluginDir:    "/opt/tml/plugins",
		OptLevel:     2,
		CGUCount:     4,
	}
	if *m != *want {
		t.Errorf("LoadManifest() = %+v, want %+v", m, want)
	}
}
