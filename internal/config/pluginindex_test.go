package config

import "testing"

func TestPluginCacheIndexRecordThenLookup(t *testing.T) {
	idx := NewPluginCacheIndex(t.TempDir())

	if _, ok := idx.Lookup("tml_codegen_x86"); ok {
		t.Fatalf("Lookup() on empty index found an entry")
	}

	want := Entry{CRC32: 0xdeadbeef, DecompPath: "/cache/plugins/tml_codegen_x86.so"}
	if err := idx.Record("tml_codegen_x86", want); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, ok := idx.Lookup("tml_codegen_x86")
	if !ok {
		t.Fatalf("Lookup() after Record() found nothing")
	}
	if got != want {
		t.Errorf("Lookup() = %+v, want %+v", got, want)
	}
}

func TestPluginCacheIndexRecordTwiceOverwrites(t *testing.T) {
	idx := NewPluginCacheIndex(t.TempDir())

	if err := idx.Record("tml_tools", Entry{CRC32: 1, DecompPath: "/a"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := idx.Record("tml_tools", Entry{CRC32: 2, DecompPath: "/b"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, ok := idx.Lookup("tml_tools")
	if !ok {
		t.Fatalf("Lookup() found nothing")
	}
	want := Entry{CRC32: 2, DecompPath: "/b"}
	if got != want {
		t.Errorf("Lookup() after second Record() = %+v, want %+v", got, want)
	}
}
