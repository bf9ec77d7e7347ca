package nativebuild

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want int
	}{
		{-1, 0, 3, 0},
		{4, 0, 3, 3},
		{2, 0, 3, 2},
	}
	for _, c := range cases {
		if got := clamp(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("clamp(%d, %d, %d) = %d, want %d", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestCompileArgsIncludesOptLevelAndTarget(t *testing.T) {
	b := NewSubprocessBackend("")
	args := b.compileArgs("in.ll", "out.o", CompileOptions{OptLevel: 2, TargetTriple: "x86_64-unknown-linux-gnu", DebugInfo: true})

	want := []string{"-O2", "-target", "x86_64-unknown-linux-gnu", "-g"}
	for _, w := range want {
		if !containsArg(args, w) {
			t.Errorf("compileArgs() = %v, missing %q", args, w)
		}
	}
}

func containsArg(args []string, s string) bool {
	for _, a := range args {
		if a == s {
			return true
		}
	}
	return false
}
