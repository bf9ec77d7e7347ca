package nativebuild

import (
	"context"
	"sync"
	"sync/atomic"
)

// SerializedLinker enforces spec section 4.4's "the linker is not
// re-entrant; serialize calls to it" rule, and implements the
// one-shot poisoned-flag fallback of section 5: once an in-process
// link returns an error (any error; the Linker interface carries no
// separate "cannot run again" signal), every subsequent call through
// this SerializedLinker falls back to the subprocess linker for the
// rest of the process's lifetime. Grounded on the teacher's
// single-VM-instance locking pattern (internal/bytecode's one
// *sync.Mutex guarding the one VM a process runs at a time).
type SerializedLinker struct {
	primary  Linker
	fallback Linker

	poisoned atomic.Bool
}

// linkMu serializes in-process links across every SerializedLinker in
// the process.
var linkMu sync.Mutex

// NewSerializedLinker wraps primary (typically a PluginLinker) with
// fallback (typically a SubprocessLinker) used once primary is
// poisoned, and always used for static libraries regardless of
// poisoning.
func NewSerializedLinker(primary, fallback Linker) *SerializedLinker {
	return &SerializedLinker{primary: primary, fallback: fallback}
}

func (s *SerializedLinker) IsAvailable() bool {
	return s.primary.IsAvailable() || s.fallback.IsAvailable()
}

func (s *SerializedLinker) IsLLDAvailable() bool {
	return s.primary.IsLLDAvailable() || s.fallback.IsLLDAvailable()
}

// Link serializes access to primary with linkMu, routing static libraries
// and any call made after poisoning straight to fallback without
// taking the lock the in-process linker needs.
func (s *SerializedLinker) Link(ctx context.Context, objectFiles []string, outPath string, opts LinkOptions) (LinkResult, error) {
	if opts.OutputType == OutputStaticLib || s.poisoned.Load() || !s.primary.IsAvailable() {
		return s.fallback.Link(ctx, objectFiles, outPath, opts)
	}

	linkMu.Lock()
	defer linkMu.Unlock()

	res, err := s.primary.Link(ctx, objectFiles, outPath, opts)
	if err != nil {
		// The in-process linker reported a failure; conservatively
		// treat any in-process failure as evidence it can no longer be
		// trusted to run again in this process and poison it, per
		// spec section 5's policy.
		s.poisoned.Store(true)
		return s.fallback.Link(ctx, objectFiles, outPath, opts)
	}
	return res, nil
}
