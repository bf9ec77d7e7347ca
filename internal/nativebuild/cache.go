package nativebuild

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// CacheKey identifies one cached compiled object: the source file and
// a hash of every flag that changes its output, so a -O0 object is
// never handed back for a -O3 request. Grounded on the original
// object_compiler.cpp's per-translation-unit cache key of
// (source_path, hash(flags)).
type CacheKey struct {
	Path     string
	FlagHash uint64
}

// HashFlags folds the parts of CompileOptions that affect the
// compiled bytes into one key. Order matters: the fields are written
// in a fixed sequence so the same options always hash the same way.
func HashFlags(opts CompileOptions) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "opt=%d;debug=%t;triple=%s;cpu=%s;features=%s;pic=%t",
		opts.OptLevel, opts.DebugInfo, opts.TargetTriple, opts.CPU, opts.Features, opts.PositionIndependent)
	return h.Sum64()
}

// ObjectCache is the thread-safe on-disk cache of spec section 4.4,
// keyed by (source-file-path, flag-hash-prefix). It protects its
// per-key "in-progress" set with a mutex; a thread that finds a
// matching compile already running waits via bounded polling of the
// output file's existence rather than blocking on the compiling
// thread directly, per section 5's concurrency policy.
type ObjectCache struct {
	dir string

	mu         sync.Mutex
	inProgress map[string]bool
}

// NewObjectCache roots the cache at dir (typically <cache_dir>/objects).
func NewObjectCache(dir string) *ObjectCache {
	return &ObjectCache{dir: dir, inProgress: make(map[string]bool)}
}

// Path returns the on-disk path a key's object would live at, without
// checking whether it exists.
func (c *ObjectCache) Path(key CacheKey) string {
	base := filepath.Base(key.Path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(c.dir, fmt.Sprintf("%s_%016x.o", base, key.FlagHash))
}

// GetOrCompile returns the cached object for key if present, waits for
// and returns it if another goroutine is already compiling it, or
// calls compile(outPath) to produce it otherwise. compile must write
// its result atomically (temp-then-rename) so a concurrent waiter
// never observes a partial object file.
func (c *ObjectCache) GetOrCompile(ctx context.Context, key CacheKey, compile func(outPath string) error) (string, error) {
	outPath := c.Path(key)

	c.mu.Lock()
	if c.inProgress[outPath] {
		c.mu.Unlock()
		if err := c.waitFor(ctx, outPath); err != nil {
			return "", err
		}
		return outPath, nil
	}
	if fileExists(outPath) {
		c.mu.Unlock()
		return outPath, nil
	}
	c.inProgress[outPath] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inProgress, outPath)
		c.mu.Unlock()
	}()

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("nativebuild: mkdir cache dir %s: %w", c.dir, err)
	}
	if err := compile(outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

// waitFor polls for path's existence at a fixed interval until it
// appears or ctx is done.
func (c *ObjectCache) waitFor(ctx context.Context, path string) error {
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for {
		if fileExists(path) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
