package nativebuild

import (
	"context"
	"runtime"
	"sync"
)

// CGU is one compilation group's IR, ready to be lowered to an object
// file independently of every other CGU.
type CGU struct {
	Name string
	IR   string
}

// CGUResult is one compiled CGU's outcome.
type CGUResult struct {
	Name       string
	ObjectPath string
	Err        error
}

// CompileCGUs runs compile-one-CGU-per-thread, per spec section 4.4:
// a worker pool compiles up to numWorkers CGUs concurrently, and
// newBackend is called once per worker so each gets its own backend
// context (the backend's global state must not be shared across
// threads). numWorkers <= 0 defaults to the number of logical CPUs.
// Order of completion does not affect correctness: each worker writes
// to a distinct path derived from its CGU's name.
func CompileCGUs(ctx context.Context, newBackend func() Backend, cgus []CGU, outDir string, opts CompileOptions, numWorkers int) []CGUResult {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(cgus) {
		numWorkers = len(cgus)
	}
	if numWorkers == 0 {
		return nil
	}

	jobs := make(chan int)
	results := make([]CGUResult, len(cgus))

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			backend := newBackend()
			for idx := range jobs {
				cgu := cgus[idx]
				outPath := outDir + "/" + cgu.Name + ".o"
				res, err := backend.CompileIRToObject(ctx, cgu.IR, outPath, opts)
				if err != nil {
					results[idx] = CGUResult{Name: cgu.Name, Err: err}
					continue
				}
				results[idx] = CGUResult{Name: cgu.Name, ObjectPath: res.ObjectPath}
			}
		}()
	}

	for i := range cgus {
		select {
		case jobs <- i:
		case <-ctx.Done():
			// Stop enqueuing further work; in-flight lowering for
			// CGUs already claimed by a worker still runs to
			// completion, per section 5's cancellation policy.
			close(jobs)
			wg.Wait()
			return results
		}
	}
	close(jobs)
	wg.Wait()
	return results
}
