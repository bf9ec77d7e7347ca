// Package check implements the two-pass type checker of spec.md §4.1:
// declaration registration followed by body checking, reusing the
// teacher's Pass/PassManager shape (internal/semantic/pass.go) against
// TML's ast.Module instead of DWScript's ast.Program.
package check

import "github.com/tml-lang/tmlc/ast"

// Pass is a single checking pass run once per module.
type Pass interface {
	Name() string
	Run(mod *ast.Module, ctx *Context) error
}

// PassManager runs passes in order, stopping early once a pass leaves
// fatal errors in the Context's diagnostic bag.
type PassManager struct {
	passes []Pass
}

// NewPassManager builds a manager from an ordered pass list.
func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

// AddPass appends a pass to run after all previously added passes.
func (pm *PassManager) AddPass(p Pass) {
	pm.passes = append(pm.passes, p)
}

// RunAll executes every pass against mod in order. A pass returning a
// non-nil error is an internal fault (not a semantic error, which goes
// into ctx.Diags instead); RunAll stops at the first such fault, and
// also stops early once the diagnostic bag already holds an error,
// since later passes assume a consistent environment.
func (pm *PassManager) RunAll(mod *ast.Module, ctx *Context) error {
	for _, p := range pm.passes {
		if err := p.Run(mod, ctx); err != nil {
			return err
		}
		if ctx.Diags.HasErrors() {
			break
		}
	}
	return nil
}
