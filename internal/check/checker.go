package check

import (
	"github.com/tml-lang/tmlc/ast"
	"github.com/tml-lang/tmlc/internal/types"
)

// CheckModule runs the full two-pass type checker over mod and returns
// the populated Context, whose Diags field holds every diagnostic
// produced. Callers inspect ctx.Diags.HasErrors() before proceeding to
// monomorphization.
func CheckModule(env *types.TypeEnv, mod *ast.Module, source string) *Context {
	ctx := NewContext(env, mod.Path, source)
	pm := NewPassManager(RegisterPass{}, BodyPass{})
	if err := pm.RunAll(mod, ctx); err != nil {
		ctx.Diags.Errorf("C000", mod.SpanValue, source, "internal checker fault: %v", err)
	}
	return ctx
}
