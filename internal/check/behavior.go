package check

import (
	"github.com/tml-lang/tmlc/ast"
	"github.com/tml-lang/tmlc/internal/types"
)

// checkBehaviorBounds verifies, for a generic call site instantiating
// sig's type parameters with typeArgs (in declaration order), that each
// concrete type satisfies every behavior named in its `where` clause.
// Failure is reported as T-bound-unsatisfied (spec.md §4.1).
func (c *Context) checkBehaviorBounds(sig *types.FuncSig, typeArgs []*types.Type, span ast.Span) {
	if len(sig.ParamBounds) == 0 {
		return
	}
	for i, paramName := range sig.TypeParams {
		if i >= len(typeArgs) || typeArgs[i] == nil {
			continue
		}
		behaviors, ok := sig.ParamBounds[paramName]
		if !ok {
			continue
		}
		typeName := typeNameForImplLookup(typeArgs[i])
		if typeName == "" {
			continue
		}
		for _, beh := range behaviors {
			if !c.Env.Satisfies(typeName, beh) {
				c.Diags.Errorf("T-bound-unsatisfied", span, c.Source,
					"%s does not implement %s, required by type parameter %s of %s",
					typeArgs[i].String(), beh, paramName, sig.Name)
			}
		}
	}
}
