package check

import (
	"github.com/tml-lang/tmlc/internal/diag"
	"github.com/tml-lang/tmlc/internal/types"
)

// Context is the shared state threaded through every pass, grounded on
// internal/semantic/pass_context.go's PassContext. It owns the
// environment's Interner/registry, the current module's path, the
// diagnostic bag both passes append to, and the live scope chain used
// while checking one function/method body at a time.
type Context struct {
	Env    *types.TypeEnv
	Module string // dotted path of the module currently being checked
	Source string // source text, for caret-rendered diagnostics
	Diags  *diag.Bag

	scope *Scope
}

// NewContext builds a checking context for one module.
func NewContext(env *types.TypeEnv, modulePath, source string) *Context {
	return &Context{
		Env:    env,
		Module: modulePath,
		Source: source,
		Diags:  diag.NewBag(),
		scope:  NewScope(ScopeGlobal, nil),
	}
}

// PushScope opens a new nested scope and returns a function that
// restores the previous one; callers defer it.
func (c *Context) PushScope(kind ScopeKind) func() {
	prev := c.scope
	c.scope = NewScope(kind, prev)
	return func() { c.scope = prev }
}

// Scope returns the currently active scope.
func (c *Context) Scope() *Scope { return c.scope }

// CurrentModule returns the Module registry entry being checked.
func (c *Context) CurrentModule() *types.Module {
	return c.Env.Module(c.Module)
}
