package monomorph

import (
	"fmt"

	"github.com/tml-lang/tmlc/ast"
	"github.com/tml-lang/tmlc/internal/types"
)

// Request is one generic instantiation the IR generator needs: either
// a free function ("func qualified name", no TypeName) or a method on
// a type (TypeName + Method). TypeArgs is positional, matching the
// target's declared TypeParams order.
type Request struct {
	TypeName  string // empty for a free function
	Method    string // empty when TypeName names a whole generic struct/enum with no method yet
	FuncName  string // qualified name for a free-function request
	TypeArgs  []*types.Type
	IsLibrary bool // true when the generic definition came from an imported module
}

// key returns the dedup key for a request: same (target, type args)
// pair is only ever instantiated once, mirroring
// generated_impl_methods_ in the original codegen.
func (r Request) key() string {
	suffix := MangleTypeArgs(r.TypeArgs)
	if r.TypeName != "" {
		return r.TypeName + suffix + "::" + r.Method
	}
	return "fn:" + r.FuncName + suffix
}

// Instantiation is one fully resolved, monomorphized function: its
// mangled symbol name, substituted signature, and body ready for
// internal/irgen to lower. Body is nil for builtin/library symbols
// that the runtime already provides under their unmangled name.
type Instantiation struct {
	Symbol   string
	Sig      *types.FuncSig
	Body     *ast.BlockStmt
	SelfKind string      // "", "this", "ref this", "mut ref this" for methods
	SelfType *types.Type // nil for a free function
}

// Monomorphizer drains a worklist of Requests to a fixpoint, producing
// exactly one Instantiation per distinct (target, type args) pair.
// Grounded on gen_method_static_dispatch's pending_impl_method_instantiations_
// queue plus generated_impl_methods_ dedup set, generalized from "queue
// drained inline during codegen" to an explicit pre-codegen pass so
// internal/irgen only ever sees already-resolved, already-substituted
// bodies.
type Monomorphizer struct {
	env     *types.TypeEnv
	seen    map[string]bool
	queue   []Request
	results []*Instantiation
}

// New creates a Monomorphizer over env's registered declarations.
func New(env *types.TypeEnv) *Monomorphizer {
	return &Monomorphizer{
		env:  env,
		seen: make(map[string]bool),
	}
}

// Enqueue adds req to the worklist unless an equal request was already
// seen (by its dedup key).
func (m *Monomorphizer) Enqueue(req Request) {
	k := req.key()
	if m.seen[k] {
		return
	}
	m.seen[k] = true
	m.queue = append(m.queue, req)
}

// Run drains the worklist to a fixpoint. Resolving one request's body
// may discover nested generic calls that enqueue further requests
// (e.g. a generic method that itself calls another generic method);
// Run keeps going until the queue is empty.
func (m *Monomorphizer) Run() ([]*Instantiation, error) {
	for len(m.queue) > 0 {
		req := m.queue[0]
		m.queue = m.queue[1:]

		inst, err := m.resolve(req)
		if err != nil {
			return nil, err
		}
		if inst != nil {
			m.results = append(m.results, inst)
			m.discoverNested(inst.Body)
		}
	}
	return m.results, nil
}

func (m *Monomorphizer) resolve(req Request) (*Instantiation, error) {
	if req.TypeName == "" {
		return m.resolveFunc(req)
	}
	return m.resolveMethod(req)
}

func (m *Monomorphizer) resolveFunc(req Request) (*Instantiation, error) {
	for _, mod := range m.env.Modules {
		sig, ok := mod.Functions[req.FuncName]
		if !ok {
			continue
		}
		if len(sig.TypeParams) == 0 {
			// Non-generic: nothing to monomorphize, codegen emits it
			// once under its plain name.
			return nil, nil
		}
		subs := BindTypeParams(sig.TypeParams, req.TypeArgs)
		substituted := substituteSig(m.env.Interner, sig, subs)
		return &Instantiation{
			Symbol: SymbolName(libraryPrefix(req.IsLibrary), req.FuncName, req.TypeArgs, ""),
			Sig:    substituted,
			Body:   mod.FuncBodies[req.FuncName],
		}, nil
	}
	return nil, fmt.Errorf("monomorph: function %q not found", req.FuncName)
}

func (m *Monomorphizer) resolveMethod(req Request) (*Instantiation, error) {
	for _, impl := range m.env.ImplsByType[req.TypeName] {
		for _, method := range impl.Methods {
			if method.Sig.Name != req.Method {
				continue
			}
			tparams := append(append([]string{}, impl.TypeParams...), method.Sig.TypeParams...)
			if len(tparams) == 0 {
				// Non-generic: NonGeneric emits it once under its plain name.
				return nil, nil
			}
			subs := BindTypeParams(tparams, req.TypeArgs)
			substituted := substituteSig(m.env.Interner, method.Sig, subs)
			implArgs := req.TypeArgs
			if len(implArgs) > len(impl.TypeParams) {
				implArgs = implArgs[:len(impl.TypeParams)]
			}
			return &Instantiation{
				Symbol:   SymbolName(libraryPrefix(req.IsLibrary), req.TypeName, req.TypeArgs, req.Method),
				Sig:      substituted,
				Body:     method.Body,
				SelfKind: method.SelfKind,
				SelfType: m.env.Interner.Named("", req.TypeName, implArgs),
			}, nil
		}
	}
	return nil, fmt.Errorf("monomorph: method %s::%s not found", req.TypeName, req.Method)
}

// NonGeneric returns one Instantiation per non-generic free function
// and impl method registered in env, under their plain (unmangled)
// symbol names. The worklist in Monomorphizer only ever resolves
// generic requests (a non-generic callee short-circuits resolveFunc/
// resolveMethod with a nil Instantiation, since codegen is meant to
// emit it once under its own name); this is that single emission,
// run up front so internal/irgen sees the whole call graph, generic
// and non-generic alike, through the same Instantiation list.
func NonGeneric(env *types.TypeEnv) []*Instantiation {
	var out []*Instantiation
	for _, mod := range env.Modules {
		for name, sig := range mod.Functions {
			if len(sig.TypeParams) != 0 {
				continue
			}
			out = append(out, &Instantiation{
				Symbol: SymbolName("", name, nil, ""),
				Sig:    sig,
				Body:   mod.FuncBodies[name],
			})
		}
	}
	for typeName, impls := range env.ImplsByType {
		for _, impl := range impls {
			if len(impl.TypeParams) != 0 {
				continue
			}
			for _, method := range impl.Methods {
				if len(method.Sig.TypeParams) != 0 {
					continue
				}
				out = append(out, &Instantiation{
					Symbol:   SymbolName("", typeName, nil, method.Sig.Name),
					Sig:      method.Sig,
					Body:     method.Body,
					SelfKind: method.SelfKind,
					SelfType: env.Interner.Named("", typeName, nil),
				})
			}
		}
	}
	return out
}

// libraryPrefix mirrors is_library_method's empty-vs-suite-prefix
// choice: library symbols are never namespaced, local ones would be
// (the suite prefix itself is a CLI/test-runner concern outside this
// package's scope, so it is always empty here and left for the caller
// to prepend if it runs under a named test suite).
func libraryPrefix(isLibrary bool) string {
	return ""
}

// discoverNested walks a resolved body looking for further generic
// call sites (Type::method[Args](...) or func[Args](...)) and enqueues
// them, so a chain of generic calls fully drains before Run returns.
// There is no general-purpose AST visitor in this module (each pass
// walks the shapes it cares about directly, following
// internal/check/body.go's own statement/expression switches), so this
// mirrors that same switch-per-node-kind style rather than introducing
// one.
func (m *Monomorphizer) discoverNested(body *ast.BlockStmt) {
	m.walkBlock(body)
}

func (m *Monomorphizer) walkBlock(b *ast.BlockStmt) {
	if b == nil {
		return
	}
	for _, s := range b.Statements {
		m.walkStmt(s)
	}
}

func (m *Monomorphizer) walkStmt(s ast.Statement) {
	switch st := s.(type) {
	case *ast.LetStmt:
		m.walkExpr(st.Value)
	case *ast.ExprStmt:
		m.walkExpr(st.Value)
	case *ast.AssignStmt:
		m.walkExpr(st.Target)
		m.walkExpr(st.Value)
	case *ast.IfStmt:
		m.walkExpr(st.Cond)
		m.walkBlock(st.Then)
		if st.Else != nil {
			m.walkStmt(st.Else)
		}
	case *ast.WhileStmt:
		m.walkExpr(st.Cond)
		m.walkBlock(st.Body)
	case *ast.LoopStmt:
		m.walkBlock(st.Body)
	case *ast.ForStmt:
		m.walkExpr(st.RangeLow)
		m.walkExpr(st.RangeHigh)
		m.walkExpr(st.Iterable)
		m.walkBlock(st.Body)
	case *ast.ReturnStmt:
		m.walkExpr(st.Value)
	case *ast.ThrowStmt:
		m.walkExpr(st.Value)
	case *ast.BlockStmt:
		m.walkBlock(st)
	}
}

func (m *Monomorphizer) walkExpr(e ast.Expression) {
	switch ex := e.(type) {
	case nil:
		return
	case *ast.ArrayLiteral:
		for _, el := range ex.Elements {
			m.walkExpr(el)
		}
	case *ast.TupleLiteral:
		for _, el := range ex.Elements {
			m.walkExpr(el)
		}
	case *ast.StructLiteral:
		for _, f := range ex.Fields {
			m.walkExpr(f.Value)
		}
	case *ast.BinaryExpr:
		m.walkExpr(ex.Left)
		m.walkExpr(ex.Right)
	case *ast.UnaryExpr:
		m.walkExpr(ex.Operand)
	case *ast.CallExpr:
		m.walkExpr(ex.Callee)
		for _, a := range ex.Args {
			m.walkExpr(a)
		}
		m.discoverFromCall(ex)
	case *ast.MethodCallExpr:
		m.walkExpr(ex.Receiver)
		for _, a := range ex.Args {
			m.walkExpr(a)
		}
		m.discoverFromMethodCall(ex)
	case *ast.FieldExpr:
		m.walkExpr(ex.Receiver)
	case *ast.IndexExpr:
		m.walkExpr(ex.Receiver)
		m.walkExpr(ex.Index)
	case *ast.ClosureExpr:
		m.walkBlock(ex.Body)
	case *ast.WhenExpr:
		m.walkExpr(ex.Scrutinee)
		for _, arm := range ex.Arms {
			m.walkExpr(arm.Guard)
			m.walkExpr(arm.Body)
		}
	case *ast.IfExpr:
		m.walkExpr(ex.Cond)
		m.walkExpr(ex.Then)
		m.walkExpr(ex.Else)
	case *ast.TernaryExpr:
		m.walkExpr(ex.Cond)
		m.walkExpr(ex.Then)
		m.walkExpr(ex.Else)
	case *ast.AwaitExpr:
		m.walkExpr(ex.Value)
	case *ast.BlockExpr:
		m.walkBlock(ex.Block)
	}
}

func (m *Monomorphizer) discoverFromCall(call *ast.CallExpr) {
	if len(call.TypeArgs) == 0 {
		return
	}
	id, ok := call.Callee.(*ast.Identifier)
	if !ok {
		return
	}
	args, err := m.resolveTypeArgNames(call.TypeArgs)
	if err != nil {
		return
	}
	m.Enqueue(Request{FuncName: id.Name, TypeArgs: args})
}

func (m *Monomorphizer) discoverFromMethodCall(call *ast.MethodCallExpr) {
	if len(call.TypeArgs) == 0 {
		return
	}
	qi, ok := call.Receiver.(*ast.QualifiedIdent)
	if !ok {
		return
	}
	args, err := m.resolveTypeArgNames(call.TypeArgs)
	if err != nil {
		return
	}
	m.Enqueue(Request{TypeName: qi.Name, Method: call.Method, TypeArgs: args})
}

// resolveTypeArgNames resolves a turbofish's named type-argument exprs
// against the env's primitive/named vocabulary (no type-parameter
// bindings apply at this point since nested calls are always resolved
// with already-concrete types substituted in).
func (m *Monomorphizer) resolveTypeArgNames(exprs []ast.TypeExpr) ([]*types.Type, error) {
	out := make([]*types.Type, len(exprs))
	for i, te := range exprs {
		named, ok := te.(*ast.NamedTypeExpr)
		if !ok {
			return nil, fmt.Errorf("monomorph: unsupported nested type argument %T", te)
		}
		if p, ok := primitiveByName(named.Name); ok {
			out[i] = m.env.Interner.Primitive(p)
			continue
		}
		args, err := m.resolveTypeArgNames(named.TypeArgs)
		if err != nil {
			return nil, err
		}
		out[i] = m.env.Interner.Named("", named.Name, args)
	}
	return out, nil
}

func substituteSig(in *types.Interner, sig *types.FuncSig, subs map[string]*types.Type) *types.FuncSig {
	params := make([]*types.Type, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = Substitute(in, p, subs)
	}
	return &types.FuncSig{
		Name:        sig.Name,
		Params:      params,
		ParamNames:  sig.ParamNames,
		ReturnType:  Substitute(in, sig.ReturnType, subs),
		TypeParams:  nil,
		ConstParams: sig.ConstParams,
		IsAsync:     sig.IsAsync,
		Span:        sig.Span,
		IsLibrary:   sig.IsLibrary,
	}
}
