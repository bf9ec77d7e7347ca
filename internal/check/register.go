package check

import (
	"fmt"

	"github.com/tml-lang/tmlc/ast"
	"github.com/tml-lang/tmlc/internal/types"
)

// RegisterPass is spec.md §4.1 pass 1: register every struct, enum,
// class, behavior, impl block, type alias and function signature
// (without bodies) into the Context's TypeEnv. Grounded on the two-pass
// shape of internal/semantic/analyzer.go's declaration walk, generalized
// from DWScript's unit/class declarations to TML's struct/enum/class/
// behavior/impl/type-alias/function set.
type RegisterPass struct{}

func (RegisterPass) Name() string { return "register" }

func (RegisterPass) Run(mod *ast.Module, ctx *Context) error {
	m := ctx.CurrentModule()
	for _, imp := range mod.Imports {
		m.Imports = append(m.Imports, imp.Path)
	}

	for _, a := range mod.TypeAliases {
		if err := registerTypeAlias(ctx, m, a); err != nil {
			return err
		}
	}
	for _, s := range mod.Structs {
		if err := registerStruct(ctx, m, s); err != nil {
			return err
		}
	}
	for _, e := range mod.Enums {
		if err := registerEnum(ctx, m, e); err != nil {
			return err
		}
	}
	for _, cl := range mod.Classes {
		if err := registerClass(ctx, m, cl); err != nil {
			return err
		}
	}
	for _, b := range mod.Behaviors {
		if err := registerBehavior(ctx, m, b); err != nil {
			return err
		}
	}
	for _, f := range mod.Functions {
		if err := registerFunc(ctx, m, f); err != nil {
			return err
		}
	}
	for _, impl := range mod.Impls {
		if err := registerImpl(ctx, m, impl); err != nil {
			return err
		}
	}
	return nil
}

func checkReservedName(ctx *Context, name string, span ast.Span) bool {
	if types.ReservedPrimitiveNames[name] {
		ctx.Diags.Errorf("T038", span, ctx.Source,
			"%q is a reserved primitive type name and cannot be redeclared", name)
		return false
	}
	return true
}

func tparamSetOf(names []string) typeParamSet {
	s := make(typeParamSet, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

func typeParamNames(ps []ast.TypeParam) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func constParamNames(ps []ast.ConstParam) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func registerTypeAlias(ctx *Context, m *types.Module, a *ast.TypeAliasDecl) error {
	if !checkReservedName(ctx, a.Name, a.SpanValue) {
		return nil
	}
	tparams := tparamSetOf(typeParamNames(a.TypeParams))
	target, err := ctx.resolveTypeExpr(a.Target, tparams)
	if err != nil {
		return fmt.Errorf("type alias %s: %w", a.Name, err)
	}
	m.TypeAliases[a.Name] = target
	return nil
}

func registerFields(ctx *Context, fields []*ast.Field, tparams typeParamSet) ([]*types.FieldDef, error) {
	out := make([]*types.FieldDef, len(fields))
	for i, f := range fields {
		ft, err := ctx.resolveTypeExpr(f.Type, tparams)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		out[i] = &types.FieldDef{Name: f.Name, Type: ft, Visibility: f.Visibility}
	}
	return out, nil
}

func registerStruct(ctx *Context, m *types.Module, s *ast.StructDecl) error {
	if !checkReservedName(ctx, s.Name, s.SpanValue) {
		return nil
	}
	tparams := tparamSetOf(typeParamNames(s.TypeParams))
	fields, err := registerFields(ctx, s.Fields, tparams)
	if err != nil {
		return fmt.Errorf("struct %s: %w", s.Name, err)
	}
	def := &types.StructDef{
		QualifiedName: ctx.Module + "." + s.Name,
		TypeParams:    typeParamNames(s.TypeParams),
		ConstParams:   constParamNames(s.ConstParams),
		Fields:        fields,
		Derives:       s.Derives,
	}
	m.Structs[s.Name] = def
	synthesizeDerives(ctx, s.Name, def.Derives)
	return nil
}

func registerClass(ctx *Context, m *types.Module, cl *ast.ClassDecl) error {
	if !checkReservedName(ctx, cl.Name, cl.SpanValue) {
		return nil
	}
	tparams := tparamSetOf(typeParamNames(cl.TypeParams))
	fields, err := registerFields(ctx, cl.Fields, tparams)
	if err != nil {
		return fmt.Errorf("class %s: %w", cl.Name, err)
	}
	def := &types.ClassDef{
		QualifiedName: ctx.Module + "." + cl.Name,
		BaseName:      cl.BaseName,
		TypeParams:    typeParamNames(cl.TypeParams),
		Fields:        fields,
		Derives:       cl.Derives,
	}
	m.Classes[cl.Name] = def
	synthesizeDerives(ctx, cl.Name, def.Derives)
	return nil
}

func registerEnum(ctx *Context, m *types.Module, e *ast.EnumDecl) error {
	if !checkReservedName(ctx, e.Name, e.SpanValue) {
		return nil
	}
	tparams := tparamSetOf(typeParamNames(e.TypeParams))

	if e.IsFlags {
		if err := validateFlagsEnum(ctx, e); err != nil {
			return nil // diagnostics already recorded by validateFlagsEnum
		}
	}

	variants := make([]*types.EnumVariantDef, len(e.Variants))
	var nextDiscriminant int64 = 1
	for i, v := range e.Variants {
		payload, err := ctx.resolveTypeExprs(v.Payload, tparams)
		if err != nil {
			return fmt.Errorf("enum %s variant %s: %w", e.Name, v.Name, err)
		}
		vd := &types.EnumVariantDef{Name: v.Name, Payload: payload}
		if e.IsFlags {
			vd.Discriminant = nextDiscriminant
			nextDiscriminant *= 2
		} else {
			vd.Discriminant = int64(i)
		}
		variants[i] = vd
	}
	def := &types.EnumDef{
		QualifiedName: ctx.Module + "." + e.Name,
		TypeParams:    typeParamNames(e.TypeParams),
		ConstParams:   constParamNames(e.ConstParams),
		Variants:      variants,
		Derives:       e.Derives,
		IsFlags:       e.IsFlags,
		FlagsWidth:    e.FlagsWidth,
	}
	m.Enums[e.Name] = def
	synthesizeDerives(ctx, e.Name, def.Derives)
	return nil
}

// validateFlagsEnum enforces two bitflag rules: every variant must be a
// unit variant (T081), and the variant count must fit the underlying
// width (T083). It reports no other codes; power-of-two discriminants
// are assigned by registerEnum rather than validated here.
func validateFlagsEnum(ctx *Context, e *ast.EnumDecl) error {
	ok := true
	for _, v := range e.Variants {
		if len(v.Payload) != 0 {
			ctx.Diags.Errorf("T081", e.SpanValue, ctx.Source,
				"@flags enum %s: variant %s must not carry a payload", e.Name, v.Name)
			ok = false
		}
	}
	if e.FlagsWidth != 0 && len(e.Variants) > e.FlagsWidth {
		ctx.Diags.Errorf("T083", e.SpanValue, ctx.Source,
			"@flags enum %s: %d variants exceed the %d-bit underlying width", e.Name, len(e.Variants), e.FlagsWidth)
		ok = false
	}
	if !ok {
		return fmt.Errorf("invalid flags enum %s", e.Name)
	}
	return nil
}

func registerBehavior(ctx *Context, m *types.Module, b *ast.BehaviorDecl) error {
	if !checkReservedName(ctx, b.Name, b.SpanValue) {
		return nil
	}
	tparams := tparamSetOf(typeParamNames(b.TypeParams))
	methods := make([]*types.FuncSig, len(b.Methods))
	for i, sigDecl := range b.Methods {
		sig, err := sigFromDecl(ctx, sigDecl.Name, sigDecl.TypeParams, sigDecl.Params, sigDecl.ReturnType, sigDecl.IsAsync, sigDecl.SpanValue, tparams)
		if err != nil {
			return fmt.Errorf("behavior %s method %s: %w", b.Name, sigDecl.Name, err)
		}
		methods[i] = sig
	}
	m.Behaviors[b.Name] = &types.BehaviorDef{
		Name:          b.Name,
		TypeParams:    typeParamNames(b.TypeParams),
		Methods:       methods,
		RequiredImpls: nil,
	}
	return nil
}

func sigFromDecl(ctx *Context, name string, tps []ast.TypeParam, params []*ast.Param, ret ast.TypeExpr, isAsync bool, span ast.Span, outer typeParamSet) (*types.FuncSig, error) {
	tparams := tparamSetOf(typeParamNames(tps))
	for k := range outer {
		tparams[k] = true
	}
	paramTypes := make([]*types.Type, 0, len(params))
	paramNames := make([]string, 0, len(params))
	for _, p := range params {
		if p.SelfKind != "" {
			continue
		}
		pt, err := ctx.resolveTypeExpr(p.Type, tparams)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		paramTypes = append(paramTypes, pt)
		paramNames = append(paramNames, p.Name)
	}
	var retType *types.Type
	if ret == nil {
		retType = ctx.Env.Interner.Unit()
	} else {
		rt, err := ctx.resolveTypeExpr(ret, tparams)
		if err != nil {
			return nil, fmt.Errorf("return type: %w", err)
		}
		retType = rt
	}
	bounds := make(map[string][]string, len(tps))
	for _, p := range tps {
		if len(p.WhereClauses) > 0 {
			bounds[p.Name] = p.WhereClauses
		}
	}
	return &types.FuncSig{
		Name: name, Params: paramTypes, ParamNames: paramNames,
		ReturnType: retType, TypeParams: typeParamNames(tps), ParamBounds: bounds,
		IsAsync: isAsync, Span: span,
	}, nil
}

func registerFunc(ctx *Context, m *types.Module, f *ast.FuncDecl) error {
	sig, err := sigFromDecl(ctx, f.Name, f.TypeParams, f.Params, f.ReturnType, f.IsAsync, f.SpanValue, nil)
	if err != nil {
		return fmt.Errorf("function %s: %w", f.Name, err)
	}
	sig.ConstParams = constParamNames(f.ConstParams)
	m.Functions[f.Name] = sig
	m.FuncBodies[f.Name] = f.Body
	return nil
}

func registerImpl(ctx *Context, m *types.Module, impl *ast.ImplDecl) error {
	outer := tparamSetOf(typeParamNames(impl.TypeParams))
	targetName := impl.TargetType

	methods := make([]*types.Method, len(impl.Methods))
	for i, fd := range impl.Methods {
		selfKind := ""
		for _, p := range fd.Params {
			if p.SelfKind != "" {
				selfKind = p.SelfKind
				break
			}
		}
		sig, err := sigFromDecl(ctx, fd.Name, fd.TypeParams, fd.Params, fd.ReturnType, fd.IsAsync, fd.SpanValue, outer)
		if err != nil {
			return fmt.Errorf("impl %s method %s: %w", targetName, fd.Name, err)
		}
		methods[i] = &types.Method{Sig: sig, SelfKind: selfKind, Body: fd.Body}
	}

	ctx.Env.RegisterImpl(&types.ImplBlock{
		TargetTypeName: targetName,
		BehaviorName:   impl.BehaviorName,
		TypeParams:     typeParamNames(impl.TypeParams),
		WhereClauses:   impl.WhereClauses,
		Methods:        methods,
	})
	return nil
}

// synthesizeDerives registers the method signatures a #[derive(...)]
// list implies, per spec.md §3/§4.1 ("Derives synthesize method
// signatures at registration time"). Only the derives with a
// fixed, type-independent signature are synthesized here; Serialize/
// Deserialize/Reflect/FromStr need field-shape-dependent codegen and
// are wired directly by internal/irgen instead of via ImplIndex lookup.
func synthesizeDerives(ctx *Context, typeName string, derives []ast.DeriveKind) {
	in := ctx.Env.Interner
	self := in.Named("", typeName, nil)
	for _, d := range derives {
		switch d {
		case ast.DerivePartialEq:
			addSynthesizedMethod(ctx, typeName, "PartialEq", "eq", []*types.Type{self}, in.Bool())
		case ast.DeriveHash:
			addSynthesizedMethod(ctx, typeName, "Hash", "hash", nil, in.Primitive(types.U64))
		case ast.DeriveDefault:
			addSynthesizedMethod(ctx, typeName, "Default", "default", nil, self)
		case ast.DeriveDuplicate:
			addSynthesizedMethod(ctx, typeName, "Duplicate", "duplicate", nil, self)
		case ast.DeriveDebug:
			addSynthesizedMethod(ctx, typeName, "Debug", "debug_string", nil, in.Str())
		case ast.DeriveDisplay:
			addSynthesizedMethod(ctx, typeName, "Display", "to_string", nil, in.Str())
		case ast.DerivePartialOrd:
			addSynthesizedMethod(ctx, typeName, "PartialOrd", "partial_cmp", []*types.Type{self}, in.Named("", "Maybe", []*types.Type{in.Named("", "Ordering", nil)}))
		case ast.DeriveOrd:
			addSynthesizedMethod(ctx, typeName, "Ord", "cmp", []*types.Type{self}, in.Named("", "Ordering", nil))
		}
	}
}

func addSynthesizedMethod(ctx *Context, typeName, behaviorName, methodName string, params []*types.Type, ret *types.Type) {
	ctx.Env.RegisterImpl(&types.ImplBlock{
		TargetTypeName: typeName,
		BehaviorName:   behaviorName,
		Methods: []*types.Method{{
			Sig:      &types.FuncSig{Name: methodName, Params: params, ReturnType: ret},
			SelfKind: "ref this",
		}},
	})
}
