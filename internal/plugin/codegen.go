package plugin

import "fmt"

// Codegen resolves the additional C-surface-shaped symbols a
// CapCodegenIR plugin must export (spec section 6.2), giving
// internal/nativebuild a typed, in-process alternative to shelling out
// to clang/lld when such a plugin is actually loaded.
type Codegen struct {
	CompileIRToObject CodegenCompileIRToObjectFunc
	LinkObjects       CodegenLinkObjectsFunc
	IsAvailable       CodegenIsAvailableFunc
	LLDIsAvailable    CodegenLLDIsAvailableFunc
}

// ResolveCodegen looks up the codegen surface on an already-loaded
// plugin. It fails if the plugin's PluginInfo does not advertise
// CapCodegenIR, or if any of the four symbols is missing or
// mistyped.
func ResolveCodegen(lp *LoadedPlugin) (*Codegen, error) {
	if !hasCapability(lp.Info, CapCodegenIR) {
		return nil, fmt.Errorf("plugin: %s does not advertise %s", lp.Name, CapCodegenIR)
	}

	compile, err := symbolAs[CodegenCompileIRToObjectFunc](lp, SymCodegenCompileIRToObject)
	if err != nil {
		return nil, err
	}
	link, err := symbolAs[CodegenLinkObjectsFunc](lp, SymCodegenLinkObjects)
	if err != nil {
		return nil, err
	}
	avail, err := symbolAs[CodegenIsAvailableFunc](lp, SymCodegenIsAvailable)
	if err != nil {
		return nil, err
	}
	lldAvail, err := symbolAs[CodegenLLDIsAvailableFunc](lp, SymCodegenLLDIsAvailable)
	if err != nil {
		return nil, err
	}

	return &Codegen{
		CompileIRToObject: compile,
		LinkObjects:       link,
		IsAvailable:       avail,
		LLDIsAvailable:    lldAvail,
	}, nil
}

func hasCapability(info *PluginInfo, cap string) bool {
	for _, c := range info.Capabilities {
		if c == cap {
			return true
		}
	}
	return false
}

func symbolAs[T any](lp *LoadedPlugin, name string) (T, error) {
	var zero T
	sym, err := lp.Symbol(name)
	if err != nil {
		return zero, err
	}
	fn, ok := sym.(T)
	if !ok {
		return zero, fmt.Errorf("plugin: %s: %s has wrong type", lp.Name, name)
	}
	return fn, nil
}
