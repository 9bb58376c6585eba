package attrs

import "fmt"

// ThemeSource is one level of the ancestor theme chain as seen by the
// inheritance resolver: queryable by attribute name and able to resolve its
// own Automatic values in its own context, since the semantic owner of such a
// default is the ancestor, not the inheriting primitive.
//
// The chain is read-only during a resolution pass. Callers must serialize
// theme edits against concurrent resolution; the resolver takes no locks.
type ThemeSource interface {
	Name() string
	Attribute(name string) (Value, bool)
	ResolveAutomatic(name string) (any, error)
}

// ThemeChain is the ancestry consulted during inheritance resolution, ordered
// nearest ancestor first. It is acyclic by construction (enforced where
// scenes are nested) and finite.
type ThemeChain []ThemeSource

// inheritStep records one chain visit for provenance tracing.
type inheritStep struct {
	layer string
	kind  Kind
	found bool
}

// resolveInherited walks the chain for the first concrete definition of
// name. A value still Automatic at an ancestor resolves in that ancestor's
// context. Inherit cells at an ancestor are skipped and the walk continues.
// An exhausted chain falls back to the declaration's hard default.
func resolveInherited(typeName, name string, chain ThemeChain, fallback Value) (any, Origin, []inheritStep, error) {
	var steps []inheritStep
	for _, layer := range chain {
		if layer == nil {
			continue
		}
		value, ok := layer.Attribute(name)
		steps = append(steps, inheritStep{layer: layer.Name(), kind: value.Kind(), found: ok})
		if !ok {
			continue
		}
		switch value.Kind() {
		case KindConcrete:
			v, _ := value.Any()
			return v, themeOrigin(layer.Name()), steps, nil
		case KindAutomatic:
			v, err := layer.ResolveAutomatic(name)
			if err != nil {
				return nil, "", steps, wrapResolutionError(typeName, name, fmt.Errorf("theme %q: %w", layer.Name(), err))
			}
			return v, themeOrigin(layer.Name()), steps, nil
		}
		// Inherit at an ancestor defers further up; keep walking.
	}

	v, ok := fallback.Any()
	if !ok {
		// Composition requires a concrete fallback for every inherited
		// declaration, so this indicates a schema bypassed validation.
		return nil, "", steps, wrapResolutionError(typeName, name, fmt.Errorf("theme chain exhausted and no fallback default recorded"))
	}
	return v, OriginFallback, steps, nil
}
