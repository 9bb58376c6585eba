package attrs

import "fmt"

// ResolveContext is what a resolution rule sees while it runs: the owning
// instance's type, input data, and attribute access that force-resolves
// deferred siblings.
type ResolveContext struct {
	inst *Instance
	attr string
}

// Type returns the owning primitive type name.
func (rc *ResolveContext) Type() string { return rc.inst.schema.typeName }

// Attr returns the attribute currently being resolved.
func (rc *ResolveContext) Attr() string { return rc.attr }

// Input returns the primitive's positional input data.
func (rc *ResolveContext) Input() []any { return rc.inst.input }

// Arg returns the i-th positional input.
func (rc *ResolveContext) Arg(i int) (any, error) {
	if i < 0 || i >= len(rc.inst.input) {
		return nil, fmt.Errorf("input %d out of range (have %d)", i, len(rc.inst.input))
	}
	return rc.inst.input[i], nil
}

// Get returns the concrete value of name on the owning instance, resolving
// deferred or inherited cells first. Rules use it to read their declared
// dependencies.
func (rc *ResolveContext) Get(name string) (any, error) {
	return rc.inst.Get(name)
}

// concreteAttrs snapshots the currently concrete cells for expression
// environments. Sentinel cells are omitted rather than resolved; expression
// rules reach deferred siblings through their declared deps, which the
// resolver forces before the rule runs.
func (rc *ResolveContext) concreteAttrs() map[string]any {
	out := make(map[string]any, rc.inst.table.Len())
	rc.inst.table.Range(func(name string, value Value) bool {
		if v, ok := value.Any(); ok {
			out[name] = v
		}
		return true
	})
	return out
}
