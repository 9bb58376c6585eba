package attrs

import (
	"fmt"
	"time"
)

// resolveAutomatic runs the type's resolution rule for name and caches the
// result in place. Declared dependencies are forced first; idempotence comes
// from the cache, so the rule body runs at most once per instance.
func (inst *Instance) resolveAutomatic(name string) (any, error) {
	typeName := inst.schema.typeName

	// Build-time validation rejects declared cycles; this guard catches a
	// rule recursing through an undeclared dependency at runtime.
	if inst.resolving[name] {
		return nil, wrapResolutionError(typeName, name, fmt.Errorf("resolution recursion through an undeclared dependency"))
	}

	rule, ok := inst.schema.rules[name]
	if !ok {
		return nil, wrapResolutionError(typeName, name, fmt.Errorf("no resolution rule registered"))
	}

	inst.resolving[name] = true
	defer delete(inst.resolving, name)

	for _, dep := range inst.schema.ruleDeps[name] {
		if _, err := inst.Get(dep); err != nil {
			return nil, wrapResolutionError(typeName, name, fmt.Errorf("forcing dependency %q: %w", dep, err))
		}
	}

	start := time.Now()
	v, err := rule.Resolve(&ResolveContext{inst: inst, attr: name})
	inst.resolutions[name]++
	inst.logger.LogResolve(ResolveLogEvent{
		Type:     typeName,
		Attr:     name,
		Engine:   ruleEngineName(rule),
		Origin:   OriginAutomatic,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		return nil, wrapResolutionError(typeName, name, err)
	}

	inst.table.Set(name, Concrete(v))
	inst.origins[name] = OriginAutomatic
	inst.notify("attr.resolved", name, nil, v)
	return v, nil
}
