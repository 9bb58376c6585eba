package attrs

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/goliatone/go-attrs/pkg/observe"
)

// Instance is one primitive's live attribute state: the cloned default table
// plus user overrides, calculated attributes, and cached resolutions. Each
// instance exclusively owns its table; construction and queries happen on the
// calling goroutine.
type Instance struct {
	schema      *Schema
	table       *Table
	input       []any
	chain       ThemeChain
	logger      ResolveLogger
	hooks       observe.Hooks
	origins     map[string]Origin
	resolving   map[string]bool
	resolutions map[string]int
}

// InstanceOption configures construction.
type InstanceOption func(*instanceConfig)

type instanceConfig struct {
	chain  ThemeChain
	logger ResolveLogger
	hooks  observe.Hooks
}

// WithThemes supplies the ancestor theme chain consulted for inherited
// attributes, nearest ancestor first.
func WithThemes(chain ThemeChain) InstanceOption {
	return func(cfg *instanceConfig) {
		cfg.chain = chain
	}
}

// WithResolveLogger attaches a logger that records resolution events.
func WithResolveLogger(logger ResolveLogger) InstanceOption {
	return func(cfg *instanceConfig) {
		if logger == nil {
			cfg.logger = noopResolveLogger{}
			return
		}
		cfg.logger = logger
	}
}

// WithObservers attaches hooks notified on attribute writes and resolutions.
func WithObservers(hooks observe.Hooks) InstanceOption {
	return func(cfg *instanceConfig) {
		cfg.hooks = hooks
	}
}

// New constructs an instance of typeName: the registry supplies the composed
// schema, overrides are screened for deprecated names and applied atomically,
// and the type's calculated-attribute hook runs once before the instance is
// returned.
func (r *Registry) New(typeName string, input []any, overrides map[string]any, opts ...InstanceOption) (*Instance, error) {
	schema, ok := r.schemas[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}

	if len(input) != len(schema.args) {
		return nil, fmt.Errorf("attrs: %s requires %d positional inputs, got %d", typeName, len(schema.args), len(input))
	}
	for i, arg := range schema.args {
		if arg.Validate == nil {
			continue
		}
		if err := arg.Validate(input[i]); err != nil {
			return nil, fmt.Errorf("attrs: %s input %q (%s): %w", typeName, arg.Name, arg.Type, err)
		}
	}

	cfg := instanceConfig{logger: noopResolveLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	inst := &Instance{
		schema:      schema,
		table:       schema.defaults.Clone(),
		input:       append([]any(nil), input...),
		chain:       cfg.chain,
		logger:      cfg.logger,
		hooks:       cfg.hooks,
		origins:     make(map[string]Origin, schema.defaults.Len()),
		resolving:   map[string]bool{},
		resolutions: map[string]int{},
	}
	for _, name := range schema.defaults.Names() {
		inst.origins[name] = OriginDefault
	}

	overrides, rewritten, err := applyDeprecations(typeName, schema.deprecated, overrides)
	if err != nil {
		return nil, err
	}
	for _, old := range rewritten {
		inst.notify("attr.rewritten", old, nil, schema.deprecated[old].New)
	}

	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !inst.table.Has(key) {
			return nil, &UnknownAttributeError{Type: typeName, Attr: key}
		}
		inst.table.Set(key, Concrete(overrides[key]))
		inst.origins[key] = OriginExplicit
	}

	if schema.calculate != nil {
		if err := schema.calculate.CalculateAttributes(inst); err != nil {
			return nil, fmt.Errorf("attrs: %s calculated attributes: %w", typeName, err)
		}
	}

	inst.notify("primitive.constructed", "", nil, nil)
	return inst, nil
}

// Type returns the primitive type name.
func (inst *Instance) Type() string { return inst.schema.typeName }

// Schema returns the shared, read-only schema backing this instance.
func (inst *Instance) Schema() *Schema { return inst.schema }

// Input returns a copy of the positional input data.
func (inst *Instance) Input() []any {
	if len(inst.input) == 0 {
		return nil
	}
	return append([]any(nil), inst.input...)
}

// Names returns the attribute names in table order.
func (inst *Instance) Names() []string { return inst.table.Names() }

// Get returns the concrete value for name, resolving the Automatic sentinel
// through the type's rule and Inherit cells through the theme chain. The
// resolved value of an Automatic cell is cached; inherited lookups are not,
// so ancestor theme edits between frames stay visible.
func (inst *Instance) Get(name string) (any, error) {
	value, ok := inst.table.Lookup(name)
	if !ok {
		return nil, &UnknownAttributeError{Type: inst.schema.typeName, Attr: name}
	}
	switch value.Kind() {
	case KindConcrete:
		v, _ := value.Any()
		return v, nil
	case KindAutomatic:
		return inst.resolveAutomatic(name)
	case KindInherit:
		v, _, _, err := inst.resolveInheritedLocal(name, value)
		return v, err
	default:
		return nil, wrapResolutionError(inst.schema.typeName, name, fmt.Errorf("invalid value cell"))
	}
}

// MustGet is Get for call sites where the attribute is known to resolve; it
// panics on error.
func (inst *Instance) MustGet(name string) any {
	v, err := inst.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// GetRaw returns the sentinel-or-concrete cell state without resolving, for
// introspection and documentation tooling.
func (inst *Instance) GetRaw(name string) (Value, bool) {
	return inst.table.Lookup(name)
}

// Set overwrites name with an explicit concrete value. Explicit values win
// over both deferred resolution and inheritance on subsequent reads.
func (inst *Instance) Set(name string, value any) error {
	old, ok := inst.table.Lookup(name)
	if !ok {
		return &UnknownAttributeError{Type: inst.schema.typeName, Attr: name}
	}
	inst.table.Set(name, Concrete(value))
	inst.origins[name] = OriginExplicit
	oldValue, _ := old.Any()
	inst.notify("attr.set", name, oldValue, value)
	return nil
}

// SetCalculated writes a derived attribute from a calculated-attribute hook.
// Unlike Set it may introduce names absent from the declared schema.
func (inst *Instance) SetCalculated(name string, value any) {
	inst.table.Set(name, Concrete(value))
	inst.origins[name] = OriginCalculated
	inst.notify("attr.set", name, nil, value)
}

// Resolutions reports how many times the resolution rule for name actually
// ran. Cached reads do not increment it.
func (inst *Instance) Resolutions(name string) int {
	return inst.resolutions[name]
}

// Resolved materialises the full table for a rendering backend: every
// Automatic and Inherit cell replaced with its concrete value. Backends never
// see sentinels.
func (inst *Instance) Resolved() (*Table, error) {
	out := NewTable()
	for _, name := range inst.table.Names() {
		v, err := inst.Get(name)
		if err != nil {
			return nil, err
		}
		out.Set(name, Concrete(v))
	}
	return out, nil
}

// TraceResolve resolves name like Get while recording provenance: which
// layer supplied the value and the theme-chain visits performed on the way.
func (inst *Instance) TraceResolve(name string) (Trace, error) {
	value, ok := inst.table.Lookup(name)
	if !ok {
		return Trace{}, &UnknownAttributeError{Type: inst.schema.typeName, Attr: name}
	}
	trace := Trace{Type: inst.schema.typeName, Attr: name}
	switch value.Kind() {
	case KindConcrete:
		v, _ := value.Any()
		trace.Origin = inst.origins[name]
		trace.Value = v
		return trace, nil
	case KindAutomatic:
		v, err := inst.resolveAutomatic(name)
		if err != nil {
			return Trace{}, err
		}
		trace.Origin = OriginAutomatic
		trace.Value = v
		return trace, nil
	case KindInherit:
		v, origin, steps, err := inst.resolveInheritedLocal(name, value)
		if err != nil {
			return Trace{}, err
		}
		trace.Origin = origin
		trace.Value = v
		trace.Layers = visitsFromSteps(steps)
		return trace, nil
	default:
		return Trace{}, wrapResolutionError(inst.schema.typeName, name, fmt.Errorf("invalid value cell"))
	}
}

func (inst *Instance) resolveInheritedLocal(name string, value Value) (any, Origin, []inheritStep, error) {
	decl := inst.schema.decls[name]
	start := time.Now()
	v, origin, steps, err := resolveInherited(inst.schema.typeName, value.InheritTarget(), inst.chain, decl.Fallback)
	inst.logger.LogResolve(ResolveLogEvent{
		Type:     inst.schema.typeName,
		Attr:     name,
		Engine:   "inherit",
		Origin:   origin,
		Duration: time.Since(start),
		Err:      err,
	})
	return v, origin, steps, err
}

func (inst *Instance) notify(verb, attr string, oldValue, newValue any) {
	if !inst.hooks.Enabled() {
		return
	}
	_ = inst.hooks.Notify(context.Background(), observe.Event{
		Verb:          verb,
		PrimitiveType: inst.schema.typeName,
		Attr:          attr,
		Origin:        string(inst.origins[attr]),
		OldValue:      oldValue,
		NewValue:      newValue,
	})
}
