package attrs

import (
	"fmt"
	"sort"
)

// Arg constrains one required positional input of a primitive type.
type Arg struct {
	Name     string
	Type     string // human-readable type label used in diagnostics
	Validate func(v any) error
}

// Calculator derives attributes that are only computable once all declared
// and override attributes are populated: per-vertex color arrays from a
// scalar color plus a colormap, for example. It runs exactly once during
// construction and must resolve deferred values through Instance.Get before
// reading them.
type Calculator interface {
	CalculateAttributes(inst *Instance) error
}

// CalculatorFunc adapts a function to Calculator.
type CalculatorFunc func(inst *Instance) error

// CalculateAttributes implements Calculator.
func (f CalculatorFunc) CalculateAttributes(inst *Instance) error {
	if f == nil {
		return nil
	}
	return f(inst)
}

// SchemaSpec declares one primitive type for registration: its required
// inputs, the mixin groups it pulls in, its own attribute declarations, the
// resolution rules for its Automatic defaults, its deprecated names, and its
// calculated-attribute hook.
type SchemaSpec struct {
	Type       string
	Args       []Arg
	Mixins     []Group
	Attributes []Decl
	Rules      []RuleSpec
	Deprecated []Deprecation
	Calculate  Calculator
}

// Schema is the immutable per-type record built from a SchemaSpec: composed
// default table, declaration index, rule dispatch table, and deprecation
// list. Schemas are shared and read-only after registration.
type Schema struct {
	typeName   string
	args       []Arg
	defaults   *Table
	decls      map[string]Decl
	rules      map[string]Rule
	ruleDeps   map[string][]string
	deprecated map[string]Deprecation
	calculate  Calculator
}

// Type returns the primitive type name.
func (s *Schema) Type() string { return s.typeName }

// Args returns a copy of the positional input constraints.
func (s *Schema) Args() []Arg {
	if len(s.args) == 0 {
		return nil
	}
	out := make([]Arg, len(s.args))
	copy(out, s.args)
	return out
}

// Names returns the composed attribute names in declaration order.
func (s *Schema) Names() []string { return s.defaults.Names() }

// Decl returns the declaration composed for name.
func (s *Schema) Decl(name string) (Decl, bool) {
	decl, ok := s.decls[name]
	return decl, ok
}

// Defaults returns a copy of the composed default table.
func (s *Schema) Defaults() *Table { return s.defaults.Clone() }

// Deprecations returns the deprecation rules sorted by old name.
func (s *Schema) Deprecations() []Deprecation {
	if len(s.deprecated) == 0 {
		return nil
	}
	out := make([]Deprecation, 0, len(s.deprecated))
	for _, rule := range s.deprecated {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Old < out[j].Old })
	return out
}

// Registry associates primitive type names with their schemas. It is built
// once at startup, validated while it is built, and immutable afterwards, so
// concurrent reads from resolving primitives are safe.
type Registry struct {
	schemas map[string]*Schema
	order   []string
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: map[string]*Schema{}}
}

// Register composes and validates spec, failing fast on schema-definition
// errors: duplicate type names, mixin collisions without an override marker,
// Automatic defaults with no resolution rule, rule dependency cycles, and
// deprecation rules pointing at undeclared replacements.
func (r *Registry) Register(spec SchemaSpec) error {
	if spec.Type == "" {
		return &SchemaError{Reason: "primitive type name must not be empty"}
	}
	if _, exists := r.schemas[spec.Type]; exists {
		return &SchemaError{Type: spec.Type, Reason: "type already registered"}
	}

	seenArgs := make(map[string]struct{}, len(spec.Args))
	for _, arg := range spec.Args {
		if arg.Name == "" {
			return &SchemaError{Type: spec.Type, Reason: "positional argument with no name"}
		}
		if _, dup := seenArgs[arg.Name]; dup {
			return &SchemaError{Type: spec.Type, Reason: fmt.Sprintf("duplicate positional argument %q", arg.Name)}
		}
		seenArgs[arg.Name] = struct{}{}
	}

	table, decls, err := compose(spec.Type, spec.Mixins, spec.Attributes)
	if err != nil {
		return err
	}

	rules := make(map[string]Rule, len(spec.Rules))
	ruleDeps := make(map[string][]string, len(spec.Rules))
	for _, rs := range spec.Rules {
		if rs.Rule == nil {
			return &SchemaError{Type: spec.Type, Attr: rs.Attr, Reason: "nil resolution rule"}
		}
		if !table.Has(rs.Attr) {
			return &SchemaError{Type: spec.Type, Attr: rs.Attr, Reason: "resolution rule targets an undeclared attribute"}
		}
		if _, dup := rules[rs.Attr]; dup {
			return &SchemaError{Type: spec.Type, Attr: rs.Attr, Reason: "duplicate resolution rule"}
		}
		for _, dep := range rs.Deps {
			if !table.Has(dep) {
				return &SchemaError{Type: spec.Type, Attr: rs.Attr, Reason: fmt.Sprintf("rule depends on undeclared attribute %q", dep)}
			}
		}
		rules[rs.Attr] = rs.Rule
		if len(rs.Deps) > 0 {
			ruleDeps[rs.Attr] = append([]string(nil), rs.Deps...)
		}
	}

	// Every Automatic default must have a rule; surfacing this at draw time
	// would hide the misconfiguration until the first render.
	var missing []string
	table.Range(func(name string, value Value) bool {
		if value.IsAutomatic() {
			if _, ok := rules[name]; !ok {
				missing = append(missing, name)
			}
		}
		return true
	})
	if len(missing) > 0 {
		sort.Strings(missing)
		return &SchemaError{Type: spec.Type, Attr: missing[0], Reason: "automatic default has no resolution rule"}
	}

	if cycle := findRuleCycle(rules, ruleDeps); len(cycle) > 0 {
		return &SchemaError{Type: spec.Type, Attr: cycle[0], Reason: fmt.Sprintf("resolution rule dependency cycle: %v", cycle)}
	}

	deprecated := make(map[string]Deprecation, len(spec.Deprecated))
	for _, rule := range spec.Deprecated {
		if rule.Old == "" {
			return &SchemaError{Type: spec.Type, Reason: "deprecation rule with empty old name"}
		}
		if table.Has(rule.Old) {
			return &SchemaError{Type: spec.Type, Attr: rule.Old, Reason: "deprecated name still declared in the schema"}
		}
		if !rule.Error {
			if rule.New == "" {
				return &SchemaError{Type: spec.Type, Attr: rule.Old, Reason: "rewrite deprecation needs a replacement name"}
			}
			if !table.Has(rule.New) {
				return &SchemaError{Type: spec.Type, Attr: rule.Old, Reason: fmt.Sprintf("replacement %q is not declared", rule.New)}
			}
		}
		if _, dup := deprecated[rule.Old]; dup {
			return &SchemaError{Type: spec.Type, Attr: rule.Old, Reason: "duplicate deprecation rule"}
		}
		deprecated[rule.Old] = rule
	}

	r.schemas[spec.Type] = &Schema{
		typeName:   spec.Type,
		args:       append([]Arg(nil), spec.Args...),
		defaults:   table,
		decls:      decls,
		rules:      rules,
		ruleDeps:   ruleDeps,
		deprecated: deprecated,
		calculate:  spec.Calculate,
	}
	r.order = append(r.order, spec.Type)
	return nil
}

// Schema returns the schema registered for typeName.
func (r *Registry) Schema(typeName string) (*Schema, bool) {
	s, ok := r.schemas[typeName]
	return s, ok
}

// Types returns type names in registration order.
func (r *Registry) Types() []string {
	if len(r.order) == 0 {
		return nil
	}
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// findRuleCycle runs a coloured depth-first search over declared rule
// dependencies and returns one cycle when present. Only deps that themselves
// have rules form edges; a dep on a concrete or inherited attribute cannot
// recurse.
func findRuleCycle(rules map[string]Rule, deps map[string][]string) []string {
	const (
		white = iota
		grey
		black
	)
	color := make(map[string]int, len(rules))
	var cycle []string

	var visit func(name string, trail []string) bool
	visit = func(name string, trail []string) bool {
		color[name] = grey
		trail = append(trail, name)
		for _, dep := range deps[name] {
			if _, ruled := rules[dep]; !ruled {
				continue
			}
			switch color[dep] {
			case grey:
				cycle = append(trail, dep)
				return true
			case white:
				if visit(dep, trail) {
					return true
				}
			}
		}
		color[name] = black
		return false
	}

	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if color[name] == white {
			if visit(name, nil) {
				return cycle
			}
		}
	}
	return nil
}
