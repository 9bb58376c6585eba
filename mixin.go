package attrs

import "fmt"

// Decl declares one attribute: its name, default cell, documentation, and the
// hard fallback used when an inherited default exhausts the theme chain.
//
// Override marks intentional shadowing: composing a declaration over an
// attribute already defined by an earlier group is a schema error unless the
// later declaration carries Override. This distinguishes deliberate
// re-declaration (an image disabling the generic group's fxaa default) from a
// copy-paste collision between groups.
type Decl struct {
	Name     string
	Default  Value
	Doc      string
	Fallback Value // required when Default is Inherit; ignored otherwise
	Override bool
}

// Group is a named, reusable bundle of attribute declarations shared across
// primitive types. Groups are immutable after construction; recipes copy from
// them during composition and never reference them live.
type Group struct {
	name  string
	decls []Decl
}

// NewGroup validates decls and returns an immutable group. Duplicate names
// within one group and declarations without a default are schema errors.
func NewGroup(name string, decls ...Decl) (Group, error) {
	seen := make(map[string]struct{}, len(decls))
	copied := make([]Decl, len(decls))
	for i, decl := range decls {
		if decl.Name == "" {
			return Group{}, &SchemaError{Attr: decl.Name, Reason: fmt.Sprintf("group %q declares an attribute with no name", name)}
		}
		if decl.Default.Kind() == KindInvalid {
			return Group{}, &SchemaError{Attr: decl.Name, Reason: fmt.Sprintf("group %q gives %q no default", name, decl.Name)}
		}
		if decl.Default.IsInherit() && decl.Fallback.Kind() != KindConcrete {
			return Group{}, &SchemaError{Attr: decl.Name, Reason: fmt.Sprintf("group %q declares inherited %q without a concrete fallback", name, decl.Name)}
		}
		if _, dup := seen[decl.Name]; dup {
			return Group{}, &SchemaError{Attr: decl.Name, Reason: fmt.Sprintf("group %q declares %q twice", name, decl.Name)}
		}
		seen[decl.Name] = struct{}{}
		copied[i] = decl
	}
	return Group{name: name, decls: copied}, nil
}

// MustGroup is NewGroup for package-level group variables; it panics on
// schema errors, which are programming mistakes.
func MustGroup(name string, decls ...Decl) Group {
	group, err := NewGroup(name, decls...)
	if err != nil {
		panic(err)
	}
	return group
}

// Name returns the group's identifier, used in collision diagnostics.
func (g Group) Name() string { return g.name }

// Decls returns a copy of the group's declarations in declared order.
func (g Group) Decls() []Decl {
	if len(g.decls) == 0 {
		return nil
	}
	out := make([]Decl, len(g.decls))
	copy(out, g.decls)
	return out
}

// compose merges the groups in listed order followed by the type-specific
// declarations into one table. A later declaration for an already-present
// name replaces the earlier default only when it carries the Override marker;
// otherwise the collision is a schema error naming both origins.
func compose(typeName string, groups []Group, specific []Decl) (*Table, map[string]Decl, error) {
	table := NewTable()
	byName := make(map[string]Decl)
	origin := make(map[string]string)

	apply := func(from string, decl Decl) error {
		if decl.Name == "" {
			return &SchemaError{Type: typeName, Reason: fmt.Sprintf("%s declares an attribute with no name", from)}
		}
		if decl.Default.Kind() == KindInvalid {
			return &SchemaError{Type: typeName, Attr: decl.Name, Reason: fmt.Sprintf("%s gives it no default", from)}
		}
		if decl.Default.IsInherit() && decl.Fallback.Kind() != KindConcrete {
			return &SchemaError{Type: typeName, Attr: decl.Name, Reason: fmt.Sprintf("%s declares it inherited without a concrete fallback", from)}
		}
		if prev, exists := origin[decl.Name]; exists && !decl.Override {
			return &SchemaError{
				Type: typeName,
				Attr: decl.Name,
				Reason: fmt.Sprintf("already declared by %s; %s must mark the re-declaration as an override",
					prev, from),
			}
		}
		table.Set(decl.Name, decl.Default)
		byName[decl.Name] = decl
		origin[decl.Name] = from
		return nil
	}

	for _, group := range groups {
		for _, decl := range group.decls {
			if err := apply(fmt.Sprintf("group %q", group.name), decl); err != nil {
				return nil, nil, err
			}
		}
	}
	for _, decl := range specific {
		if err := apply(fmt.Sprintf("type %q", typeName), decl); err != nil {
			return nil, nil, err
		}
	}
	return table, byName, nil
}
