// Package theme provides the ancestor attribute tables consulted when a
// primitive's inherited attributes resolve: construction, chain building,
// YAML loading, and storage of theme documents.
package theme

import (
	"fmt"

	attrs "github.com/goliatone/go-attrs"
)

// Rule computes a concrete value for a theme-owned Automatic attribute. It
// runs in the theme's own context, since the theme is the semantic owner of
// the default being resolved.
type Rule func(t *Theme) (any, error)

// Theme is one scene-level attribute table. Parents are fixed at
// construction, which keeps chains acyclic by construction. Themes are
// read-mostly: callers must serialize edits against concurrent resolution,
// the type takes no locks.
type Theme struct {
	name       string
	parent     *Theme
	table      *attrs.Table
	rules      map[string]Rule
	snapshotID string
}

// Option configures theme construction.
type Option func(*Theme)

// WithParent links the theme under parent in the inheritance chain.
func WithParent(parent *Theme) Option {
	return func(t *Theme) {
		t.parent = parent
	}
}

// WithAttr sets one attribute cell.
func WithAttr(name string, value attrs.Value) Option {
	return func(t *Theme) {
		t.table.Set(name, value)
	}
}

// WithTable seeds the theme from a table copy.
func WithTable(table *attrs.Table) Option {
	return func(t *Theme) {
		t.table = table.Clone()
	}
}

// WithRule registers the resolution rule for a theme-owned Automatic
// attribute.
func WithRule(name string, rule Rule) Option {
	return func(t *Theme) {
		if rule == nil {
			return
		}
		t.rules[name] = rule
	}
}

// New constructs a named theme.
func New(name string, opts ...Option) *Theme {
	t := &Theme{
		name:  name,
		table: attrs.NewTable(),
		rules: map[string]Rule{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Name implements attrs.ThemeSource.
func (t *Theme) Name() string { return t.name }

// Parent returns the next theme up the chain, or nil at the root.
func (t *Theme) Parent() *Theme { return t.parent }

// Attribute implements attrs.ThemeSource.
func (t *Theme) Attribute(name string) (attrs.Value, bool) {
	return t.table.Lookup(name)
}

// ResolveAutomatic implements attrs.ThemeSource: it runs the theme's own
// rule for name and caches the result in the theme's table, so subsequent
// inheritors see the same concrete value.
func (t *Theme) ResolveAutomatic(name string) (any, error) {
	if value, ok := t.table.Lookup(name); ok && value.IsConcrete() {
		v, _ := value.Any()
		return v, nil
	}
	rule, ok := t.rules[name]
	if !ok {
		return nil, fmt.Errorf("theme %q: no rule for automatic attribute %q", t.name, name)
	}
	v, err := rule(t)
	if err != nil {
		return nil, fmt.Errorf("theme %q: resolving %q: %w", t.name, name, err)
	}
	t.table.Set(name, attrs.Concrete(v))
	return v, nil
}

// Set overwrites one attribute. Intended for edits between render frames.
func (t *Theme) Set(name string, value attrs.Value) {
	t.table.Set(name, value)
}

// Names returns the attribute names defined on this theme only.
func (t *Theme) Names() []string { return t.table.Names() }

// SnapshotID returns the storage snapshot this theme was loaded from, when
// any.
func (t *Theme) SnapshotID() string { return t.snapshotID }

// Chain returns the ancestry nearest-first for the inheritance resolver.
// Duplicate theme names or a corrupted parent loop are rejected.
func (t *Theme) Chain() (attrs.ThemeChain, error) {
	var chain attrs.ThemeChain
	seenNames := map[string]struct{}{}
	seen := map[*Theme]struct{}{}
	for cur := t; cur != nil; cur = cur.parent {
		if _, loop := seen[cur]; loop {
			return nil, fmt.Errorf("theme %q: parent chain loops", cur.name)
		}
		seen[cur] = struct{}{}
		if cur.name == "" {
			return nil, fmt.Errorf("theme chain contains an unnamed theme")
		}
		if _, dup := seenNames[cur.name]; dup {
			return nil, fmt.Errorf("theme chain defines %q twice", cur.name)
		}
		seenNames[cur.name] = struct{}{}
		chain = append(chain, cur)
	}
	return chain, nil
}

// Flatten merges the chain into one effective table, nearest theme winning.
func (t *Theme) Flatten() (*attrs.Table, error) {
	chain, err := t.Chain()
	if err != nil {
		return nil, err
	}
	out := attrs.NewTable()
	for i := len(chain) - 1; i >= 0; i-- {
		layer := chain[i].(*Theme)
		layer.table.Range(func(name string, value attrs.Value) bool {
			out.Set(name, value)
			return true
		})
	}
	return out, nil
}
