package attrs

import (
	"errors"
	"fmt"
	"testing"
)

// stubTheme is a minimal ThemeSource for exercising the inheritance walk
// without pulling in the theme package.
type stubTheme struct {
	name    string
	table   *Table
	rules   map[string]func() (any, error)
	resolve int
}

func newStubTheme(name string) *stubTheme {
	return &stubTheme{name: name, table: NewTable(), rules: map[string]func() (any, error){}}
}

func (s *stubTheme) Name() string { return s.name }

func (s *stubTheme) Attribute(name string) (Value, bool) {
	return s.table.Lookup(name)
}

func (s *stubTheme) ResolveAutomatic(name string) (any, error) {
	rule, ok := s.rules[name]
	if !ok {
		return nil, fmt.Errorf("no rule for %q", name)
	}
	s.resolve++
	v, err := rule()
	if err != nil {
		return nil, err
	}
	s.table.Set(name, Concrete(v))
	return v, nil
}

func inheritTestRegistry(t *testing.T) *Registry {
	t.Helper()
	return testRegistry(t, SchemaSpec{
		Type: "lines",
		Attributes: []Decl{
			{Name: "linewidth", Default: Inherit("linewidth"), Fallback: Concrete(1.5)},
			{Name: "colormap", Default: Inherit("colormap"), Fallback: Concrete("viridis")},
		},
	})
}

func TestInheritPrefersNearestAncestor(t *testing.T) {
	scene := newStubTheme("scene")
	scene.table.Set("linewidth", Concrete(4.0))
	global := newStubTheme("global")
	global.table.Set("linewidth", Concrete(2.0))

	r := inheritTestRegistry(t)
	inst, err := r.New("lines", nil, nil, WithThemes(ThemeChain{scene, global}))
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	if got := inst.MustGet("linewidth"); got != 4.0 {
		t.Fatalf("nearest ancestor should win, got %v", got)
	}
}

func TestInheritSkipsAncestorsWithoutTheAttribute(t *testing.T) {
	scene := newStubTheme("scene")
	global := newStubTheme("global")
	global.table.Set("linewidth", Concrete(2.0))

	r := inheritTestRegistry(t)
	inst, err := r.New("lines", nil, nil, WithThemes(ThemeChain{scene, global}))
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	if got := inst.MustGet("linewidth"); got != 2.0 {
		t.Fatalf("walk should continue past silent ancestors, got %v", got)
	}
}

func TestInheritAtAncestorContinuesWalking(t *testing.T) {
	scene := newStubTheme("scene")
	scene.table.Set("colormap", Inherit("colormap"))
	global := newStubTheme("global")
	global.table.Set("colormap", Concrete("plasma"))

	r := inheritTestRegistry(t)
	inst, err := r.New("lines", nil, nil, WithThemes(ThemeChain{scene, global}))
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	if got := inst.MustGet("colormap"); got != "plasma" {
		t.Fatalf("inherit at an ancestor should defer further up, got %v", got)
	}
}

func TestInheritFallsBackWhenChainExhausted(t *testing.T) {
	r := inheritTestRegistry(t)
	inst, err := r.New("lines", nil, nil)
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	if got := inst.MustGet("linewidth"); got != 1.5 {
		t.Fatalf("expected the hard fallback, got %v", got)
	}
	if got := inst.MustGet("colormap"); got != "viridis" {
		t.Fatalf("expected the hard fallback, got %v", got)
	}
}

func TestInheritResolvesAutomaticInAncestorContext(t *testing.T) {
	scene := newStubTheme("scene")
	scene.table.Set("colormap", Automatic())
	scene.rules["colormap"] = func() (any, error) { return "inferno", nil }

	r := inheritTestRegistry(t)
	inst, err := r.New("lines", nil, nil, WithThemes(ThemeChain{scene}))
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	if got := inst.MustGet("colormap"); got != "inferno" {
		t.Fatalf("automatic at the ancestor should resolve there, got %v", got)
	}
	// The ancestor caches in its own table; a second read does not rerun.
	if got := inst.MustGet("colormap"); got != "inferno" {
		t.Fatalf("unexpected second read %v", got)
	}
	if scene.resolve != 1 {
		t.Fatalf("ancestor rule should run once, ran %d times", scene.resolve)
	}
}

func TestInheritAncestorRuleFailureSurfaces(t *testing.T) {
	scene := newStubTheme("scene")
	scene.table.Set("colormap", Automatic())
	scene.rules["colormap"] = func() (any, error) { return nil, errors.New("palette unavailable") }

	r := inheritTestRegistry(t)
	inst, err := r.New("lines", nil, nil, WithThemes(ThemeChain{scene}))
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	_, err = inst.Get("colormap")
	if !errors.Is(err, ErrResolution) {
		t.Fatalf("expected resolution error, got %v", err)
	}
}

func TestInheritedLookupSeesLaterThemeEdits(t *testing.T) {
	scene := newStubTheme("scene")
	scene.table.Set("linewidth", Concrete(4.0))

	r := inheritTestRegistry(t)
	inst, err := r.New("lines", nil, nil, WithThemes(ThemeChain{scene}))
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	if got := inst.MustGet("linewidth"); got != 4.0 {
		t.Fatalf("expected 4.0, got %v", got)
	}

	scene.table.Set("linewidth", Concrete(8.0))
	if got := inst.MustGet("linewidth"); got != 8.0 {
		t.Fatalf("theme edits between reads must stay visible, got %v", got)
	}

	// The local cell stays an inherit reference.
	if raw, _ := inst.GetRaw("linewidth"); !raw.IsInherit() {
		t.Fatalf("inherited lookups must not cache locally, got %v", raw.Kind())
	}
}

func TestInheritedLoggingUsesInheritEngine(t *testing.T) {
	scene := newStubTheme("scene")
	scene.table.Set("linewidth", Concrete(4.0))

	var events []ResolveLogEvent
	r := inheritTestRegistry(t)
	inst, err := r.New("lines", nil, nil,
		WithThemes(ThemeChain{scene}),
		WithResolveLogger(ResolveLoggerFunc(func(event ResolveLogEvent) {
			events = append(events, event)
		})))
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	inst.MustGet("linewidth")
	if len(events) != 1 || events[0].Engine != "inherit" {
		t.Fatalf("expected one inherit event, got %v", events)
	}
	if layer, ok := events[0].Origin.Theme(); !ok || layer != "scene" {
		t.Fatalf("expected theme origin scene, got %q", events[0].Origin)
	}
}

func TestTraceResolveLogsInheritedLookup(t *testing.T) {
	scene := newStubTheme("scene")
	scene.table.Set("linewidth", Concrete(4.0))

	var events []ResolveLogEvent
	r := inheritTestRegistry(t)
	inst, err := r.New("lines", nil, nil,
		WithThemes(ThemeChain{scene}),
		WithResolveLogger(ResolveLoggerFunc(func(event ResolveLogEvent) {
			events = append(events, event)
		})))
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	trace, err := inst.TraceResolve("linewidth")
	if err != nil {
		t.Fatalf("trace failed: %v", err)
	}
	if trace.Value != 4.0 {
		t.Fatalf("expected 4.0, got %v", trace.Value)
	}
	if len(events) != 1 || events[0].Engine != "inherit" {
		t.Fatalf("traced inherited lookups must log like plain reads, got %v", events)
	}
}
