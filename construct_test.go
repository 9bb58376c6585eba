package attrs

import (
	"errors"
	"testing"

	"github.com/goliatone/go-attrs/pkg/observe"
)

func scatterTestRegistry(t *testing.T) *Registry {
	t.Helper()
	return testRegistry(t, SchemaSpec{
		Type: "scatter",
		Args: []Arg{{
			Name: "positions",
			Type: "[][2]float64",
			Validate: func(v any) error {
				if v == nil {
					return errors.New("must not be nil")
				}
				return nil
			},
		}},
		Attributes: []Decl{
			{Name: "visible", Default: Concrete(true)},
			{Name: "markersize", Default: Concrete(9.0)},
			{Name: "color", Default: Automatic()},
		},
		Rules: []RuleSpec{{Attr: "color", Rule: staticRule("black")}},
		Deprecated: []Deprecation{
			{Old: "rotations", New: "visible"},
			{Old: "glow", Error: true, Message: "glow rendering was removed", RemovedIn: "v0.19"},
		},
	})
}

func scatterInput() []any {
	return []any{[][2]float64{{0, 0}, {1, 1}}}
}

func TestNewUnknownTypeFails(t *testing.T) {
	r := scatterTestRegistry(t)
	if _, err := r.New("contour", nil, nil); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected unknown type error, got %v", err)
	}
}

func TestNewValidatesPositionalInput(t *testing.T) {
	r := scatterTestRegistry(t)
	if _, err := r.New("scatter", nil, nil); err == nil {
		t.Fatalf("expected arity error for missing input")
	}
	if _, err := r.New("scatter", []any{nil}, nil); err == nil {
		t.Fatalf("expected validation error for nil positions")
	}
}

func TestNewAppliesOverrides(t *testing.T) {
	r := scatterTestRegistry(t)
	inst, err := r.New("scatter", scatterInput(), map[string]any{"markersize": 20.0})
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	if got := inst.MustGet("markersize"); got != 20.0 {
		t.Fatalf("expected override 20.0, got %v", got)
	}
	if got := inst.MustGet("visible"); got != true {
		t.Fatalf("expected default true, got %v", got)
	}
	if inst.Type() != "scatter" {
		t.Fatalf("unexpected type %q", inst.Type())
	}
}

func TestNewRejectsUnknownOverride(t *testing.T) {
	r := scatterTestRegistry(t)
	_, err := r.New("scatter", scatterInput(), map[string]any{"markersize": 20.0, "markerzise": 1.0})
	if !errors.Is(err, ErrUnknownAttribute) {
		t.Fatalf("expected unknown attribute error, got %v", err)
	}
	var unknownErr *UnknownAttributeError
	if !errors.As(err, &unknownErr) || unknownErr.Attr != "markerzise" {
		t.Fatalf("error should name the unknown key, got %v", err)
	}
}

func TestNewRewritesDeprecatedOverride(t *testing.T) {
	r := scatterTestRegistry(t)
	inst, err := r.New("scatter", scatterInput(), map[string]any{"rotations": false})
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	if got := inst.MustGet("visible"); got != false {
		t.Fatalf("deprecated override should land on the new name, got %v", got)
	}
	if _, ok := inst.GetRaw("rotations"); ok {
		t.Fatalf("the old name must never enter the live table")
	}
}

func TestNewRejectsOldAndNewTogether(t *testing.T) {
	r := scatterTestRegistry(t)
	_, err := r.New("scatter", scatterInput(), map[string]any{"rotations": false, "visible": true})
	if err == nil {
		t.Fatalf("expected conflict error for old and new name together")
	}
}

func TestNewRejectsHardDeprecatedOverride(t *testing.T) {
	r := scatterTestRegistry(t)
	_, err := r.New("scatter", scatterInput(), map[string]any{"glow": 2.0})
	if !errors.Is(err, ErrDeprecatedAttribute) {
		t.Fatalf("expected deprecated attribute error, got %v", err)
	}
	var depErr *DeprecatedAttributeError
	if !errors.As(err, &depErr) {
		t.Fatalf("expected DeprecatedAttributeError, got %T", err)
	}
	if depErr.Attr != "glow" || depErr.RemovedIn != "v0.19" {
		t.Fatalf("unexpected error metadata %+v", depErr)
	}
}

func TestSetOverridesDeferredResolution(t *testing.T) {
	r := scatterTestRegistry(t)
	inst, err := r.New("scatter", scatterInput(), nil)
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	if err := inst.Set("color", "red"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got := inst.MustGet("color"); got != "red" {
		t.Fatalf("explicit value should win over the rule, got %v", got)
	}
	if inst.Resolutions("color") != 0 {
		t.Fatalf("the rule must not run for an explicit value")
	}
	if err := inst.Set("ghost", 1); !errors.Is(err, ErrUnknownAttribute) {
		t.Fatalf("set on unknown attribute should fail, got %v", err)
	}
}

func TestResolvedMaterialisesEveryCell(t *testing.T) {
	r := scatterTestRegistry(t)
	inst, err := r.New("scatter", scatterInput(), nil)
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	resolved, err := inst.Resolved()
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	resolved.Range(func(name string, value Value) bool {
		if !value.IsConcrete() {
			t.Fatalf("backend table must be fully concrete, %s is %v", name, value.Kind())
		}
		return true
	})
	if v, _ := resolved.Lookup("color"); v.String() != "black" {
		t.Fatalf("expected resolved color black, got %s", v)
	}
}

func TestCalculatorRunsOnceDuringConstruction(t *testing.T) {
	runs := 0
	r := testRegistry(t, SchemaSpec{
		Type:       "mesh",
		Attributes: []Decl{{Name: "color", Default: Concrete(0.5)}},
		Calculate: CalculatorFunc(func(inst *Instance) error {
			runs++
			inst.SetCalculated("calculated_colors", []float64{0.5})
			return nil
		}),
	})
	inst, err := r.New("mesh", nil, nil)
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	if runs != 1 {
		t.Fatalf("calculator should run exactly once, ran %d times", runs)
	}
	got, err := inst.Get("calculated_colors")
	if err != nil {
		t.Fatalf("calculated attribute missing: %v", err)
	}
	if colors, ok := got.([]float64); !ok || len(colors) != 1 {
		t.Fatalf("unexpected calculated value %v", got)
	}
	_ = inst.MustGet("calculated_colors")
}

func TestObserverSeesConstructionAndWrites(t *testing.T) {
	capture := &observe.CaptureHook{}
	r := scatterTestRegistry(t)
	inst, err := r.New("scatter", scatterInput(), map[string]any{"rotations": false},
		WithObservers(observe.Hooks{capture}))
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	if events := capture.ByVerb("primitive.constructed"); len(events) != 1 {
		t.Fatalf("expected one construction event, got %d", len(events))
	}
	if events := capture.ByVerb("attr.rewritten"); len(events) != 1 || events[0].Attr != "rotations" {
		t.Fatalf("expected rewrite event for rotations, got %v", events)
	}

	if err := inst.Set("markersize", 12.0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	sets := capture.ByVerb("attr.set")
	if len(sets) != 1 || sets[0].Attr != "markersize" || sets[0].NewValue != 12.0 {
		t.Fatalf("expected a set event for markersize, got %v", sets)
	}

	inst.MustGet("color")
	if events := capture.ByVerb("attr.resolved"); len(events) != 1 || events[0].Attr != "color" {
		t.Fatalf("expected a resolve event for color, got %v", events)
	}
}

func TestInputReturnsCopy(t *testing.T) {
	r := scatterTestRegistry(t)
	inst, err := r.New("scatter", scatterInput(), nil)
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	in := inst.Input()
	if len(in) != 1 {
		t.Fatalf("expected one positional input, got %d", len(in))
	}
	in[0] = nil
	if inst.Input()[0] == nil {
		t.Fatalf("mutating the returned slice must not touch the instance")
	}
}
