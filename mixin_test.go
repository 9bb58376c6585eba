package attrs

import (
	"errors"
	"strings"
	"testing"
)

func TestNewGroupRejectsBadDeclarations(t *testing.T) {
	if _, err := NewGroup("generic", Decl{Name: "", Default: Concrete(true)}); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected schema error for empty name, got %v", err)
	}
	if _, err := NewGroup("generic", Decl{Name: "visible"}); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected schema error for missing default, got %v", err)
	}
	if _, err := NewGroup("generic",
		Decl{Name: "visible", Default: Concrete(true)},
		Decl{Name: "visible", Default: Concrete(false)},
	); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected schema error for duplicate name, got %v", err)
	}
}

func TestNewGroupRequiresFallbackForInherit(t *testing.T) {
	_, err := NewGroup("colormapping", Decl{Name: "colormap", Default: Inherit("colormap")})
	if !errors.Is(err, ErrSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}

	group, err := NewGroup("colormapping",
		Decl{Name: "colormap", Default: Inherit("colormap"), Fallback: Concrete("viridis")},
	)
	if err != nil {
		t.Fatalf("inherit with fallback should compose: %v", err)
	}
	decls := group.Decls()
	if len(decls) != 1 || decls[0].Name != "colormap" {
		t.Fatalf("unexpected decls %v", decls)
	}
}

func TestComposeCollisionWithoutOverrideFails(t *testing.T) {
	generic := MustGroup("generic", Decl{Name: "fxaa", Default: Concrete(true)})
	imaging := MustGroup("imaging", Decl{Name: "fxaa", Default: Concrete(false)})

	_, _, err := compose("image", []Group{generic, imaging}, nil)
	if !errors.Is(err, ErrSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %T", err)
	}
	if schemaErr.Attr != "fxaa" {
		t.Fatalf("expected the collision to name fxaa, got %q", schemaErr.Attr)
	}
	if !strings.Contains(schemaErr.Reason, `group "generic"`) {
		t.Fatalf("collision should name the earlier origin, got %q", schemaErr.Reason)
	}
}

func TestComposeOverrideMarkerShadowsEarlierGroup(t *testing.T) {
	generic := MustGroup("generic", Decl{Name: "fxaa", Default: Concrete(true)})
	specific := []Decl{{Name: "fxaa", Default: Concrete(false), Override: true}}

	table, decls, err := compose("image", []Group{generic}, specific)
	if err != nil {
		t.Fatalf("override marker should permit shadowing: %v", err)
	}
	v, _ := table.Lookup("fxaa")
	if boxed, _ := v.Any(); boxed != false {
		t.Fatalf("later declaration should win, got %v", boxed)
	}
	if !decls["fxaa"].Override {
		t.Fatalf("composed declaration should keep the override marker")
	}
}

func TestComposeKeepsDeclarationOrder(t *testing.T) {
	first := MustGroup("first",
		Decl{Name: "visible", Default: Concrete(true)},
		Decl{Name: "overdraw", Default: Concrete(false)},
	)
	second := MustGroup("second", Decl{Name: "colormap", Default: Inherit("colormap"), Fallback: Concrete("viridis")})
	specific := []Decl{{Name: "interpolate", Default: Concrete(false)}}

	table, _, err := compose("heatmap", []Group{first, second}, specific)
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	want := []string{"visible", "overdraw", "colormap", "interpolate"}
	got := table.Names()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestMustGroupPanicsOnSchemaError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for invalid group")
		}
	}()
	MustGroup("broken", Decl{Name: "visible"})
}
