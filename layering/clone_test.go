package layering

import "testing"

func TestCloneDeepCopiesNestedMaps(t *testing.T) {
	src := map[string]any{
		"palette": []any{"#002b36", "#dc322f"},
		"axis":    map[string]any{"ticksize": 8.0},
	}
	clone := Clone(src)

	clone["axis"].(map[string]any)["ticksize"] = 99.0
	clone["palette"].([]any)[0] = "#ffffff"

	if src["axis"].(map[string]any)["ticksize"] != 8.0 {
		t.Fatalf("nested map should be detached")
	}
	if src["palette"].([]any)[0] != "#002b36" {
		t.Fatalf("nested slice should be detached")
	}
}

func TestCloneHandlesNilAndScalars(t *testing.T) {
	if Clone[map[string]any](nil) != nil {
		t.Fatalf("nil map should clone to nil")
	}
	if Clone(42) != 42 {
		t.Fatalf("scalar should clone unchanged")
	}
	if Clone("viridis") != "viridis" {
		t.Fatalf("string should clone unchanged")
	}
}

func TestCloneCopiesPointers(t *testing.T) {
	v := 1.5
	src := &v
	clone := Clone(src)
	if clone == src {
		t.Fatalf("pointer should be reallocated")
	}
	*clone = 3.0
	if v != 1.5 {
		t.Fatalf("clone write must not touch the source")
	}
}

func TestCloneCopiesStructs(t *testing.T) {
	type window struct {
		Lo, Hi float64
	}
	src := window{Lo: 0, Hi: 2.5}
	clone := Clone(src)
	if clone != src {
		t.Fatalf("expected equal struct values, got %+v", clone)
	}
}
