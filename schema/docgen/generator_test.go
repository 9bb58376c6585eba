package docgen

import (
	"encoding/json"
	"strings"
	"testing"

	attrs "github.com/goliatone/go-attrs"
	"github.com/goliatone/go-attrs/recipes"
)

func TestGenerateEmptyRegistry(t *testing.T) {
	doc, err := NewGenerator().Generate(nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if doc.Format != FormatRecipes || len(doc.Recipes) != 0 {
		t.Fatalf("unexpected document %+v", doc)
	}
	doc, err = NewGenerator().Generate(attrs.NewRegistry())
	if err != nil || len(doc.Recipes) != 0 {
		t.Fatalf("empty registry should yield no recipes, got %+v (%v)", doc, err)
	}
}

func TestGenerateDescribesDeclarations(t *testing.T) {
	r := attrs.NewRegistry()
	err := r.Register(attrs.SchemaSpec{
		Type: "lines",
		Args: []attrs.Arg{{Name: "positions", Type: "[][2]float64"}},
		Attributes: []attrs.Decl{
			{Name: "visible", Default: attrs.Concrete(true), Doc: "Controls rendering."},
			{Name: "colormap", Default: attrs.Inherit("colormap"), Fallback: attrs.Concrete("viridis")},
			{Name: "color", Default: attrs.Automatic()},
		},
		Rules: []attrs.RuleSpec{{
			Attr: "color",
			Rule: attrs.RuleFunc(func(*attrs.ResolveContext) (any, error) { return "black", nil }),
		}},
		Deprecated: []attrs.Deprecation{{Old: "width", New: "visible", RemovedIn: "v0.18"}},
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	doc, err := NewGenerator().Generate(r)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(doc.Recipes) != 1 {
		t.Fatalf("expected one recipe, got %d", len(doc.Recipes))
	}
	recipe := doc.Recipes[0]
	if recipe.Type != "lines" || len(recipe.Args) != 1 || recipe.Args[0].Name != "positions" {
		t.Fatalf("unexpected recipe %+v", recipe)
	}
	if len(recipe.Attributes) != 3 {
		t.Fatalf("expected three attributes, got %v", recipe.Attributes)
	}

	byName := map[string]Attribute{}
	for _, attr := range recipe.Attributes {
		byName[attr.Name] = attr
	}
	if byName["visible"].Kind != "concrete" || byName["visible"].Doc != "Controls rendering." {
		t.Fatalf("unexpected visible %+v", byName["visible"])
	}
	if byName["colormap"].Kind != "inherit" || byName["colormap"].Inherits != "colormap" {
		t.Fatalf("unexpected colormap %+v", byName["colormap"])
	}
	if byName["color"].Kind != "automatic" || byName["color"].Default != "automatic" {
		t.Fatalf("unexpected color %+v", byName["color"])
	}

	if len(recipe.Deprecated) != 1 || recipe.Deprecated[0].Old != "width" || recipe.Deprecated[0].RemovedIn != "v0.18" {
		t.Fatalf("unexpected deprecations %+v", recipe.Deprecated)
	}
}

func TestGenerateCoversStockRecipes(t *testing.T) {
	doc, err := NewGenerator().Generate(recipes.Default())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(doc.Recipes) != 12 {
		t.Fatalf("expected 12 recipes, got %d", len(doc.Recipes))
	}
	if doc.Recipes[0].Type != "heatmap" {
		t.Fatalf("recipes should appear in registration order, got %q first", doc.Recipes[0].Type)
	}

	payload, err := doc.ToJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded Document
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.Format != FormatRecipes || len(decoded.Recipes) != 12 {
		t.Fatalf("round trip mismatch: %+v", decoded.Format)
	}
	if !strings.Contains(string(payload), `"inherits": "colormap"`) {
		t.Fatalf("expected inherited colormap in output")
	}
}
