// Package docgen renders a registry's recipe schemas into a serialisable
// document for reference docs and introspection tooling.
package docgen

import (
	"encoding/json"

	attrs "github.com/goliatone/go-attrs"
)

// Format identifies the representation a generated document encodes.
type Format string

// FormatRecipes is the flattened per-recipe attribute listing.
const FormatRecipes Format = "recipes"

// Document is the generated output. It is JSON-serialisable.
type Document struct {
	Format  Format   `json:"format"`
	Recipes []Recipe `json:"recipes"`
}

// Recipe documents one primitive type.
type Recipe struct {
	Type       string        `json:"type"`
	Args       []Arg         `json:"args,omitempty"`
	Attributes []Attribute   `json:"attributes"`
	Deprecated []Deprecation `json:"deprecated,omitempty"`
}

// Arg documents one required positional input.
type Arg struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Attribute documents one composed attribute: its declared default state and
// doc string. Inherits carries the referenced name for inherit cells.
type Attribute struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Default  string `json:"default"`
	Doc      string `json:"doc,omitempty"`
	Inherits string `json:"inherits,omitempty"`
}

// Deprecation documents one migration rule.
type Deprecation struct {
	Old       string `json:"old"`
	New       string `json:"new,omitempty"`
	RemovedIn string `json:"removed_in,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     bool   `json:"error"`
}

// Generator walks a registry and produces documents. Safe for concurrent use;
// it holds no state.
type Generator struct{}

// NewGenerator constructs a Generator.
func NewGenerator() Generator { return Generator{} }

// Generate documents every registered recipe in registration order. A nil
// registry yields an empty document.
func (Generator) Generate(registry *attrs.Registry) (Document, error) {
	doc := Document{Format: FormatRecipes, Recipes: []Recipe{}}
	if registry == nil {
		return doc, nil
	}
	for _, typeName := range registry.Types() {
		schema, ok := registry.Schema(typeName)
		if !ok {
			continue
		}
		doc.Recipes = append(doc.Recipes, describe(schema))
	}
	return doc, nil
}

func describe(schema *attrs.Schema) Recipe {
	recipe := Recipe{Type: schema.Type()}
	for _, arg := range schema.Args() {
		recipe.Args = append(recipe.Args, Arg{Name: arg.Name, Type: arg.Type})
	}
	for _, name := range schema.Names() {
		decl, ok := schema.Decl(name)
		if !ok {
			continue
		}
		attr := Attribute{
			Name:    name,
			Kind:    decl.Default.Kind().String(),
			Default: decl.Default.String(),
			Doc:     decl.Doc,
		}
		if decl.Default.IsInherit() {
			attr.Inherits = decl.Default.InheritTarget()
		}
		recipe.Attributes = append(recipe.Attributes, attr)
	}
	for _, rule := range schema.Deprecations() {
		recipe.Deprecated = append(recipe.Deprecated, Deprecation{
			Old:       rule.Old,
			New:       rule.New,
			RemovedIn: rule.RemovedIn,
			Message:   rule.Message,
			Error:     rule.Error,
		})
	}
	return recipe
}

// ToJSON serialises the document.
func (d Document) ToJSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
