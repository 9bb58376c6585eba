package theme

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-attrs/internal/hydrate"
	"github.com/goliatone/go-attrs/layering"
)

// Document is the raw, storage-facing form of one theme: a name plus
// untyped attribute values as decoded from YAML or JSON.
type Document struct {
	Name       string         `yaml:"name" json:"name"`
	Attributes map[string]any `yaml:"attributes" json:"attributes"`
}

// Parse decodes one YAML theme document.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("theme: parse: %w", err)
	}
	if doc.Name == "" {
		return Document{}, fmt.Errorf("theme: document has no name")
	}
	return doc, nil
}

// FromDocument hydrates doc into a Theme. Attribute values follow the
// hydrate conventions: "automatic", "inherit(name)", hex and named colors.
func FromDocument(doc Document, opts ...Option) (*Theme, error) {
	if doc.Name == "" {
		return nil, fmt.Errorf("theme: document has no name")
	}
	table, err := hydrate.New().Decode(hydrate.Context{Theme: doc.Name}, doc.Attributes)
	if err != nil {
		return nil, err
	}
	merged := append([]Option{WithTable(table)}, opts...)
	return New(doc.Name, merged...), nil
}

// Load reads one YAML theme document and hydrates it.
func Load(r io.Reader, opts ...Option) (*Theme, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("theme: load: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc, opts...)
}

// Compose merges documents ordered strongest to weakest into one theme named
// name, then hydrates the merged attribute set. Used for overlay documents
// that refine a base theme file without re-declaring it.
func Compose(name string, docs []Document, opts ...Option) (*Theme, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("theme: compose needs at least one document")
	}
	raw := make([]map[string]any, len(docs))
	for i, doc := range docs {
		raw[i] = doc.Attributes
	}
	merged := layering.MergeDocuments(raw...)
	return FromDocument(Document{Name: name, Attributes: merged}, opts...)
}
