package recipes

import (
	"fmt"
	"image/color"
	"sync"

	attrs "github.com/goliatone/go-attrs"
)

// modelRule resolves the model transform to the identity.
func modelRule() attrs.RuleSpec {
	return attrs.RuleSpec{
		Attr: "model",
		Rule: attrs.RuleFunc(func(*attrs.ResolveContext) (any, error) {
			return IdentityMat4(), nil
		}),
	}
}

// uvTransformRule resolves the texture transform to the identity.
func uvTransformRule() attrs.RuleSpec {
	return attrs.RuleSpec{
		Attr: "uv_transform",
		Rule: attrs.RuleFunc(func(*attrs.ResolveContext) (any, error) {
			return IdentityUV(), nil
		}),
	}
}

// colorRangeFromInput resolves colorrange from the extrema of the positional
// input at index.
func colorRangeFromInput(index int) attrs.RuleSpec {
	return attrs.RuleSpec{
		Attr: "colorrange",
		Rule: attrs.RuleFunc(func(rc *attrs.ResolveContext) (any, error) {
			data, err := rc.Arg(index)
			if err != nil {
				return nil, err
			}
			return colorExtent(data)
		}),
	}
}

// colorRangeFromAttr resolves colorrange from the color attribute when it
// carries numeric data, falling back to the unit window otherwise.
func colorRangeFromAttr(name string) attrs.RuleSpec {
	return attrs.RuleSpec{
		Attr: "colorrange",
		Deps: []string{name},
		Rule: attrs.RuleFunc(func(rc *attrs.ResolveContext) (any, error) {
			v, err := rc.Get(name)
			if err != nil {
				return nil, err
			}
			if !isNumericColorData(v) {
				return ColorRange{0, 1}, nil
			}
			return colorExtent(v)
		}),
	}
}

// paletteColorRule resolves a color attribute to the first entry of the
// inherited theme palette.
func paletteColorRule(attr string) attrs.RuleSpec {
	return attrs.RuleSpec{
		Attr: attr,
		Deps: []string{"palette"},
		Rule: attrs.RuleFunc(func(rc *attrs.ResolveContext) (any, error) {
			v, err := rc.Get("palette")
			if err != nil {
				return nil, err
			}
			palette, ok := v.([]color.NRGBA)
			if !ok || len(palette) == 0 {
				return nil, fmt.Errorf("palette is empty")
			}
			return palette[0], nil
		}),
	}
}

// paletteDecl defers the cycle palette to the scene theme.
func paletteDecl() attrs.Decl {
	return attrs.Decl{
		Name:     "palette",
		Default:  attrs.Inherit("palette"),
		Fallback: attrs.Concrete([]color.NRGBA{{A: 0xff}}),
		Doc:      "Color cycle consulted for automatic colors; inherited from the scene theme.",
	}
}

// programCache is a minimal ProgramCache for the shared expression rules.
type programCache struct {
	mu      sync.RWMutex
	entries map[string]any
}

func newProgramCache() *programCache {
	return &programCache{entries: map[string]any{}}
}

func (c *programCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *programCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}
