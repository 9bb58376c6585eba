// Package hydrate converts raw theme documents (decoded YAML or JSON maps)
// into typed attribute tables.
package hydrate

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	attrs "github.com/goliatone/go-attrs"
)

// Context carries identifiers tied to the document being decoded.
type Context struct {
	Theme string
}

// PreHook lets callers mutate or normalise the raw document before decoding.
type PreHook func(Context, map[string]any) (map[string]any, error)

// PostHook lets callers adjust or validate the hydrated table after decoding.
type PostHook func(Context, *attrs.Table) error

// Option configures a Decoder instance.
type Option func(*Decoder)

// Decoder converts raw documents into attribute tables.
type Decoder struct {
	preHooks  []PreHook
	postHooks []PostHook
}

// WithPreHook applies hook prior to decoding.
func WithPreHook(hook PreHook) Option {
	return func(d *Decoder) {
		d.preHooks = append(d.preHooks, hook)
	}
}

// WithPostHook applies hook after decoding completes.
func WithPostHook(hook PostHook) Option {
	return func(d *Decoder) {
		d.postHooks = append(d.postHooks, hook)
	}
}

// New constructs a Decoder.
func New(opts ...Option) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode hydrates raw into a table. Keys are processed in sorted order so
// diagnostics and iteration stay deterministic.
func (d *Decoder) Decode(ctx Context, raw map[string]any) (*attrs.Table, error) {
	var err error
	for _, hook := range d.preHooks {
		if hook == nil {
			continue
		}
		raw, err = hook(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("hydrate: pre hook: %w", err)
		}
	}

	table := attrs.NewTable()
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		cell, err := DecodeValue(raw[key])
		if err != nil {
			return nil, fmt.Errorf("hydrate: theme %q attribute %q: %w", ctx.Theme, key, err)
		}
		table.Set(key, cell)
	}

	for _, hook := range d.postHooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx, table); err != nil {
			return nil, fmt.Errorf("hydrate: post hook: %w", err)
		}
	}
	return table, nil
}

// DecodeValue maps one raw document value to an attribute cell:
//
//   - "automatic" becomes the deferred sentinel
//   - "inherit(name)" or {inherit: name} becomes an inheritance reference
//   - "#rgb"/"#rrggbb"/"#rrggbbaa" and {color: name} become color.NRGBA
//   - lists decode element-wise; anything else is boxed as-is
func DecodeValue(raw any) (attrs.Value, error) {
	switch typed := raw.(type) {
	case string:
		if typed == "automatic" {
			return attrs.Automatic(), nil
		}
		if target, ok := inheritTarget(typed); ok {
			return attrs.Inherit(target), nil
		}
		if strings.HasPrefix(typed, "#") {
			c, err := ParseColor(typed)
			if err != nil {
				return attrs.Value{}, err
			}
			return attrs.Concrete(c), nil
		}
		return attrs.Concrete(typed), nil
	case map[string]any:
		if target, ok := typed["inherit"].(string); ok && len(typed) == 1 {
			return attrs.Inherit(target), nil
		}
		if name, ok := typed["color"].(string); ok && len(typed) == 1 {
			c, err := ParseColor(name)
			if err != nil {
				return attrs.Value{}, err
			}
			return attrs.Concrete(c), nil
		}
		return attrs.Value{}, fmt.Errorf("unsupported mapping value %v", typed)
	case []any:
		out := make([]any, len(typed))
		allColors := len(typed) > 0
		colors := make([]color.NRGBA, 0, len(typed))
		for i, elem := range typed {
			cell, err := DecodeValue(elem)
			if err != nil {
				return attrs.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			v, ok := cell.Any()
			if !ok {
				return attrs.Value{}, fmt.Errorf("element %d: sentinel values are not allowed inside lists", i)
			}
			out[i] = v
			if c, isColor := v.(color.NRGBA); isColor {
				colors = append(colors, c)
			} else {
				allColors = false
			}
		}
		if allColors {
			return attrs.Concrete(colors), nil
		}
		return attrs.Concrete(out), nil
	default:
		return attrs.Concrete(typed), nil
	}
}

func inheritTarget(s string) (string, bool) {
	if !strings.HasPrefix(s, "inherit(") || !strings.HasSuffix(s, ")") {
		return "", false
	}
	target := strings.TrimSpace(s[len("inherit(") : len(s)-1])
	if target == "" {
		return "", false
	}
	return target, true
}

// ParseColor accepts SVG 1.1 color names and #-prefixed hex notation.
func ParseColor(s string) (color.NRGBA, error) {
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if hex == s {
		return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
	}
	parse := func(part string) (uint8, error) {
		if len(part) == 1 {
			part += part
		}
		v, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return uint8(v), nil
	}
	var parts []string
	switch len(hex) {
	case 3:
		parts = []string{hex[0:1], hex[1:2], hex[2:3], ""}
	case 6:
		parts = []string{hex[0:2], hex[2:4], hex[4:6], ""}
	case 8:
		parts = []string{hex[0:2], hex[2:4], hex[4:6], hex[6:8]}
	default:
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	var c color.NRGBA
	var err error
	if c.R, err = parse(parts[0]); err != nil {
		return color.NRGBA{}, err
	}
	if c.G, err = parse(parts[1]); err != nil {
		return color.NRGBA{}, err
	}
	if c.B, err = parse(parts[2]); err != nil {
		return color.NRGBA{}, err
	}
	c.A = 0xff
	if parts[3] != "" {
		if c.A, err = parse(parts[3]); err != nil {
			return color.NRGBA{}, err
		}
	}
	return c, nil
}
