// Package recipes declares the attribute schemas for the library's plot
// primitives and registers them against the resolution engine.
package recipes

import (
	"fmt"
	"image/color"
	"sync"

	attrs "github.com/goliatone/go-attrs"
)

// RegisterOption configures schema registration.
type RegisterOption func(*registerConfig)

type registerConfig struct {
	evaluator attrs.Evaluator
}

// WithRuleEvaluator overrides the expression engine used by expression-backed
// resolution rules. The default is the expr engine with a shared program
// cache.
func WithRuleEvaluator(evaluator attrs.Evaluator) RegisterOption {
	return func(cfg *registerConfig) {
		if evaluator != nil {
			cfg.evaluator = evaluator
		}
	}
}

// Register declares every primitive type on r.
func Register(r *attrs.Registry, opts ...RegisterOption) error {
	cfg := registerConfig{
		evaluator: attrs.NewExprEvaluator(attrs.ExprWithProgramCache(newProgramCache())),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	generic := GenericAttributes()
	colormap := ColormapAttributes()
	shading := ShadingAttributes()

	specs := []attrs.SchemaSpec{
		heatmapSpec(generic, colormap),
		imageSpec(generic, colormap),
		surfaceSpec(generic, colormap, shading),
		volumeSpec(generic, colormap, shading),
		linesSpec("lines", generic, colormap),
		linesSpec("linesegments", generic, colormap),
		scatterSpec(generic, colormap),
		meshSpec(generic, colormap, shading),
		textSpec(generic),
		voxelsSpec(generic, colormap, shading),
		polySpec(generic, colormap),
		arrowsSpec(cfg.evaluator, generic, colormap, shading),
	}
	for _, spec := range specs {
		if err := r.Register(spec); err != nil {
			return err
		}
	}
	return nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *attrs.Registry
)

// Default returns the shared registry with every primitive registered. The
// schemas are validated while the registry is built, so a declaration bug
// panics here rather than surfacing at draw time.
func Default() *attrs.Registry {
	defaultOnce.Do(func() {
		r := attrs.NewRegistry()
		if err := Register(r); err != nil {
			panic(err)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

func sliceArg(name, typeLabel string) attrs.Arg {
	return attrs.Arg{
		Name: name,
		Type: typeLabel,
		Validate: func(v any) error {
			if v == nil {
				return fmt.Errorf("must not be nil")
			}
			return nil
		},
	}
}

func heatmapSpec(generic, colormap attrs.Group) attrs.SchemaSpec {
	return attrs.SchemaSpec{
		Type:   "heatmap",
		Args:   []attrs.Arg{sliceArg("x", "[]float64"), sliceArg("y", "[]float64"), sliceArg("values", "[][]float64")},
		Mixins: []attrs.Group{generic, colormap},
		Attributes: []attrs.Decl{
			{Name: "interpolate", Default: attrs.Concrete(false), Doc: "Interpolates between cell values instead of drawing flat cells."},
		},
		Rules: []attrs.RuleSpec{
			modelRule(),
			colorRangeFromInput(2),
		},
		Deprecated: []attrs.Deprecation{
			{Old: "levels", Error: true, RemovedIn: "v0.19", Message: "contour levels moved to the contour primitive"},
		},
	}
}

func imageSpec(generic, colormap attrs.Group) attrs.SchemaSpec {
	return attrs.SchemaSpec{
		Type:   "image",
		Args:   []attrs.Arg{sliceArg("x", "[2]float64"), sliceArg("y", "[2]float64"), sliceArg("image", "[][]float64")},
		Mixins: []attrs.Group{generic, colormap},
		Attributes: []attrs.Decl{
			// Images map scalar data onto a grayscale ramp, not the themed
			// colormap, and skip anti-aliasing on their hard pixel edges.
			{Name: "colormap", Default: attrs.Concrete([]color.NRGBA{{A: 0xff}, {R: 0xff, G: 0xff, B: 0xff, A: 0xff}}), Override: true,
				Doc: "Colormap for scalar image data; defaults to black-to-white."},
			{Name: "fxaa", Default: attrs.Concrete(false), Override: true},
			{Name: "interpolate", Default: attrs.Concrete(true)},
			{Name: "uv_transform", Default: attrs.Automatic(), Doc: "Texture-coordinate transform; resolves to the identity."},
		},
		Rules: []attrs.RuleSpec{
			modelRule(),
			uvTransformRule(),
			colorRangeFromInput(2),
		},
		Deprecated: []attrs.Deprecation{
			{Old: "fxaa_enabled", New: "fxaa", Error: false},
		},
	}
}

func surfaceSpec(generic, colormap, shading attrs.Group) attrs.SchemaSpec {
	return attrs.SchemaSpec{
		Type:   "surface",
		Args:   []attrs.Arg{sliceArg("x", "[]float64"), sliceArg("y", "[]float64"), sliceArg("z", "[][]float64")},
		Mixins: []attrs.Group{generic, colormap, shading},
		Attributes: []attrs.Decl{
			{Name: "invert_normals", Default: attrs.Concrete(false)},
			{Name: "uv_transform", Default: attrs.Automatic()},
		},
		Rules: []attrs.RuleSpec{
			modelRule(),
			uvTransformRule(),
			colorRangeFromInput(2),
		},
	}
}

func volumeSpec(generic, colormap, shading attrs.Group) attrs.SchemaSpec {
	return attrs.SchemaSpec{
		Type:   "volume",
		Args:   []attrs.Arg{sliceArg("volume", "[][][]float64")},
		Mixins: []attrs.Group{generic, colormap, shading},
		Attributes: []attrs.Decl{
			{Name: "algorithm", Default: attrs.Concrete("mip"), Doc: "Projection algorithm: mip, absorption, or iso."},
			{Name: "absorption", Default: attrs.Concrete(1.0)},
			{Name: "isovalue", Default: attrs.Concrete(0.5)},
			{Name: "isorange", Default: attrs.Concrete(0.05)},
			{Name: "interpolate", Default: attrs.Concrete(true)},
			{Name: "enable_depth", Default: attrs.Concrete(true)},
		},
		Rules: []attrs.RuleSpec{
			modelRule(),
			volumeColorRange(),
		},
	}
}

func linesSpec(typeName string, generic, colormap attrs.Group) attrs.SchemaSpec {
	return attrs.SchemaSpec{
		Type:   typeName,
		Args:   []attrs.Arg{sliceArg("positions", "[][2]float64")},
		Mixins: []attrs.Group{generic, colormap},
		Attributes: []attrs.Decl{
			paletteDecl(),
			{Name: "color", Default: attrs.Automatic(), Doc: "Line color; resolves to the first palette color."},
			{Name: "linewidth", Default: attrs.Inherit("linewidth"), Fallback: attrs.Concrete(1.5)},
			{Name: "linestyle", Default: attrs.Concrete("solid")},
			{Name: "linecap", Default: attrs.Concrete("butt")},
			{Name: "joinstyle", Default: attrs.Concrete("miter")},
		},
		Rules: []attrs.RuleSpec{
			modelRule(),
			colorRangeFromAttr("color"),
			paletteColorRule("color"),
		},
	}
}

func scatterSpec(generic, colormap attrs.Group) attrs.SchemaSpec {
	return attrs.SchemaSpec{
		Type:   "scatter",
		Args:   []attrs.Arg{sliceArg("positions", "[][2]float64")},
		Mixins: []attrs.Group{generic, colormap},
		Attributes: []attrs.Decl{
			paletteDecl(),
			{Name: "color", Default: attrs.Automatic(), Doc: "Marker color; resolves to the first palette color."},
			{Name: "marker", Default: attrs.Concrete("circle")},
			{Name: "markersize", Default: attrs.Inherit("markersize"), Fallback: attrs.Concrete(9.0)},
			{Name: "strokecolor", Default: attrs.Concrete(color.NRGBA{A: 0xff})},
			{Name: "strokewidth", Default: attrs.Concrete(0.0)},
			{Name: "glowcolor", Default: attrs.Concrete(color.NRGBA{})},
			{Name: "glowwidth", Default: attrs.Concrete(0.0)},
			{Name: "rotation", Default: attrs.Concrete(0.0)},
			{Name: "transform_marker", Default: attrs.Concrete(false)},
		},
		Rules: []attrs.RuleSpec{
			modelRule(),
			colorRangeFromAttr("color"),
			paletteColorRule("color"),
		},
		Deprecated: []attrs.Deprecation{
			{Old: "rotations", New: "rotation", Error: false},
		},
		Calculate: vertexColorCalculator{},
	}
}

func meshSpec(generic, colormap, shading attrs.Group) attrs.SchemaSpec {
	return attrs.SchemaSpec{
		Type:   "mesh",
		Args:   []attrs.Arg{sliceArg("mesh", "geometry")},
		Mixins: []attrs.Group{generic, colormap, shading},
		Attributes: []attrs.Decl{
			paletteDecl(),
			{Name: "color", Default: attrs.Automatic(), Doc: "Mesh color; resolves to the first palette color."},
			{Name: "interpolate_in_fragment_shader", Default: attrs.Concrete(true)},
			{Name: "uv_transform", Default: attrs.Automatic()},
		},
		Rules: []attrs.RuleSpec{
			modelRule(),
			uvTransformRule(),
			colorRangeFromAttr("color"),
			paletteColorRule("color"),
		},
		Calculate: vertexColorCalculator{},
	}
}

func textSpec(generic attrs.Group) attrs.SchemaSpec {
	return attrs.SchemaSpec{
		Type:   "text",
		Args:   []attrs.Arg{sliceArg("text", "string")},
		Mixins: []attrs.Group{generic},
		Attributes: []attrs.Decl{
			{Name: "color", Default: attrs.Inherit("textcolor"), Fallback: attrs.Concrete(color.NRGBA{A: 0xff})},
			{Name: "font", Default: attrs.Inherit("font"), Fallback: attrs.Concrete("TeX Gyre Heros")},
			{Name: "fontsize", Default: attrs.Inherit("fontsize"), Fallback: attrs.Concrete(14.0)},
			{Name: "align", Default: attrs.Concrete([2]string{"left", "baseline"})},
			{Name: "justification", Default: attrs.Automatic(), Doc: "Horizontal justification; resolves from the first align component."},
			{Name: "rotation", Default: attrs.Concrete(0.0)},
			{Name: "strokecolor", Default: attrs.Concrete(color.NRGBA{})},
			{Name: "strokewidth", Default: attrs.Concrete(0.0)},
			{Name: "glowcolor", Default: attrs.Concrete(color.NRGBA{})},
			{Name: "glowwidth", Default: attrs.Concrete(0.0)},
			{Name: "offset", Default: attrs.Concrete([2]float64{0, 0})},
			{Name: "word_wrap_width", Default: attrs.Concrete(-1.0)},
		},
		Rules: []attrs.RuleSpec{
			modelRule(),
			justificationRule(),
		},
		Deprecated: []attrs.Deprecation{
			{Old: "textsize", New: "fontsize", Error: true, RemovedIn: "v0.20", Message: "textsize was renamed to fontsize"},
			{Old: "position", New: "offset", Error: false},
		},
	}
}

func voxelsSpec(generic, colormap, shading attrs.Group) attrs.SchemaSpec {
	return attrs.SchemaSpec{
		Type:   "voxels",
		Args:   []attrs.Arg{sliceArg("chunk", "[][][]float64")},
		Mixins: []attrs.Group{generic, colormap, shading},
		Attributes: []attrs.Decl{
			{Name: "gap", Default: attrs.Concrete(0.0), Doc: "Gap between voxels as a fraction of voxel size."},
			{Name: "depthsorting", Default: attrs.Concrete(false)},
		},
		Rules: []attrs.RuleSpec{
			modelRule(),
			volumeColorRange(),
		},
	}
}

func polySpec(generic, colormap attrs.Group) attrs.SchemaSpec {
	return attrs.SchemaSpec{
		Type:   "poly",
		Args:   []attrs.Arg{sliceArg("points", "[][2]float64")},
		Mixins: []attrs.Group{generic, colormap},
		Attributes: []attrs.Decl{
			paletteDecl(),
			{Name: "color", Default: attrs.Automatic(), Doc: "Fill color; resolves to the first palette color."},
			{Name: "strokecolor", Default: attrs.Concrete(color.NRGBA{A: 0xff})},
			{Name: "strokewidth", Default: attrs.Concrete(1.0)},
			{Name: "linestyle", Default: attrs.Concrete("solid")},
		},
		Rules: []attrs.RuleSpec{
			modelRule(),
			colorRangeFromAttr("color"),
			paletteColorRule("color"),
		},
	}
}

func arrowsSpec(evaluator attrs.Evaluator, generic, colormap, shading attrs.Group) attrs.SchemaSpec {
	return attrs.SchemaSpec{
		Type:   "arrows",
		Args:   []attrs.Arg{sliceArg("points", "[][2]float64"), sliceArg("directions", "[][2]float64")},
		Mixins: []attrs.Group{generic, colormap, shading},
		Attributes: []attrs.Decl{
			paletteDecl(),
			{Name: "color", Default: attrs.Automatic(), Doc: "Arrow color; resolves to the first palette color."},
			{Name: "linewidth", Default: attrs.Inherit("linewidth"), Fallback: attrs.Concrete(1.5)},
			{Name: "arrowhead", Default: attrs.Concrete("triangle")},
			{Name: "arrowtail", Default: attrs.Concrete("none")},
			{Name: "arrowsize", Default: attrs.Automatic(), Doc: "Head size; resolves proportional to linewidth."},
			{Name: "lengthscale", Default: attrs.Concrete(1.0)},
			{Name: "normalize", Default: attrs.Concrete(false)},
			{Name: "align", Default: attrs.Concrete("origin")},
			{Name: "quality", Default: attrs.Concrete(32)},
		},
		Rules: []attrs.RuleSpec{
			modelRule(),
			colorRangeFromAttr("color"),
			paletteColorRule("color"),
			{
				Attr: "arrowsize",
				Deps: []string{"linewidth"},
				Rule: attrs.ExprRule(evaluator, "linewidth * 3.0"),
			},
		},
	}
}

func justificationRule() attrs.RuleSpec {
	return attrs.RuleSpec{
		Attr: "justification",
		Deps: []string{"align"},
		Rule: attrs.RuleFunc(func(rc *attrs.ResolveContext) (any, error) {
			v, err := rc.Get("align")
			if err != nil {
				return nil, err
			}
			align, ok := v.([2]string)
			if !ok {
				return "left", nil
			}
			return align[0], nil
		}),
	}
}

func volumeColorRange() attrs.RuleSpec {
	return attrs.RuleSpec{
		Attr: "colorrange",
		Rule: attrs.RuleFunc(func(rc *attrs.ResolveContext) (any, error) {
			data, err := rc.Arg(0)
			if err != nil {
				return nil, err
			}
			return volumeExtent(data)
		}),
	}
}
