package recipes

import (
	"image/color"

	attrs "github.com/goliatone/go-attrs"
)

// GenericAttributes is the transform/visibility group every primitive pulls
// in first.
func GenericAttributes() attrs.Group {
	return attrs.MustGroup("generic",
		attrs.Decl{Name: "visible", Default: attrs.Concrete(true), Doc: "Controls whether the primitive is rendered at all."},
		attrs.Decl{Name: "overdraw", Default: attrs.Concrete(false), Doc: "Ignores depth testing when drawing."},
		attrs.Decl{Name: "transparency", Default: attrs.Concrete(false), Doc: "Enables order-independent transparency."},
		attrs.Decl{Name: "fxaa", Default: attrs.Concrete(true), Doc: "Applies fast approximate anti-aliasing."},
		attrs.Decl{Name: "ssao", Default: attrs.Concrete(false), Doc: "Enables screen-space ambient occlusion."},
		attrs.Decl{Name: "inspectable", Default: attrs.Concrete(true), Doc: "Makes the primitive reachable by the data inspector."},
		attrs.Decl{Name: "depth_shift", Default: attrs.Concrete(0.0), Doc: "Fixed z-shift applied after projection."},
		attrs.Decl{Name: "space", Default: attrs.Concrete("data"), Doc: "Coordinate space the input positions live in."},
		attrs.Decl{Name: "model", Default: attrs.Automatic(), Doc: "Model transform; resolves to the identity when unset."},
	)
}

// ColormapAttributes is the scalar-color mapping group. The colormap itself
// defers to the scene theme; the color window defers to the data.
func ColormapAttributes() attrs.Group {
	return attrs.MustGroup("colormap",
		attrs.Decl{
			Name:     "colormap",
			Default:  attrs.Inherit("colormap"),
			Fallback: attrs.Concrete("viridis"),
			Doc:      "Colormap used for numeric color input; inherited from the scene theme.",
		},
		attrs.Decl{Name: "colorscale", Default: attrs.Concrete("identity"), Doc: "Scale applied to color input before mapping."},
		attrs.Decl{Name: "colorrange", Default: attrs.Automatic(), Doc: "Value window mapped onto the colormap; resolves to the input extrema."},
		attrs.Decl{Name: "lowclip", Default: attrs.Concrete(nil), Doc: "Color for values below colorrange; nil uses the colormap's first color."},
		attrs.Decl{Name: "highclip", Default: attrs.Concrete(nil), Doc: "Color for values above colorrange; nil uses the colormap's last color."},
		attrs.Decl{Name: "nan_color", Default: attrs.Concrete(color.NRGBA{}), Doc: "Color substituted for NaN input values."},
	)
}

// ShadingAttributes is the lighting group shared by surface-like primitives.
func ShadingAttributes() attrs.Group {
	return attrs.MustGroup("shading",
		attrs.Decl{Name: "shading", Default: attrs.Concrete(true), Doc: "Enables lighting calculations."},
		attrs.Decl{Name: "diffuse", Default: attrs.Concrete(1.0)},
		attrs.Decl{Name: "specular", Default: attrs.Concrete(0.2)},
		attrs.Decl{Name: "shininess", Default: attrs.Concrete(32.0)},
		attrs.Decl{Name: "backlight", Default: attrs.Concrete(0.0)},
	)
}
