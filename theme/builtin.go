package theme

import (
	"image/color"

	attrs "github.com/goliatone/go-attrs"
)

// Default returns the root theme every scene chain ultimately falls back to.
// Values mirror the library's stock look: viridis colormap, dark text on a
// white canvas.
func Default() *Theme {
	return New("default",
		WithAttr("backgroundcolor", attrs.Concrete(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})),
		WithAttr("textcolor", attrs.Concrete(color.NRGBA{A: 0xff})),
		WithAttr("colormap", attrs.Concrete("viridis")),
		WithAttr("linewidth", attrs.Concrete(1.5)),
		WithAttr("markersize", attrs.Concrete(9.0)),
		WithAttr("fontsize", attrs.Concrete(14.0)),
		WithAttr("font", attrs.Concrete("TeX Gyre Heros")),
		WithAttr("palette", attrs.Concrete([]color.NRGBA{
			{R: 0x00, G: 0x2b, B: 0x36, A: 0xff},
			{R: 0xdc, G: 0x32, B: 0x2f, A: 0xff},
			{R: 0x26, G: 0x8b, B: 0xd2, A: 0xff},
			{R: 0x85, G: 0x99, B: 0x00, A: 0xff},
			{R: 0xd3, G: 0x36, B: 0x82, A: 0xff},
			{R: 0xb5, G: 0x89, B: 0x00, A: 0xff},
		})),
	)
}

// Dark returns a dark variant parented on Default, so attributes it does not
// re-declare keep their stock values.
func Dark() *Theme {
	return New("dark",
		WithParent(Default()),
		WithAttr("backgroundcolor", attrs.Concrete(color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff})),
		WithAttr("textcolor", attrs.Concrete(color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff})),
		WithAttr("colormap", attrs.Concrete("plasma")),
	)
}

// Light returns a low-contrast light variant parented on Default.
func Light() *Theme {
	return New("light",
		WithParent(Default()),
		WithAttr("backgroundcolor", attrs.Concrete(color.NRGBA{R: 0xfa, G: 0xfa, B: 0xf8, A: 0xff})),
		WithAttr("textcolor", attrs.Concrete(color.NRGBA{R: 0x3c, G: 0x3c, B: 0x3c, A: 0xff})),
	)
}
