package recipes

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
)

// Mat4 is a column-major 4x4 transform. The model attribute resolves to the
// identity when no transform was supplied.
type Mat4 [4][4]float64

// IdentityMat4 returns the identity transform.
func IdentityMat4() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// UVTransform is a 2x3 affine texture-coordinate transform.
type UVTransform [2][3]float64

// IdentityUV returns the identity texture transform.
func IdentityUV() UVTransform {
	return UVTransform{
		{1, 0, 0},
		{0, 1, 0},
	}
}

// ColorRange is the [min, max] window numeric color input maps onto.
type ColorRange [2]float64

// colorExtent computes the finite extrema of numeric color data. NaN entries
// are skipped; data with no finite entry is an error, surfaced to the caller
// as a resolution failure rather than a silently substituted default.
func colorExtent(data any) (ColorRange, error) {
	lo := math.Inf(1)
	hi := math.Inf(-1)

	accept := func(v float64) {
		if math.IsNaN(v) {
			return
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	accept32 := func(v float32) {
		if math32.IsNaN(v) {
			return
		}
		accept(float64(v))
	}

	switch typed := data.(type) {
	case []float64:
		for _, v := range typed {
			accept(v)
		}
	case []float32:
		for _, v := range typed {
			accept32(v)
		}
	case []int:
		for _, v := range typed {
			accept(float64(v))
		}
	case [][]float64:
		for _, row := range typed {
			for _, v := range row {
				accept(v)
			}
		}
	case [][]float32:
		for _, row := range typed {
			for _, v := range row {
				accept32(v)
			}
		}
	default:
		return ColorRange{}, fmt.Errorf("color input %T is not numeric", data)
	}

	if math.IsInf(lo, 1) {
		return ColorRange{}, fmt.Errorf("color input has no finite values")
	}
	return ColorRange{lo, hi}, nil
}

// volumeExtent computes the finite extrema of a 3D scalar chunk.
func volumeExtent(data any) (ColorRange, error) {
	switch typed := data.(type) {
	case [][][]float64:
		lo := math.Inf(1)
		hi := math.Inf(-1)
		for _, plane := range typed {
			for _, row := range plane {
				for _, v := range row {
					if math.IsNaN(v) {
						continue
					}
					lo = math.Min(lo, v)
					hi = math.Max(hi, v)
				}
			}
		}
		if math.IsInf(lo, 1) {
			return ColorRange{}, fmt.Errorf("volume has no finite values")
		}
		return ColorRange{lo, hi}, nil
	case [][][]float32:
		lo := math32.Inf(1)
		hi := math32.Inf(-1)
		for _, plane := range typed {
			for _, row := range plane {
				for _, v := range row {
					if math32.IsNaN(v) {
						continue
					}
					lo = math32.Min(lo, v)
					hi = math32.Max(hi, v)
				}
			}
		}
		if math32.IsInf(lo, 1) {
			return ColorRange{}, fmt.Errorf("volume has no finite values")
		}
		return ColorRange{float64(lo), float64(hi)}, nil
	default:
		return ColorRange{}, fmt.Errorf("volume input %T is not a 3D numeric chunk", data)
	}
}

// isNumericColorData reports whether data is something colorExtent accepts.
func isNumericColorData(data any) bool {
	switch data.(type) {
	case []float64, []float32, []int, [][]float64, [][]float32:
		return true
	default:
		return false
	}
}
