package recipes

import (
	"fmt"

	attrs "github.com/goliatone/go-attrs"
)

// vertexColorCalculator derives normalized per-vertex color positions when
// the color attribute carries numeric data: each value is mapped into [0, 1]
// relative to colorrange and stored under calculated_colors for the backend's
// colormap sampler. Non-numeric colors leave nothing to derive.
type vertexColorCalculator struct{}

func (vertexColorCalculator) CalculateAttributes(inst *attrs.Instance) error {
	raw, ok := inst.GetRaw("color")
	if !ok || !raw.IsConcrete() {
		return nil
	}
	data, _ := raw.Any()
	if !isNumericColorData(data) {
		return nil
	}

	ranged, err := inst.Get("colorrange")
	if err != nil {
		return err
	}
	window, ok := ranged.(ColorRange)
	if !ok {
		return fmt.Errorf("colorrange resolved to %T, expected ColorRange", ranged)
	}

	values, err := flattenNumeric(data)
	if err != nil {
		return err
	}
	span := window[1] - window[0]
	normalized := make([]float64, len(values))
	for i, v := range values {
		if span == 0 {
			normalized[i] = 0.5
			continue
		}
		n := (v - window[0]) / span
		if n < 0 {
			n = 0
		}
		if n > 1 {
			n = 1
		}
		normalized[i] = n
	}
	inst.SetCalculated("calculated_colors", normalized)
	return nil
}

func flattenNumeric(data any) ([]float64, error) {
	switch typed := data.(type) {
	case []float64:
		return append([]float64(nil), typed...), nil
	case []float32:
		out := make([]float64, len(typed))
		for i, v := range typed {
			out[i] = float64(v)
		}
		return out, nil
	case []int:
		out := make([]float64, len(typed))
		for i, v := range typed {
			out[i] = float64(v)
		}
		return out, nil
	case [][]float64:
		var out []float64
		for _, row := range typed {
			out = append(out, row...)
		}
		return out, nil
	case [][]float32:
		var out []float64
		for _, row := range typed {
			for _, v := range row {
				out = append(out, float64(v))
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("color input %T is not numeric", data)
	}
}
