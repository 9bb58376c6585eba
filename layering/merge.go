package layering

// MergeDocuments composes raw theme documents ordered from strongest to
// weakest, returning a new map that keeps explicit settings from stronger
// documents while filling missing keys from weaker ones. Nested maps merge
// recursively; any other value (including slices, which represent colormap
// stops or dash patterns) is taken wholesale from the strongest document that
// defines it.
func MergeDocuments(documents ...map[string]any) map[string]any {
	if len(documents) == 0 {
		return nil
	}

	merged := Clone(documents[len(documents)-1])
	for i := len(documents) - 2; i >= 0; i-- {
		merged = mergeMaps(documents[i], merged)
	}
	return merged
}

func mergeMaps(strong, weak map[string]any) map[string]any {
	if strong == nil {
		return Clone(weak)
	}
	out := make(map[string]any, len(strong)+len(weak))
	for key, value := range weak {
		out[key] = Clone(value)
	}
	for key, value := range strong {
		strongMap, strongIsMap := value.(map[string]any)
		weakMap, weakIsMap := out[key].(map[string]any)
		if strongIsMap && weakIsMap {
			out[key] = mergeMaps(strongMap, weakMap)
			continue
		}
		out[key] = Clone(value)
	}
	return out
}
