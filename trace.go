package attrs

import (
	"encoding/json"
	"strings"
)

// Origin labels where a resolved value came from.
type Origin string

const (
	// OriginExplicit marks a value the caller set directly, at construction
	// or afterwards.
	OriginExplicit Origin = "explicit"
	// OriginDefault marks a concrete recipe default.
	OriginDefault Origin = "default"
	// OriginAutomatic marks a value computed by a resolution rule.
	OriginAutomatic Origin = "automatic"
	// OriginCalculated marks a derived attribute written by a
	// calculated-attribute hook.
	OriginCalculated Origin = "calculated"
	// OriginFallback marks the hard default used after the theme chain was
	// exhausted.
	OriginFallback Origin = "fallback"
	// originThemePrefix prefixes the contributing theme's name.
	originThemePrefix = "theme:"
)

func themeOrigin(layer string) Origin {
	return Origin(originThemePrefix + layer)
}

// Theme reports whether the origin is an ancestor theme, and its name.
func (o Origin) Theme() (string, bool) {
	if strings.HasPrefix(string(o), originThemePrefix) {
		return string(o[len(originThemePrefix):]), true
	}
	return "", false
}

// Trace captures provenance for one attribute lookup: the value, where it
// came from, and the theme-chain visits performed on the way.
type Trace struct {
	Type   string  `json:"type"`
	Attr   string  `json:"attr"`
	Origin Origin  `json:"origin"`
	Value  any     `json:"value,omitempty"`
	Layers []Visit `json:"layers,omitempty"`
}

// Visit details how one theme layer was consulted during an inheritance walk.
type Visit struct {
	Layer string `json:"layer"`
	Kind  string `json:"kind,omitempty"`
	Found bool   `json:"found"`
}

// ToJSON serialises the trace for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a payload previously generated via ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}

func visitsFromSteps(steps []inheritStep) []Visit {
	if len(steps) == 0 {
		return nil
	}
	out := make([]Visit, len(steps))
	for i, step := range steps {
		kind := ""
		if step.found {
			kind = step.kind.String()
		}
		out[i] = Visit{Layer: step.layer, Kind: kind, Found: step.found}
	}
	return out
}
