package attrs

import "fmt"

// Deprecation maps a removed attribute name to its migration rule. Rules with
// Error set reject construction outright; informational rules rewrite the
// override to the new name. Either way the old name never enters a live
// table.
type Deprecation struct {
	Old       string
	New       string // empty when there is no replacement
	Message   string
	RemovedIn string
	Error     bool
}

// applyDeprecations screens user overrides against the type's deprecation
// list before any key reaches the table. It returns the rewritten override
// set and the old names that were rewritten.
func applyDeprecations(typeName string, rules map[string]Deprecation, overrides map[string]any) (map[string]any, []string, error) {
	if len(rules) == 0 || len(overrides) == 0 {
		return overrides, nil, nil
	}

	out := make(map[string]any, len(overrides))
	var rewritten []string
	for key, value := range overrides {
		rule, deprecated := rules[key]
		if !deprecated {
			out[key] = value
			continue
		}
		if rule.Error {
			return nil, nil, &DeprecatedAttributeError{
				Type:        typeName,
				Attr:        key,
				Replacement: rule.New,
				Message:     rule.Message,
				RemovedIn:   rule.RemovedIn,
			}
		}
		if _, both := overrides[rule.New]; both {
			return nil, nil, fmt.Errorf("attrs: %s: both %q and its replacement %q supplied", typeName, key, rule.New)
		}
		out[rule.New] = value
		rewritten = append(rewritten, key)
	}
	return out, rewritten, nil
}
