package config

// Merge deep-merges override on top of base and returns a fresh map; neither
// input is mutated. For a key present in both, the override value wins. When
// both values are maps the merge recurses; on any type conflict (scalar vs.
// map in either direction) the override value replaces the base value
// outright.
func Merge(base, override map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		merged[k] = deepCopyValue(v)
	}
	for k, ov := range override {
		bv, both := merged[k]
		bm, baseIsMap := bv.(map[string]any)
		om, overrideIsMap := ov.(map[string]any)
		if both && baseIsMap && overrideIsMap {
			merged[k] = Merge(bm, om)
			continue
		}
		merged[k] = deepCopyValue(ov)
	}
	return merged
}

// deepCopyValue copies nested maps and slices so the merged result never
// aliases caller-owned structure.
func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = deepCopyValue(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = deepCopyValue(elem)
		}
		return out
	default:
		return v
	}
}
