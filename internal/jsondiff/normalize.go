package jsondiff

import "strings"

// normalizeValue builds a comparison copy of a parsed JSON value. With
// trimStrings set, string leaves are trimmed of surrounding whitespace.
// The input value is never mutated.
func normalizeValue(value interface{}, trimStrings bool) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		normalized := make(map[string]interface{}, len(v))
		for key, child := range v {
			normalized[key] = normalizeValue(child, trimStrings)
		}
		return normalized
	case []interface{}:
		normalized := make([]interface{}, len(v))
		for i, child := range v {
			normalized[i] = normalizeValue(child, trimStrings)
		}
		return normalized
	case string:
		if trimStrings {
			return strings.TrimSpace(v)
		}
		return v
	default:
		return v
	}
}
