package jsondiff

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// previewKeyCount bounds how many keys a nested-object preview shows.
const previewKeyCount = 3

// formatPathValue renders one change as a "path: value" string
func formatPathValue(path string, value interface{}) string {
	return path + ": " + formatValue(value)
}

// formatValue renders scalars verbatim and truncates containers to previews
func formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return objectPreview(v)
	case []interface{}:
		return fmt.Sprintf("[%d items]", len(v))
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}

// objectPreview renders an object as "{k1, k2, k3...}"
func objectPreview(obj map[string]interface{}) string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	truncated := len(keys) > previewKeyCount
	if truncated {
		keys = keys[:previewKeyCount]
	}

	preview := "{" + strings.Join(keys, ", ")
	if truncated {
		preview += "..."
	}
	return preview + "}"
}

// indexPath renders an array element path
func indexPath(path string, index int) string {
	return fmt.Sprintf("%s[%d]", path, index)
}

// stringify renders a value as canonical JSON for opaque comparison
func stringify(value interface{}) string {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(encoded)
}

// unionKeys returns the sorted union of both objects' key sets
func unionKeys(left, right map[string]interface{}) []string {
	seen := make(map[string]bool, len(left)+len(right))
	keys := make([]string, 0, len(left)+len(right))
	for key := range left {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	for key := range right {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// isContainer reports whether the value is an object or array
func isContainer(value interface{}) bool {
	switch value.(type) {
	case map[string]interface{}, []interface{}:
		return true
	default:
		return false
	}
}

// valuesEqual compares two scalar JSON values
func valuesEqual(left, right interface{}) bool {
	return stringify(left) == stringify(right)
}
