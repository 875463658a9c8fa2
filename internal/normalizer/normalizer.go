package normalizer

import (
	"strconv"
	"strings"
	"time"

	"github.com/aleister1102/datadiff/internal/models"
)

// truthyLiterals are the values boolean normalization collapses to "true".
// Anything else, including garbage, collapses to "false"; callers that need
// to distinguish invalid booleans must validate before normalizing.
var truthyLiterals = map[string]bool{
	"true": true, "1": true, "yes": true, "on": true, "t": true, "y": true,
}

// dateLayouts are tried in order when reducing date values.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// Options control value normalization.
type Options struct {
	IgnoreWhitespace bool
	IgnoreCase       bool
	Type             models.ColumnType
}

// ValueNormalizer neutralizes formatting differences between cell values so
// that "7.0" and "7.00" compare equal in a float column. Type-aware rules
// run first; whitespace and case folding run afterward.
type ValueNormalizer struct{}

// NewValueNormalizer creates a new value normalizer
func NewValueNormalizer() *ValueNormalizer {
	return &ValueNormalizer{}
}

// Normalize applies type-aware normalization followed by the requested
// whitespace/case folding. Values that fail to parse under their column type
// pass through unchanged.
func (vn *ValueNormalizer) Normalize(value string, options Options) string {
	normalized := vn.normalizeByType(value, options.Type)

	if options.IgnoreWhitespace {
		normalized = strings.TrimSpace(normalized)
	}
	if options.IgnoreCase {
		normalized = strings.ToLower(normalized)
	}

	return normalized
}

func (vn *ValueNormalizer) normalizeByType(value string, columnType models.ColumnType) string {
	switch columnType {
	case models.ColumnTypeInteger:
		return vn.normalizeInteger(value)
	case models.ColumnTypeFloat:
		return vn.normalizeFloat(value)
	case models.ColumnTypeBoolean:
		return vn.normalizeBoolean(value)
	case models.ColumnTypeDate:
		return vn.normalizeDate(value)
	case models.ColumnTypeNull:
		return ""
	default:
		return value
	}
}

// normalizeInteger reparses and restringifies integer values
func (vn *ValueNormalizer) normalizeInteger(value string) string {
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return value
	}
	return strconv.FormatInt(parsed, 10)
}

// normalizeFloat reparses float values and fixes them to 2 decimals
func (vn *ValueNormalizer) normalizeFloat(value string) string {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return value
	}
	return strconv.FormatFloat(parsed, 'f', 2, 64)
}

// normalizeBoolean collapses truthy literals to "true" and everything else
// to "false"
func (vn *ValueNormalizer) normalizeBoolean(value string) string {
	if truthyLiterals[strings.ToLower(strings.TrimSpace(value))] {
		return "true"
	}
	return "false"
}

// normalizeDate reduces parseable dates to YYYY-MM-DD
func (vn *ValueNormalizer) normalizeDate(value string) string {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format("2006-01-02")
		}
	}
	return value
}
