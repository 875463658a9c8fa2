package csv

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aleister1102/datadiff/internal/models"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	// delimiterSampleLines bounds how many lines feed delimiter detection.
	delimiterSampleLines = 50
	// headerSampleRows bounds how many data rows feed header detection.
	headerSampleRows = 10
	// typeSampleValues bounds how many non-empty values feed type inference.
	typeSampleValues = 100
	// typeMatchThreshold is the sample fraction required for a non-strict type win.
	typeMatchThreshold = 0.9
)

var (
	integerPattern    = regexp.MustCompile(`^[+-]?\d+$`)
	floatPattern      = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	isoDatePattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([T ].*)?$`)
	headerNamePattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9]*([_\- ][A-Za-z0-9]+)*)$`)
)

// booleanLiterals are the values the boolean type predicate accepts.
var booleanLiterals = map[string]bool{
	"true": true, "false": true, "yes": true, "no": true,
	"t": true, "f": true, "y": true, "n": true, "on": true, "off": true,
	"0": true, "1": true,
}

// DelimiterScore pairs a delimiter candidate with its detection confidence.
type DelimiterScore struct {
	Delimiter  string
	Confidence float64
}

// Heuristics bundles the statistical helpers shared by the CSV parser,
// schema builder, and row matcher. Candidate tables are fixed at
// construction.
type Heuristics struct {
	delimiterCandidates []rune
	dmp                 *diffmatchpatch.DiffMatchPatch
}

// NewHeuristics creates a new heuristics helper
func NewHeuristics() *Heuristics {
	return &Heuristics{
		delimiterCandidates: []rune{',', '\t', '|', ';', ':'},
		dmp:                 diffmatchpatch.New(),
	}
}

// DetectDelimiter scores every delimiter candidate over a sample of lines and
// returns the candidates sorted descending by confidence.
func (h *Heuristics) DetectDelimiter(input string) []DelimiterScore {
	lines := sampleNonEmptyLines(input, delimiterSampleLines)

	scores := make([]DelimiterScore, 0, len(h.delimiterCandidates))
	for _, delim := range h.delimiterCandidates {
		counts := make([]float64, len(lines))
		for i, line := range lines {
			counts[i] = float64(countUnquoted(line, delim))
		}
		scores = append(scores, DelimiterScore{
			Delimiter:  string(delim),
			Confidence: h.scoreDelimiter(counts),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Confidence > scores[j].Confidence
	})
	return scores
}

// scoreDelimiter blends count consistency (70%) with raw frequency (30%).
func (h *Heuristics) scoreDelimiter(counts []float64) float64 {
	if len(counts) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, c := range counts {
		sum += c
	}
	mean := sum / float64(len(counts))
	if mean == 0 {
		return 0.0
	}

	variance := 0.0
	for _, c := range counts {
		d := c - mean
		variance += d * d
	}
	variance /= float64(len(counts))
	stdDev := math.Sqrt(variance)

	consistency := 1.0 / (1.0 + stdDev/mean)
	frequency := mean / (mean + 1.0) // saturates toward 1 as counts grow

	return consistency*0.7 + frequency*0.3
}

// DetectHeader decides whether the first row is a header by scoring it
// against a sample of the following rows.
func (h *Heuristics) DetectHeader(rows [][]string) bool {
	if len(rows) < 2 {
		return false
	}

	headerRow := rows[0]
	if len(headerRow) == 0 {
		return false
	}

	dataRows := rows[1:]
	if len(dataRows) > headerSampleRows {
		dataRows = dataRows[:headerSampleRows]
	}

	score := 0

	if allValuesUnique(headerRow) {
		score += 3
	}

	headerNumericRatio := numericRatio(headerRow)
	dataNumericRatio := numericRatioRows(dataRows)

	if headerNumericRatio == 0 && dataNumericRatio > 0 {
		score += 2
	}

	if allMatchHeaderPattern(headerRow) {
		score++
	}

	if dataNumericRatio-headerNumericRatio > 0.3 {
		score += 2
	}

	return score >= 3
}

// InferColumnType infers the type of a column from its non-empty samples.
// A strict 100% match wins first, then a 90% majority, both in the priority
// order integer > float > boolean > date.
func (h *Heuristics) InferColumnType(samples []string) models.ColumnType {
	if len(samples) > typeSampleValues {
		samples = samples[:typeSampleValues]
	}

	nonEmpty := make([]string, 0, len(samples))
	for _, s := range samples {
		if strings.TrimSpace(s) != "" {
			nonEmpty = append(nonEmpty, strings.TrimSpace(s))
		}
	}
	if len(nonEmpty) == 0 {
		return models.ColumnTypeNull
	}

	predicates := []struct {
		columnType models.ColumnType
		match      func(string) bool
	}{
		{models.ColumnTypeInteger, isIntegerValue},
		{models.ColumnTypeFloat, isFloatValue},
		{models.ColumnTypeBoolean, isBooleanValue},
		{models.ColumnTypeDate, isDateValue},
	}

	for _, p := range predicates {
		if matchRatio(nonEmpty, p.match) == 1.0 {
			return p.columnType
		}
	}

	for _, p := range predicates {
		if matchRatio(nonEmpty, p.match) >= typeMatchThreshold {
			return p.columnType
		}
	}

	if countDistinctValueTypes(nonEmpty) > 1 {
		return models.ColumnTypeMixed
	}
	return models.ColumnTypeString
}

// ComputeStringSimilarity returns a normalized Levenshtein similarity in
// [0,1] between two strings.
func (h *Heuristics) ComputeStringSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}

	diffs := h.dmp.DiffMain(a, b, false)
	distance := h.dmp.DiffLevenshtein(diffs)

	return 1.0 - float64(distance)/float64(maxLen)
}

// ComputeJaccardSimilarity returns set-intersection over set-union of the
// lower-cased trimmed cell values of two rows.
func (h *Heuristics) ComputeJaccardSimilarity(rowA, rowB []string) float64 {
	setA := rowValueSet(rowA)
	setB := rowValueSet(rowB)

	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}

	intersection := 0
	for v := range setA {
		if setB[v] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}

func rowValueSet(row []string) map[string]bool {
	set := make(map[string]bool, len(row))
	for _, cell := range row {
		set[strings.ToLower(strings.TrimSpace(cell))] = true
	}
	return set
}

func sampleNonEmptyLines(input string, limit int) []string {
	raw := strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n")
	lines := make([]string, 0, limit)
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) >= limit {
			break
		}
	}
	return lines
}

// countUnquoted counts delimiter occurrences outside double-quoted regions
func countUnquoted(line string, delimiter rune) int {
	count := 0
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == delimiter && !inQuotes:
			count++
		}
	}
	return count
}

func allValuesUnique(row []string) bool {
	seen := make(map[string]bool, len(row))
	for _, v := range row {
		key := strings.ToLower(strings.TrimSpace(v))
		if seen[key] {
			return false
		}
		seen[key] = true
	}
	return true
}

func allMatchHeaderPattern(row []string) bool {
	for _, v := range row {
		if !headerNamePattern.MatchString(strings.TrimSpace(v)) {
			return false
		}
	}
	return true
}

func numericRatio(row []string) float64 {
	if len(row) == 0 {
		return 0.0
	}
	numeric := 0
	for _, v := range row {
		trimmed := strings.TrimSpace(v)
		if isIntegerValue(trimmed) || isFloatValue(trimmed) {
			numeric++
		}
	}
	return float64(numeric) / float64(len(row))
}

func numericRatioRows(rows [][]string) float64 {
	if len(rows) == 0 {
		return 0.0
	}
	total := 0.0
	for _, row := range rows {
		total += numericRatio(row)
	}
	return total / float64(len(rows))
}

func matchRatio(values []string, match func(string) bool) float64 {
	matching := 0
	for _, v := range values {
		if match(v) {
			matching++
		}
	}
	return float64(matching) / float64(len(values))
}

func isIntegerValue(v string) bool {
	if !integerPattern.MatchString(v) {
		return false
	}
	_, err := strconv.ParseInt(v, 10, 64)
	return err == nil
}

func isFloatValue(v string) bool {
	if !floatPattern.MatchString(v) {
		return false
	}
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

func isBooleanValue(v string) bool {
	return booleanLiterals[strings.ToLower(v)]
}

func isDateValue(v string) bool {
	if !isoDatePattern.MatchString(v) {
		return false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

// countDistinctValueTypes counts how many single-value types the sample spans
func countDistinctValueTypes(values []string) int {
	types := make(map[models.ColumnType]bool)
	for _, v := range values {
		types[singleValueType(v)] = true
	}
	return len(types)
}

func singleValueType(v string) models.ColumnType {
	switch {
	case isIntegerValue(v):
		return models.ColumnTypeInteger
	case isFloatValue(v):
		return models.ColumnTypeFloat
	case isBooleanValue(v):
		return models.ColumnTypeBoolean
	case isDateValue(v):
		return models.ColumnTypeDate
	default:
		return models.ColumnTypeString
	}
}
