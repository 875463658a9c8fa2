package detector

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/aleister1102/datadiff/internal/models"
)

// identifierPattern matches values that look like column headers rather than data.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\- ]*$`)

// FormatDetector classifies raw text input as JSON, CSV, or plain text.
type FormatDetector struct {
	delimiterCandidates []rune
}

// NewFormatDetector creates a new format detector
func NewFormatDetector() *FormatDetector {
	return &FormatDetector{
		delimiterCandidates: []rune{',', '\t', '|', ';'},
	}
}

// DetectFormat inspects the input and returns the most likely format with a
// confidence score in [0,1].
func (fd *FormatDetector) DetectFormat(input string) models.FormatDetection {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return models.FormatDetection{
			Format:     models.FormatText,
			Confidence: 1.0,
			Reason:     "empty input",
		}
	}

	jsonScore := fd.scoreJSON(trimmed)
	csvScore := fd.scoreCSV(trimmed)

	switch {
	case jsonScore >= 0.9:
		return models.FormatDetection{
			Format:     models.FormatJSON,
			Confidence: jsonScore,
			Reason:     "input parses as JSON",
		}
	case csvScore >= 0.7:
		return models.FormatDetection{
			Format:     models.FormatCSV,
			Confidence: csvScore,
			Reason:     "consistent delimiter structure across lines",
		}
	case jsonScore >= 0.5 && csvScore < 0.5:
		return models.FormatDetection{
			Format:     models.FormatJSON,
			Confidence: jsonScore,
			Reason:     "JSON-like structure with parse errors",
		}
	default:
		confidence := math.Max(0.3, 1-math.Max(jsonScore, csvScore))
		return models.FormatDetection{
			Format:     models.FormatText,
			Confidence: confidence,
			Reason:     "no structured format detected",
		}
	}
}

// DetectFormatFromPair resolves the formats of two inputs into one decision.
func (fd *FormatDetector) DetectFormatFromPair(left, right string) models.FormatDetection {
	leftDet := fd.DetectFormat(left)
	rightDet := fd.DetectFormat(right)

	if leftDet.Format == rightDet.Format {
		confidence := math.Min(leftDet.Confidence, rightDet.Confidence)
		return models.FormatDetection{
			Format:     leftDet.Format,
			Confidence: confidence,
			Reason:     "both inputs agree on format",
		}
	}

	// One side confident, the other weak: the confident side wins.
	if leftDet.Confidence >= 0.9 && rightDet.Confidence < 0.5 {
		return leftDet
	}
	if rightDet.Confidence >= 0.9 && leftDet.Confidence < 0.5 {
		return rightDet
	}

	// Both confident but disagreeing: resolve by fixed priority json > csv > text.
	if leftDet.Confidence >= 0.7 && rightDet.Confidence >= 0.7 {
		format := higherPriorityFormat(leftDet.Format, rightDet.Format)
		return models.FormatDetection{
			Format:     format,
			Confidence: 0.6,
			Reason:     fmt.Sprintf("inputs disagree (%s vs %s), resolved by priority", leftDet.Format, rightDet.Format),
		}
	}

	if rightDet.Confidence > leftDet.Confidence {
		return rightDet
	}
	return leftDet
}

// formatPriority orders formats for disagreement resolution
func formatPriority(format models.InputFormat) int {
	switch format {
	case models.FormatJSON:
		return 2
	case models.FormatCSV:
		return 1
	default:
		return 0
	}
}

func higherPriorityFormat(a, b models.InputFormat) models.InputFormat {
	if formatPriority(a) >= formatPriority(b) {
		return a
	}
	return b
}

// scoreJSON scores how strongly the (already trimmed) input resembles JSON
func (fd *FormatDetector) scoreJSON(trimmed string) float64 {
	hasObjectShape := strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}")
	hasArrayShape := strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")
	if !hasObjectShape && !hasArrayShape {
		return 0.0
	}

	if json.Valid([]byte(trimmed)) {
		return 1.0
	}

	// Invalid but carrying JSON-style key markers still counts as a weak signal.
	if strings.Contains(trimmed, `":`) || strings.Contains(trimmed, `":{`) || strings.Contains(trimmed, `":[`) {
		return 0.6
	}

	return 0.2
}

// scoreCSV scores how strongly the input resembles delimiter-separated rows
func (fd *FormatDetector) scoreCSV(input string) float64 {
	lines := nonEmptyLines(input)
	if len(lines) == 0 {
		return 0.0
	}
	if len(lines) == 1 {
		return 0.1
	}

	bestConsistency := 0.0
	bestAvgCount := 0.0
	var bestDelimiter rune

	for _, delim := range fd.delimiterCandidates {
		counts := make([]float64, len(lines))
		for i, line := range lines {
			counts[i] = float64(countUnquoted(line, delim))
		}

		consistency, avg := consistencyScore(counts)
		if consistency > bestConsistency || (consistency == bestConsistency && avg > bestAvgCount) {
			bestConsistency = consistency
			bestAvgCount = avg
			bestDelimiter = delim
		}
	}

	delimiterPresence := 0.0
	if bestAvgCount > 0 {
		delimiterPresence = 1.0
	}

	quotedPresence := 0.0
	if strings.Contains(input, `"`) {
		quotedPresence = 1.0
	}

	headerLikeness := fd.headerLikeness(lines[0], bestDelimiter)

	return bestConsistency*0.5 + delimiterPresence*0.2 + quotedPresence*0.1 + headerLikeness*0.2
}

// headerLikeness returns the fraction of first-line fields matching an
// identifier pattern.
func (fd *FormatDetector) headerLikeness(firstLine string, delimiter rune) float64 {
	if delimiter == 0 {
		return 0.0
	}
	fields := splitUnquoted(firstLine, delimiter)
	if len(fields) == 0 {
		return 0.0
	}
	matching := 0
	for _, field := range fields {
		if identifierPattern.MatchString(strings.TrimSpace(field)) {
			matching++
		}
	}
	return float64(matching) / float64(len(fields))
}

// consistencyScore converts per-line delimiter counts into a [0,1] score.
// Identical counts across every line score a full 1.0; otherwise the score
// decays with the relative standard deviation.
func consistencyScore(counts []float64) (score, avg float64) {
	sum := 0.0
	for _, c := range counts {
		sum += c
	}
	avg = sum / float64(len(counts))
	if avg == 0 {
		return 0.0, 0.0
	}

	variance := 0.0
	allEqual := true
	for _, c := range counts {
		d := c - avg
		variance += d * d
		if c != counts[0] {
			allEqual = false
		}
	}
	variance /= float64(len(counts))

	if allEqual {
		return 1.0, avg
	}

	stdDev := math.Sqrt(variance)
	return 1.0 / (1.0 + stdDev/avg), avg
}

// nonEmptyLines splits input into lines, dropping blank ones
func nonEmptyLines(input string) []string {
	raw := strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
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

// splitUnquoted splits a line on a delimiter, ignoring quoted regions
func splitUnquoted(line string, delimiter rune) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == delimiter && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, current.String())
	return fields
}
