package detector

import (
	"testing"

	"github.com/aleister1102/datadiff/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDetectFormat_EmptyInput(t *testing.T) {
	fd := NewFormatDetector()

	detection := fd.DetectFormat("   \n  ")

	assert.Equal(t, models.FormatText, detection.Format)
	assert.Equal(t, 1.0, detection.Confidence)
}

func TestDetectFormat_ValidJSONObject(t *testing.T) {
	fd := NewFormatDetector()

	detection := fd.DetectFormat(`{"name": "alice", "age": 30}`)

	assert.Equal(t, models.FormatJSON, detection.Format)
	assert.Equal(t, 1.0, detection.Confidence)
}

func TestDetectFormat_ValidJSONArray(t *testing.T) {
	fd := NewFormatDetector()

	detection := fd.DetectFormat(`[1, 2, 3]`)

	assert.Equal(t, models.FormatJSON, detection.Format)
	assert.Equal(t, 1.0, detection.Confidence)
}

func TestDetectFormat_InvalidJSONWithMarkers(t *testing.T) {
	fd := NewFormatDetector()

	// Trailing comma makes it invalid, but the key markers remain a signal.
	detection := fd.DetectFormat(`{"a": 1,}`)

	assert.Equal(t, models.FormatJSON, detection.Format)
	assert.InDelta(t, 0.6, detection.Confidence, 0.001)
}

func TestDetectFormat_CSV(t *testing.T) {
	fd := NewFormatDetector()

	detection := fd.DetectFormat("name,age\nalice,30\nbob,25")

	assert.Equal(t, models.FormatCSV, detection.Format)
	assert.GreaterOrEqual(t, detection.Confidence, 0.7)
}

func TestDetectFormat_TSV(t *testing.T) {
	fd := NewFormatDetector()

	detection := fd.DetectFormat("name\tage\nalice\t30\nbob\t25")

	assert.Equal(t, models.FormatCSV, detection.Format)
}

func TestDetectFormat_PlainText(t *testing.T) {
	fd := NewFormatDetector()

	detection := fd.DetectFormat("hello world\nthis is plain text")

	assert.Equal(t, models.FormatText, detection.Format)
	assert.GreaterOrEqual(t, detection.Confidence, 0.3)
}

func TestDetectFormat_SingleDelimitedLineIsText(t *testing.T) {
	fd := NewFormatDetector()

	// One line is not enough structure to call it CSV.
	detection := fd.DetectFormat("a,b,c")

	assert.Equal(t, models.FormatText, detection.Format)
}

func TestDetectFormatFromPair_Agreement(t *testing.T) {
	fd := NewFormatDetector()

	detection := fd.DetectFormatFromPair(`{"a": 1}`, `{"a": 2}`)

	assert.Equal(t, models.FormatJSON, detection.Format)
	assert.Equal(t, 1.0, detection.Confidence)
}

func TestDetectFormatFromPair_AgreementTakesLowerConfidence(t *testing.T) {
	fd := NewFormatDetector()

	detection := fd.DetectFormatFromPair("id,name\n1,alice\n2,bob", "id,name\n1,alice")

	assert.Equal(t, models.FormatCSV, detection.Format)
	assert.InDelta(t, 0.9, detection.Confidence, 0.001)
}

func TestDetectFormatFromPair_DisagreementResolvedByPriority(t *testing.T) {
	fd := NewFormatDetector()

	// Confident JSON vs confident text resolves to JSON at a discount.
	detection := fd.DetectFormatFromPair(`{"a": 1}`, "hello world\nmore prose here")

	assert.Equal(t, models.FormatJSON, detection.Format)
	assert.InDelta(t, 0.6, detection.Confidence, 0.001)
}

func TestDetectFormatFromPair_ConfidentSideWins(t *testing.T) {
	fd := NewFormatDetector()

	// The ragged right side scores weakly, so the confident JSON side wins
	// outright with its own confidence.
	detection := fd.DetectFormatFromPair(`{"a": 1}`, "a,b\nc\nd,e,f")

	assert.Equal(t, models.FormatJSON, detection.Format)
	assert.Equal(t, 1.0, detection.Confidence)
}
