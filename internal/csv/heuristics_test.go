package csv

import (
	"testing"

	"github.com/aleister1102/datadiff/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDelimiter_Comma(t *testing.T) {
	h := NewHeuristics()

	scores := h.DetectDelimiter("a,b,c\nd,e,f\ng,h,i")

	require.NotEmpty(t, scores)
	assert.Equal(t, ",", scores[0].Delimiter)
	assert.Greater(t, scores[0].Confidence, 0.5)
}

func TestDetectDelimiter_Pipe(t *testing.T) {
	h := NewHeuristics()

	scores := h.DetectDelimiter("a|b\nc|d\ne|f")

	assert.Equal(t, "|", scores[0].Delimiter)
}

func TestDetectDelimiter_QuotedDelimitersIgnored(t *testing.T) {
	h := NewHeuristics()

	// Semicolons only appear inside quotes; commas structure the rows.
	scores := h.DetectDelimiter("\"a;b\",c\n\"d;e\",f")

	assert.Equal(t, ",", scores[0].Delimiter)
}

func TestDetectDelimiter_ReturnsAllCandidatesSorted(t *testing.T) {
	h := NewHeuristics()

	scores := h.DetectDelimiter("a,b\nc,d")

	assert.Len(t, scores, 5)
	for i := 1; i < len(scores); i++ {
		assert.GreaterOrEqual(t, scores[i-1].Confidence, scores[i].Confidence)
	}
}

func TestDetectHeader_TypicalHeader(t *testing.T) {
	h := NewHeuristics()

	rows := [][]string{
		{"name", "age", "city"},
		{"alice", "30", "berlin"},
		{"bob", "25", "paris"},
	}

	assert.True(t, h.DetectHeader(rows))
}

func TestDetectHeader_SingleRow(t *testing.T) {
	h := NewHeuristics()

	assert.False(t, h.DetectHeader([][]string{{"name", "age"}}))
}

func TestDetectHeader_RepeatedFirstRowValues(t *testing.T) {
	h := NewHeuristics()

	rows := [][]string{
		{"x", "x", "x"},
		{"y", "y", "y"},
	}

	assert.False(t, h.DetectHeader(rows))
}

func TestInferColumnType_Integer(t *testing.T) {
	h := NewHeuristics()

	assert.Equal(t, models.ColumnTypeInteger, h.InferColumnType([]string{"1", "-2", "300"}))
}

func TestInferColumnType_Float(t *testing.T) {
	h := NewHeuristics()

	// Integers count as floats, so one decimal value tips the column to float.
	assert.Equal(t, models.ColumnTypeFloat, h.InferColumnType([]string{"1.5", "2", "3"}))
}

func TestInferColumnType_Boolean(t *testing.T) {
	h := NewHeuristics()

	assert.Equal(t, models.ColumnTypeBoolean, h.InferColumnType([]string{"true", "false", "yes"}))
}

func TestInferColumnType_ZeroOneIsInteger(t *testing.T) {
	h := NewHeuristics()

	// "0"/"1" satisfy both predicates; integer wins by priority.
	assert.Equal(t, models.ColumnTypeInteger, h.InferColumnType([]string{"1", "0", "1"}))
}

func TestInferColumnType_Date(t *testing.T) {
	h := NewHeuristics()

	assert.Equal(t, models.ColumnTypeDate, h.InferColumnType([]string{"2024-01-01", "2023-12-31"}))
}

func TestInferColumnType_NinetyPercentThreshold(t *testing.T) {
	h := NewHeuristics()

	samples := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "oops"}

	assert.Equal(t, models.ColumnTypeInteger, h.InferColumnType(samples))
}

func TestInferColumnType_Mixed(t *testing.T) {
	h := NewHeuristics()

	assert.Equal(t, models.ColumnTypeMixed, h.InferColumnType([]string{"abc", "123"}))
}

func TestInferColumnType_String(t *testing.T) {
	h := NewHeuristics()

	assert.Equal(t, models.ColumnTypeString, h.InferColumnType([]string{"abc", "def"}))
}

func TestInferColumnType_EmptySamplesAreNull(t *testing.T) {
	h := NewHeuristics()

	assert.Equal(t, models.ColumnTypeNull, h.InferColumnType([]string{"", "  ", ""}))
	assert.Equal(t, models.ColumnTypeNull, h.InferColumnType(nil))
}

func TestComputeStringSimilarity(t *testing.T) {
	h := NewHeuristics()

	assert.Equal(t, 1.0, h.ComputeStringSimilarity("same", "same"))
	assert.Equal(t, 1.0, h.ComputeStringSimilarity("", ""))
	assert.Equal(t, 0.0, h.ComputeStringSimilarity("abc", ""))
	assert.InDelta(t, 1.0-3.0/7.0, h.ComputeStringSimilarity("kitten", "sitting"), 0.001)
}

func TestComputeJaccardSimilarity(t *testing.T) {
	h := NewHeuristics()

	assert.InDelta(t, 1.0/3.0, h.ComputeJaccardSimilarity([]string{"a", "b"}, []string{"b", "c"}), 0.001)
	assert.Equal(t, 1.0, h.ComputeJaccardSimilarity([]string{"A", " b"}, []string{"a", "b"}))
	assert.Equal(t, 1.0, h.ComputeJaccardSimilarity(nil, nil))
	assert.Equal(t, 0.0, h.ComputeJaccardSimilarity([]string{"a"}, []string{"b"}))
}
