package csv

import (
	"testing"

	"github.com/aleister1102/datadiff/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noHeaderOptions() DiffOptions {
	noHeader := false
	options := DefaultDiffOptions()
	options.HasHeader = &noHeader
	return options
}

func TestCsvDiffer_PositionMatching(t *testing.T) {
	differ := NewDiffer(zerolog.Nop())

	result, err := differ.Diff("a,1\nb,2", "a,1\nb,3\nc,4", noHeaderOptions())

	require.NoError(t, err)
	require.Len(t, result.Changes, 3)

	assert.Equal(t, models.ChangeUnchanged, result.Changes[0].Type)
	assert.Equal(t, 1, result.Changes[0].LeftLineNumber)
	assert.Equal(t, 1, result.Changes[0].RightLineNumber)

	assert.Equal(t, models.ChangeModified, result.Changes[1].Type)
	assert.Equal(t, "b,2", result.Changes[1].LeftContent)
	assert.Equal(t, "b,3", result.Changes[1].RightContent)

	assert.Equal(t, models.ChangeAdded, result.Changes[2].Type)
	assert.Equal(t, "c,4", result.Changes[2].RightContent)
	assert.Equal(t, 3, result.Changes[2].RightLineNumber)
}

func TestCsvDiffer_PrimaryKeyMatching(t *testing.T) {
	differ := NewDiffer(zerolog.Nop())

	options := DefaultDiffOptions()
	options.Mode = models.ModeAdvanced
	options.MatchStrategy = models.MatchByPrimaryKey
	options.KeyColumns = []string{"id"}

	left := "id,name\n1,alice\n2,bob\n3,carol"
	right := "id,name\n1,alice\n3,caroline\n4,dave"

	result, err := differ.Diff(left, right, options)

	require.NoError(t, err)
	require.Len(t, result.Changes, 4)

	assert.Equal(t, models.ChangeUnchanged, result.Changes[0].Type)
	assert.Equal(t, "1,alice", result.Changes[0].LeftContent)

	assert.Equal(t, models.ChangeDeleted, result.Changes[1].Type)
	assert.Equal(t, "2,bob", result.Changes[1].LeftContent)

	assert.Equal(t, models.ChangeModified, result.Changes[2].Type)
	assert.Equal(t, "3,carol", result.Changes[2].LeftContent)
	assert.Equal(t, "3,caroline", result.Changes[2].RightContent)

	assert.Equal(t, models.ChangeAdded, result.Changes[3].Type)
	assert.Equal(t, "4,dave", result.Changes[3].RightContent)

	// Data rows sit below the header, so line numbers start at 2.
	assert.Equal(t, 2, result.Changes[0].LeftLineNumber)
	assert.Equal(t, 2, result.Changes[0].RightLineNumber)

	require.Len(t, result.CellChanges, 1)
	assert.Equal(t, "name", result.CellChanges[0].ColumnName)
	assert.Equal(t, "carol", result.CellChanges[0].LeftValue)
	assert.Equal(t, "caroline", result.CellChanges[0].RightValue)
}

func TestCsvDiffer_PrimaryKeyUnknownColumn(t *testing.T) {
	differ := NewDiffer(zerolog.Nop())

	options := DefaultDiffOptions()
	options.MatchStrategy = models.MatchByPrimaryKey
	options.KeyColumns = []string{"nope"}

	_, err := differ.Diff("id,name\n1,alice", "id,name\n1,alice", options)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "key column not found")
}

func TestCsvDiffer_PrimaryKeyRequiresKeyColumns(t *testing.T) {
	differ := NewDiffer(zerolog.Nop())

	options := DefaultDiffOptions()
	options.MatchStrategy = models.MatchByPrimaryKey

	_, err := differ.Diff("id\n1", "id\n1", options)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one key column")
}

func TestCsvDiffer_FuzzyMatching(t *testing.T) {
	differ := NewDiffer(zerolog.Nop())

	options := noHeaderOptions()
	options.MatchStrategy = models.MatchByFuzzy
	options.SimilarityThreshold = 0.5

	left := "alice,30,berlin\nbob,25,paris"
	right := "alice,31,berlin\ndave,40,rome"

	result, err := differ.Diff(left, right, options)

	require.NoError(t, err)
	require.Len(t, result.Changes, 3)

	assert.Equal(t, models.ChangeModified, result.Changes[0].Type)
	assert.Equal(t, "alice,30,berlin", result.Changes[0].LeftContent)
	assert.Equal(t, "alice,31,berlin", result.Changes[0].RightContent)

	assert.Equal(t, models.ChangeDeleted, result.Changes[1].Type)
	assert.Equal(t, "bob,25,paris", result.Changes[1].LeftContent)

	assert.Equal(t, models.ChangeAdded, result.Changes[2].Type)
	assert.Equal(t, "dave,40,rome", result.Changes[2].RightContent)
}

func TestCsvDiffer_SimpleModeSkipsSchemaChanges(t *testing.T) {
	differ := NewDiffer(zerolog.Nop())

	left := "id,old\n1,x"
	right := "id,new\n1,x"

	result, err := differ.Diff(left, right, DefaultDiffOptions())

	require.NoError(t, err)
	assert.Empty(t, result.SchemaChanges)
	assert.Empty(t, result.CellChanges)
}

func TestCsvDiffer_AdvancedModeReportsSchemaChanges(t *testing.T) {
	differ := NewDiffer(zerolog.Nop())

	options := DefaultDiffOptions()
	options.Mode = models.ModeAdvanced

	left := "id,old\n1,x"
	right := "id,new\n1,x"

	result, err := differ.Diff(left, right, options)

	require.NoError(t, err)
	require.Len(t, result.SchemaChanges, 2)
}

func TestCsvDiffer_NormalizationReclassifiesRow(t *testing.T) {
	differ := NewDiffer(zerolog.Nop())

	options := noHeaderOptions()
	options.Mode = models.ModeAdvanced

	// The float column normalizes 7.0 and 7.00 to the same value, so the
	// textual difference is not a real change.
	result, err := differ.Diff("a,7.0", "a,7.00", options)

	require.NoError(t, err)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, models.ChangeUnchanged, result.Changes[0].Type)
	assert.Empty(t, result.CellChanges)
	assert.Equal(t, 1, result.Stats.Unchanged)
}

func TestCsvDiffer_CollectsParseWarnings(t *testing.T) {
	differ := NewDiffer(zerolog.Nop())

	result, err := differ.Diff("\"a\"x,1", "\"a\"x,1", noHeaderOptions())

	require.NoError(t, err)
	assert.Len(t, result.ParseWarnings, 2)
}

func TestCsvDiffer_IgnoreHeaderDropsFirstRow(t *testing.T) {
	differ := NewDiffer(zerolog.Nop())

	options := noHeaderOptions()
	options.IgnoreHeader = true

	result, err := differ.Diff("h1,h2\na,b", "x1,x2\na,b", options)

	require.NoError(t, err)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, models.ChangeUnchanged, result.Changes[0].Type)
	assert.Equal(t, 2, result.Changes[0].LeftLineNumber)
}

func TestCsvDiffer_UnmappedTrailingColumnsExcluded(t *testing.T) {
	differ := NewDiffer(zerolog.Nop())

	options := noHeaderOptions()
	options.Mode = models.ModeAdvanced

	// Without headers the mapping is positional up to the shorter schema, so
	// the extra left column never participates in cell comparison and the row
	// pair ends up unchanged.
	result, err := differ.Diff("a,b,c", "a,b", options)

	require.NoError(t, err)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, models.ChangeUnchanged, result.Changes[0].Type)
	assert.Empty(t, result.CellChanges)
}

func TestCsvDiffer_RaggedRowMissingCellComparesAsEmpty(t *testing.T) {
	differ := NewDiffer(zerolog.Nop())

	options := noHeaderOptions()
	options.Mode = models.ModeAdvanced

	// Both schemas are two columns wide; the second row of the right side is
	// short, so its missing cell compares as empty string.
	result, err := differ.Diff("a,b\nc,d", "a,b\nc", options)

	require.NoError(t, err)
	require.Len(t, result.Changes, 2)
	assert.Equal(t, models.ChangeModified, result.Changes[1].Type)
	require.Len(t, result.CellChanges, 1)
	assert.Equal(t, 1, result.CellChanges[0].ColumnIndex)
	assert.Equal(t, "d", result.CellChanges[0].LeftValue)
	assert.Equal(t, "", result.CellChanges[0].RightValue)
}
