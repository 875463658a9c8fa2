package textdiff

import (
	"testing"

	"github.com/aleister1102/datadiff/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffChars_IdenticalInputs(t *testing.T) {
	differ := NewTextDiffer(Options{}, zerolog.Nop())

	result := differ.DiffChars("abc", "abc")

	// The whole input coalesces into a single unchanged run.
	require.Len(t, result.Changes, 1)
	assert.Equal(t, models.ChangeUnchanged, result.Changes[0].Type)
	assert.Equal(t, "abc", result.Changes[0].LeftContent)
	assert.Equal(t, "abc", result.Changes[0].RightContent)
}

func TestDiffChars_TrailingModification(t *testing.T) {
	differ := NewTextDiffer(Options{}, zerolog.Nop())

	result := differ.DiffChars("abc", "abd")

	require.Len(t, result.Changes, 2)

	assert.Equal(t, models.ChangeUnchanged, result.Changes[0].Type)
	assert.Equal(t, "ab", result.Changes[0].LeftContent)
	assert.Equal(t, 1, result.Changes[0].LeftLineNumber)
	assert.Equal(t, 1, result.Changes[0].RightLineNumber)

	assert.Equal(t, models.ChangeModified, result.Changes[1].Type)
	assert.Equal(t, "c", result.Changes[1].LeftContent)
	assert.Equal(t, "d", result.Changes[1].RightContent)
	assert.Equal(t, 3, result.Changes[1].LeftLineNumber)
	assert.Equal(t, 3, result.Changes[1].RightLineNumber)
}

func TestDiffChars_KittenSitting(t *testing.T) {
	differ := NewTextDiffer(Options{}, zerolog.Nop())

	result := differ.DiffChars("kitten", "sitting")

	require.Len(t, result.Changes, 5)

	assert.Equal(t, models.ChangeModified, result.Changes[0].Type)
	assert.Equal(t, "k", result.Changes[0].LeftContent)
	assert.Equal(t, "s", result.Changes[0].RightContent)

	assert.Equal(t, models.ChangeUnchanged, result.Changes[1].Type)
	assert.Equal(t, "itt", result.Changes[1].LeftContent)

	assert.Equal(t, models.ChangeModified, result.Changes[2].Type)
	assert.Equal(t, "e", result.Changes[2].LeftContent)
	assert.Equal(t, "i", result.Changes[2].RightContent)

	assert.Equal(t, models.ChangeUnchanged, result.Changes[3].Type)
	assert.Equal(t, "n", result.Changes[3].LeftContent)

	assert.Equal(t, models.ChangeAdded, result.Changes[4].Type)
	assert.Equal(t, "g", result.Changes[4].RightContent)

	assert.Equal(t, 1, result.Stats.Additions)
	assert.Equal(t, 2, result.Stats.Modifications)
	assert.Equal(t, 2, result.Stats.Unchanged)
}

func TestDiffChars_PureAddition(t *testing.T) {
	differ := NewTextDiffer(Options{}, zerolog.Nop())

	result := differ.DiffChars("ab", "abcd")

	require.Len(t, result.Changes, 2)
	assert.Equal(t, models.ChangeUnchanged, result.Changes[0].Type)
	assert.Equal(t, models.ChangeAdded, result.Changes[1].Type)
	assert.Equal(t, "cd", result.Changes[1].RightContent)
	assert.Equal(t, 3, result.Changes[1].RightLineNumber)
}

func TestDiffChars_IgnoreCase(t *testing.T) {
	differ := NewTextDiffer(Options{IgnoreCase: true}, zerolog.Nop())

	result := differ.DiffChars("ABC", "abc")

	require.Len(t, result.Changes, 1)
	assert.Equal(t, models.ChangeUnchanged, result.Changes[0].Type)
	assert.Equal(t, "ABC", result.Changes[0].LeftContent)
	assert.Equal(t, "abc", result.Changes[0].RightContent)
}

func TestDiffChars_IgnoreWhitespaceTrimsEnds(t *testing.T) {
	differ := NewTextDiffer(Options{IgnoreWhitespace: true}, zerolog.Nop())

	result := differ.DiffChars("  abc  ", "abc")

	require.Len(t, result.Changes, 1)
	assert.Equal(t, models.ChangeUnchanged, result.Changes[0].Type)
	assert.Equal(t, "abc", result.Changes[0].LeftContent)
}

func TestDiffChars_Unicode(t *testing.T) {
	differ := NewTextDiffer(Options{}, zerolog.Nop())

	result := differ.DiffChars("héllo", "hèllo")

	require.Len(t, result.Changes, 3)
	assert.Equal(t, models.ChangeUnchanged, result.Changes[0].Type)
	assert.Equal(t, "h", result.Changes[0].LeftContent)
	assert.Equal(t, models.ChangeModified, result.Changes[1].Type)
	assert.Equal(t, "é", result.Changes[1].LeftContent)
	assert.Equal(t, "è", result.Changes[1].RightContent)
	assert.Equal(t, models.ChangeUnchanged, result.Changes[2].Type)
	assert.Equal(t, "llo", result.Changes[2].LeftContent)
}
