package textdiff

import (
	"testing"

	"github.com/aleister1102/datadiff/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffLines_IdenticalInputs(t *testing.T) {
	differ := NewTextDiffer(Options{}, zerolog.Nop())

	result := differ.DiffLines("same\ntext", "same\ntext")

	require.Len(t, result.Changes, 2)
	assert.Equal(t, 2, result.Stats.Unchanged)
	assert.Equal(t, 0, result.Stats.Additions)
	assert.Equal(t, 0, result.Stats.Deletions)
	assert.Equal(t, 0, result.Stats.Modifications)
	for _, change := range result.Changes {
		assert.Equal(t, models.ChangeUnchanged, change.Type)
	}
}

func TestDiffLines_ModifiedLine(t *testing.T) {
	differ := NewTextDiffer(Options{}, zerolog.Nop())

	result := differ.DiffLines("a\nb\nc", "a\nx\nc")

	require.Len(t, result.Changes, 3)

	assert.Equal(t, models.ChangeUnchanged, result.Changes[0].Type)
	assert.Equal(t, "a", result.Changes[0].LeftContent)

	// Simultaneous non-LCS lines pair up as one modification, not add+delete.
	assert.Equal(t, models.ChangeModified, result.Changes[1].Type)
	assert.Equal(t, "b", result.Changes[1].LeftContent)
	assert.Equal(t, "x", result.Changes[1].RightContent)
	assert.Equal(t, 2, result.Changes[1].LeftLineNumber)
	assert.Equal(t, 2, result.Changes[1].RightLineNumber)

	assert.Equal(t, models.ChangeUnchanged, result.Changes[2].Type)
	assert.Equal(t, 1, result.Stats.Modifications)
	assert.Equal(t, 2, result.Stats.Unchanged)
}

func TestDiffLines_AddedLine(t *testing.T) {
	differ := NewTextDiffer(Options{}, zerolog.Nop())

	result := differ.DiffLines("a\nc", "a\nb\nc")

	require.Len(t, result.Changes, 3)
	assert.Equal(t, models.ChangeUnchanged, result.Changes[0].Type)

	assert.Equal(t, models.ChangeAdded, result.Changes[1].Type)
	assert.Equal(t, "b", result.Changes[1].RightContent)
	assert.Equal(t, 2, result.Changes[1].RightLineNumber)
	assert.Equal(t, 0, result.Changes[1].LeftLineNumber)

	assert.Equal(t, models.ChangeUnchanged, result.Changes[2].Type)
	assert.Equal(t, 2, result.Changes[2].LeftLineNumber)
	assert.Equal(t, 3, result.Changes[2].RightLineNumber)
}

func TestDiffLines_DeletedLine(t *testing.T) {
	differ := NewTextDiffer(Options{}, zerolog.Nop())

	result := differ.DiffLines("a\nb\nc", "a\nc")

	require.Len(t, result.Changes, 3)
	assert.Equal(t, models.ChangeDeleted, result.Changes[1].Type)
	assert.Equal(t, "b", result.Changes[1].LeftContent)
	assert.Equal(t, 2, result.Changes[1].LeftLineNumber)
	assert.Equal(t, 1, result.Stats.Deletions)
}

func TestDiffLines_Symmetry(t *testing.T) {
	differ := NewTextDiffer(Options{}, zerolog.Nop())
	left := "a\nb\nc\nd"
	right := "a\nc\ne"

	forward := differ.DiffLines(left, right)
	backward := differ.DiffLines(right, left)

	// Swapping the inputs swaps additions and deletions.
	assert.Equal(t, forward.Stats.Additions, backward.Stats.Deletions)
	assert.Equal(t, forward.Stats.Deletions, backward.Stats.Additions)
	assert.Equal(t, forward.Stats.Modifications, backward.Stats.Modifications)
	assert.Equal(t, forward.Stats.Unchanged, backward.Stats.Unchanged)
}

func TestDiffLines_IgnoreCase(t *testing.T) {
	differ := NewTextDiffer(Options{IgnoreCase: true}, zerolog.Nop())

	result := differ.DiffLines("Hello\nWorld", "hello\nworld")

	require.Len(t, result.Changes, 2)
	assert.Equal(t, 2, result.Stats.Unchanged)

	// Normalization is comparison-only; output keeps original content.
	assert.Equal(t, "Hello", result.Changes[0].LeftContent)
	assert.Equal(t, "hello", result.Changes[0].RightContent)
}

func TestDiffLines_IgnoreWhitespace(t *testing.T) {
	differ := NewTextDiffer(Options{IgnoreWhitespace: true}, zerolog.Nop())

	result := differ.DiffLines("  indented", "indented")

	require.Len(t, result.Changes, 1)
	assert.Equal(t, models.ChangeUnchanged, result.Changes[0].Type)
	assert.Equal(t, "  indented", result.Changes[0].LeftContent)
}

func TestDiffLines_IgnoreBlankLines(t *testing.T) {
	differ := NewTextDiffer(Options{IgnoreBlankLines: true}, zerolog.Nop())

	result := differ.DiffLines("a\n\nb", "a\nb")

	require.Len(t, result.Changes, 2)
	assert.Equal(t, 2, result.Stats.Unchanged)

	// Line numbers reference positions in the unfiltered input.
	assert.Equal(t, 3, result.Changes[1].LeftLineNumber)
	assert.Equal(t, 2, result.Changes[1].RightLineNumber)
}

func TestDiffLines_BlankLinesCompareWithoutOption(t *testing.T) {
	differ := NewTextDiffer(Options{}, zerolog.Nop())

	result := differ.DiffLines("a\n\nb", "a\nb")

	assert.Equal(t, 1, result.Stats.Deletions)
	assert.Equal(t, 2, result.Stats.Unchanged)
}

func TestDiffLines_CompletelyDifferent(t *testing.T) {
	differ := NewTextDiffer(Options{}, zerolog.Nop())

	result := differ.DiffLines("x\ny", "p\nq")

	require.Len(t, result.Changes, 2)
	assert.Equal(t, 2, result.Stats.Modifications)
}

func TestDiffLines_EmptyInputs(t *testing.T) {
	differ := NewTextDiffer(Options{}, zerolog.Nop())

	result := differ.DiffLines("", "")

	// An empty string is a single empty line, which compares unchanged.
	require.Len(t, result.Changes, 1)
	assert.Equal(t, models.ChangeUnchanged, result.Changes[0].Type)
}

func TestDiffLines_Idempotence(t *testing.T) {
	differ := NewTextDiffer(Options{}, zerolog.Nop())
	left := "alpha\nbeta\ngamma"
	right := "alpha\ngamma\ndelta"

	first := differ.DiffLines(left, right)
	second := differ.DiffLines(left, right)

	assert.Equal(t, first, second)
}
