package textdiff

import (
	"strings"

	"github.com/aleister1102/datadiff/internal/models"
	"github.com/rs/zerolog"
)

// Options control how text is normalized before comparison.
// Normalization is comparison-only: output always carries original content.
type Options struct {
	IgnoreCase       bool
	IgnoreWhitespace bool
	IgnoreBlankLines bool
}

// TextDiffer compares plain text at line or character granularity.
type TextDiffer struct {
	options Options
	logger  zerolog.Logger
}

// NewTextDiffer creates a new text differ
func NewTextDiffer(options Options, logger zerolog.Logger) *TextDiffer {
	return &TextDiffer{
		options: options,
		logger:  logger.With().Str("component", "TextDiffer").Logger(),
	}
}

// numberedLine pairs a line's original 1-indexed position with its content.
type numberedLine struct {
	number  int
	content string
}

// DiffLines compares two inputs line by line against their LCS.
func (td *TextDiffer) DiffLines(left, right string) *models.DiffResult {
	leftLines := td.collectLines(left)
	rightLines := td.collectLines(right)

	normLeft := td.normalizeAll(leftLines)
	normRight := td.normalizeAll(rightLines)

	lcs := computeLCS(normLeft, normRight)

	result := &models.DiffResult{}
	i, j, k := 0, 0, 0

	for i < len(leftLines) || j < len(rightLines) {
		leftMatchesLCS := i < len(leftLines) && k < len(lcs) && normLeft[i] == lcs[k]
		rightMatchesLCS := j < len(rightLines) && k < len(lcs) && normRight[j] == lcs[k]

		var change models.DiffChange
		switch {
		case leftMatchesLCS && rightMatchesLCS:
			change = models.DiffChange{
				Type:            models.ChangeUnchanged,
				LeftLineNumber:  leftLines[i].number,
				RightLineNumber: rightLines[j].number,
				LeftContent:     leftLines[i].content,
				RightContent:    rightLines[j].content,
			}
			i++
			j++
			k++
		case leftMatchesLCS:
			// Left already lines up with the LCS; the right line is new.
			change = models.DiffChange{
				Type:            models.ChangeAdded,
				RightLineNumber: rightLines[j].number,
				RightContent:    rightLines[j].content,
			}
			j++
		case rightMatchesLCS:
			change = models.DiffChange{
				Type:           models.ChangeDeleted,
				LeftLineNumber: leftLines[i].number,
				LeftContent:    leftLines[i].content,
			}
			i++
		case i < len(leftLines) && j < len(rightLines):
			// Neither side matches the LCS but both remain: pair them
			// positionally as a modification. No alternate alignment is
			// explored for this case.
			change = models.DiffChange{
				Type:            models.ChangeModified,
				LeftLineNumber:  leftLines[i].number,
				RightLineNumber: rightLines[j].number,
				LeftContent:     leftLines[i].content,
				RightContent:    rightLines[j].content,
			}
			i++
			j++
		case i < len(leftLines):
			change = models.DiffChange{
				Type:           models.ChangeDeleted,
				LeftLineNumber: leftLines[i].number,
				LeftContent:    leftLines[i].content,
			}
			i++
		default:
			change = models.DiffChange{
				Type:            models.ChangeAdded,
				RightLineNumber: rightLines[j].number,
				RightContent:    rightLines[j].content,
			}
			j++
		}

		result.Changes = append(result.Changes, change)
		result.Stats.Add(change.Type)
	}

	return result
}

// collectLines splits input into numbered lines, honoring IgnoreBlankLines.
// Numbers always reference positions in the unfiltered input.
func (td *TextDiffer) collectLines(input string) []numberedLine {
	raw := strings.Split(input, "\n")
	lines := make([]numberedLine, 0, len(raw))
	for idx, content := range raw {
		if td.options.IgnoreBlankLines && strings.TrimSpace(content) == "" {
			continue
		}
		lines = append(lines, numberedLine{number: idx + 1, content: content})
	}
	return lines
}

// normalizeAll maps lines to their comparison keys
func (td *TextDiffer) normalizeAll(lines []numberedLine) []string {
	normalized := make([]string, len(lines))
	for i, line := range lines {
		normalized[i] = td.normalize(line.content)
	}
	return normalized
}

// normalize produces the comparison key for one line
func (td *TextDiffer) normalize(content string) string {
	if td.options.IgnoreWhitespace {
		content = strings.TrimSpace(content)
	}
	if td.options.IgnoreCase {
		content = strings.ToLower(content)
	}
	return content
}
