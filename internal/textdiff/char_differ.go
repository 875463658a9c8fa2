package textdiff

import (
	"strings"

	"github.com/aleister1102/datadiff/internal/models"
)

// charRun accumulates contiguous like-typed character changes so the result
// holds one DiffChange per run instead of one per character.
type charRun struct {
	changeType models.ChangeType
	leftStart  int
	rightStart int
	leftBuf    strings.Builder
	rightBuf   strings.Builder
	active     bool
}

// DiffChars compares two inputs character by character against their LCS,
// coalescing contiguous runs of like-typed changes.
func (td *TextDiffer) DiffChars(left, right string) *models.DiffResult {
	if td.options.IgnoreWhitespace {
		left = strings.TrimSpace(left)
		right = strings.TrimSpace(right)
	}

	leftChars := strings.Split(left, "")
	rightChars := strings.Split(right, "")

	normLeft := td.normalizeChars(leftChars)
	normRight := td.normalizeChars(rightChars)

	lcs := computeLCS(normLeft, normRight)

	result := &models.DiffResult{}
	run := &charRun{}
	i, j, k := 0, 0, 0

	for i < len(leftChars) || j < len(rightChars) {
		leftMatchesLCS := i < len(leftChars) && k < len(lcs) && normLeft[i] == lcs[k]
		rightMatchesLCS := j < len(rightChars) && k < len(lcs) && normRight[j] == lcs[k]

		switch {
		case leftMatchesLCS && rightMatchesLCS:
			run.extend(result, models.ChangeUnchanged, i+1, j+1, leftChars[i], rightChars[j])
			i++
			j++
			k++
		case leftMatchesLCS:
			run.extend(result, models.ChangeAdded, 0, j+1, "", rightChars[j])
			j++
		case rightMatchesLCS:
			run.extend(result, models.ChangeDeleted, i+1, 0, leftChars[i], "")
			i++
		case i < len(leftChars) && j < len(rightChars):
			run.extend(result, models.ChangeModified, i+1, j+1, leftChars[i], rightChars[j])
			i++
			j++
		case i < len(leftChars):
			run.extend(result, models.ChangeDeleted, i+1, 0, leftChars[i], "")
			i++
		default:
			run.extend(result, models.ChangeAdded, 0, j+1, "", rightChars[j])
			j++
		}
	}

	run.flush(result)
	return result
}

// normalizeChars maps characters to their comparison keys
func (td *TextDiffer) normalizeChars(chars []string) []string {
	if !td.options.IgnoreCase {
		return chars
	}
	normalized := make([]string, len(chars))
	for i, c := range chars {
		normalized[i] = strings.ToLower(c)
	}
	return normalized
}

// extend appends one character to the current run, flushing first when the
// change type switches.
func (cr *charRun) extend(result *models.DiffResult, changeType models.ChangeType, leftPos, rightPos int, leftChar, rightChar string) {
	if cr.active && cr.changeType != changeType {
		cr.flush(result)
	}
	if !cr.active {
		cr.active = true
		cr.changeType = changeType
		cr.leftStart = leftPos
		cr.rightStart = rightPos
	}
	cr.leftBuf.WriteString(leftChar)
	cr.rightBuf.WriteString(rightChar)
}

// flush emits the buffered run as a single DiffChange
func (cr *charRun) flush(result *models.DiffResult) {
	if !cr.active {
		return
	}

	change := models.DiffChange{
		Type:            cr.changeType,
		LeftLineNumber:  cr.leftStart,
		RightLineNumber: cr.rightStart,
		LeftContent:     cr.leftBuf.String(),
		RightContent:    cr.rightBuf.String(),
	}
	result.Changes = append(result.Changes, change)
	result.Stats.Add(cr.changeType)

	cr.active = false
	cr.leftBuf.Reset()
	cr.rightBuf.Reset()
}
