package jsondiff

import (
	"encoding/json"

	"github.com/aleister1102/datadiff/internal/common/errorwrapper"
	"github.com/aleister1102/datadiff/internal/models"
	"github.com/rs/zerolog"
)

// Options control JSON comparison.
type Options struct {
	Mode             models.DiffMode
	IgnoreKeyOrder   bool
	IgnoreFormatting bool
}

// Differ compares two JSON documents structurally. Simple mode compares only
// the top level, treating nested structures as opaque stringified blobs;
// advanced mode recurses without a depth limit.
type Differ struct {
	options Options
	logger  zerolog.Logger
}

// NewDiffer creates a new JSON differ
func NewDiffer(options Options, logger zerolog.Logger) *Differ {
	return &Differ{
		options: options,
		logger:  logger.With().Str("component", "JSONDiffer").Logger(),
	}
}

// Diff parses both inputs and compares the resulting values. Parse failures
// are fatal and identify the offending side.
func (d *Differ) Diff(leftJson, rightJson string) (*models.DiffResult, error) {
	var leftValue, rightValue interface{}

	if err := json.Unmarshal([]byte(leftJson), &leftValue); err != nil {
		return nil, errorwrapper.NewParseFailureError(errorwrapper.SideLeft, "json", err)
	}
	if err := json.Unmarshal([]byte(rightJson), &rightValue); err != nil {
		return nil, errorwrapper.NewParseFailureError(errorwrapper.SideRight, "json", err)
	}

	// Normalization only produces comparison copies; inputs stay untouched.
	// Key order is already immaterial after unmarshaling into maps, so only
	// string trimming has a structural effect here.
	if d.options.IgnoreKeyOrder || d.options.IgnoreFormatting {
		leftValue = normalizeValue(leftValue, d.options.IgnoreFormatting)
		rightValue = normalizeValue(rightValue, d.options.IgnoreFormatting)
	}

	maxDepth := -1 // unbounded
	if d.options.Mode != models.ModeAdvanced {
		maxDepth = 1
	}

	result := &models.DiffResult{}
	d.compareValues(leftValue, rightValue, "$", 0, maxDepth, result)
	return result, nil
}

// compareValues recursively compares two parsed JSON values, appending one
// change per leaf or per opaque substructure.
func (d *Differ) compareValues(left, right interface{}, path string, depth, maxDepth int, result *models.DiffResult) {
	// At the depth limit substructures are compared as stringified blobs.
	if maxDepth >= 0 && depth >= maxDepth && (isContainer(left) || isContainer(right)) {
		if stringify(left) == stringify(right) {
			d.record(result, models.ChangeUnchanged, path, left, right)
		} else {
			d.record(result, models.ChangeModified, path, left, right)
		}
		return
	}

	leftObj, leftIsObj := left.(map[string]interface{})
	rightObj, rightIsObj := right.(map[string]interface{})
	if leftIsObj && rightIsObj {
		d.compareObjects(leftObj, rightObj, path, depth, maxDepth, result)
		return
	}

	leftArr, leftIsArr := left.([]interface{})
	rightArr, rightIsArr := right.([]interface{})
	if leftIsArr && rightIsArr {
		d.compareArrays(leftArr, rightArr, path, depth, maxDepth, result)
		return
	}

	if valuesEqual(left, right) {
		d.record(result, models.ChangeUnchanged, path, left, right)
	} else {
		d.record(result, models.ChangeModified, path, left, right)
	}
}

// compareObjects unions both key sets and classifies each key by presence.
func (d *Differ) compareObjects(left, right map[string]interface{}, path string, depth, maxDepth int, result *models.DiffResult) {
	for _, key := range unionKeys(left, right) {
		childPath := path + "." + key
		leftChild, inLeft := left[key]
		rightChild, inRight := right[key]

		switch {
		case inLeft && inRight:
			d.compareValues(leftChild, rightChild, childPath, depth+1, maxDepth, result)
		case inLeft:
			d.record(result, models.ChangeDeleted, childPath, leftChild, nil)
		default:
			d.record(result, models.ChangeAdded, childPath, nil, rightChild)
		}
	}
}

// compareArrays is purely positional: elements are aligned by index, so a
// reordering shows up as modifications rather than moves.
func (d *Differ) compareArrays(left, right []interface{}, path string, depth, maxDepth int, result *models.DiffResult) {
	common := len(left)
	if len(right) < common {
		common = len(right)
	}

	for i := 0; i < common; i++ {
		d.compareValues(left[i], right[i], indexPath(path, i), depth+1, maxDepth, result)
	}
	for i := common; i < len(left); i++ {
		d.record(result, models.ChangeDeleted, indexPath(path, i), left[i], nil)
	}
	for i := common; i < len(right); i++ {
		d.record(result, models.ChangeAdded, indexPath(path, i), nil, right[i])
	}
}

// record appends one change with formatted "path: value" content
func (d *Differ) record(result *models.DiffResult, changeType models.ChangeType, path string, left, right interface{}) {
	change := models.DiffChange{Type: changeType}
	switch changeType {
	case models.ChangeAdded:
		change.RightContent = formatPathValue(path, right)
	case models.ChangeDeleted:
		change.LeftContent = formatPathValue(path, left)
	default:
		change.LeftContent = formatPathValue(path, left)
		change.RightContent = formatPathValue(path, right)
	}
	result.Changes = append(result.Changes, change)
	result.Stats.Add(changeType)
}
