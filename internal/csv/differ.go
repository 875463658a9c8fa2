package csv

import (
	"sort"
	"strings"

	"github.com/aleister1102/datadiff/internal/common/errorwrapper"
	"github.com/aleister1102/datadiff/internal/models"
	"github.com/aleister1102/datadiff/internal/normalizer"
	"github.com/rs/zerolog"
)

// DiffOptions control CSV comparison.
type DiffOptions struct {
	Mode                models.DiffMode
	Delimiter           string
	HasHeader           *bool
	IgnoreHeader        bool
	KeyColumns          []string
	MatchStrategy       models.MatchStrategy
	DetectRenames       bool
	SimilarityThreshold float64
	IgnoreCase          bool
	IgnoreWhitespace    bool
}

// DefaultDiffOptions returns CSV diff options with auto-detection enabled
func DefaultDiffOptions() DiffOptions {
	return DiffOptions{
		Mode:                models.ModeSimple,
		Delimiter:           AutoDelimiter,
		MatchStrategy:       models.MatchByPosition,
		SimilarityThreshold: 0.8,
	}
}

// Differ compares two CSV documents: schema changes, row matching, and (in
// advanced mode) cell-level comparison with type-aware normalization.
type Differ struct {
	parser        *Parser
	schemaBuilder *SchemaBuilder
	heuristics    *Heuristics
	normalizer    *normalizer.ValueNormalizer
	logger        zerolog.Logger
}

// NewDiffer creates a new CSV differ
func NewDiffer(logger zerolog.Logger) *Differ {
	heuristics := NewHeuristics()
	return &Differ{
		parser:        NewParser(logger),
		schemaBuilder: NewSchemaBuilder(heuristics),
		heuristics:    heuristics,
		normalizer:    normalizer.NewValueNormalizer(),
		logger:        logger.With().Str("component", "CSVDiffer").Logger(),
	}
}

// Diff parses both inputs and compares them per the configured strategy.
func (d *Differ) Diff(leftCsv, rightCsv string, options DiffOptions) (*models.CsvDiffResult, error) {
	parseOpts := ParseOptions{Delimiter: options.Delimiter, HasHeader: options.HasHeader}
	if parseOpts.Delimiter == "" {
		parseOpts.Delimiter = AutoDelimiter
	}

	left, err := d.parser.Parse(leftCsv, parseOpts)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse left CSV")
	}
	right, err := d.parser.Parse(rightCsv, parseOpts)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse right CSV")
	}

	result := &models.CsvDiffResult{}
	result.ParseWarnings = append(result.ParseWarnings, left.Errors...)
	result.ParseWarnings = append(result.ParseWarnings, right.Errors...)

	if options.Mode == models.ModeAdvanced {
		result.SchemaChanges = d.schemaBuilder.CompareSchemas(left.Schema, right.Schema, options.DetectRenames)
	}

	mapping := d.schemaBuilder.BuildColumnMapping(left.Schema, right.Schema)

	leftRows, leftOffset := dataRows(left, options.IgnoreHeader)
	rightRows, rightOffset := dataRows(right, options.IgnoreHeader)

	matches, err := d.matchRows(leftRows, rightRows, left.Schema, right.Schema, options)
	if err != nil {
		return nil, err
	}

	for _, match := range matches {
		change, cellChanges := d.buildChange(match, leftRows, rightRows, leftOffset, rightOffset,
			left.Metadata.Delimiter, right.Metadata.Delimiter, mapping, left.Schema, right.Schema, options)
		result.Changes = append(result.Changes, change)
		result.Stats.Add(change.Type)
		result.CellChanges = append(result.CellChanges, cellChanges...)
	}

	return result, nil
}

// dataRows returns the rows participating in row matching plus the 1-indexed
// line-number offset of the first data row. Header rows never participate:
// schema comparison covers them.
func dataRows(parsed *models.ParsedCSV, ignoreHeader bool) ([][]string, int) {
	if (parsed.Schema.HasHeader || ignoreHeader) && len(parsed.Rows) > 0 {
		return parsed.Rows[1:], 2
	}
	return parsed.Rows, 1
}

// matchRows dispatches to the configured row-matching strategy
func (d *Differ) matchRows(leftRows, rightRows [][]string, leftSchema, rightSchema models.CsvSchema, options DiffOptions) ([]models.RowMatch, error) {
	switch options.MatchStrategy {
	case models.MatchByPrimaryKey:
		return d.matchByPrimaryKey(leftRows, rightRows, leftSchema, rightSchema, options.KeyColumns)
	case models.MatchByFuzzy:
		return d.matchByFuzzy(leftRows, rightRows, options.SimilarityThreshold), nil
	default:
		return d.matchByPosition(leftRows, rightRows), nil
	}
}

// matchByPosition pairs rows 1:1 by index; excess rows become adds/deletes.
func (d *Differ) matchByPosition(leftRows, rightRows [][]string) []models.RowMatch {
	var matches []models.RowMatch

	common := len(leftRows)
	if len(rightRows) < common {
		common = len(rightRows)
	}

	for i := 0; i < common; i++ {
		matchType := models.ChangeModified
		if rowsEqual(leftRows[i], rightRows[i]) {
			matchType = models.ChangeUnchanged
		}
		matches = append(matches, models.RowMatch{Type: matchType, LeftIndex: i, RightIndex: i})
	}
	for i := common; i < len(leftRows); i++ {
		matches = append(matches, models.RowMatch{Type: models.ChangeDeleted, LeftIndex: i, RightIndex: -1})
	}
	for i := common; i < len(rightRows); i++ {
		matches = append(matches, models.RowMatch{Type: models.ChangeAdded, LeftIndex: -1, RightIndex: i})
	}

	return matches
}

// matchByPrimaryKey pairs rows by equality of the configured key columns.
func (d *Differ) matchByPrimaryKey(leftRows, rightRows [][]string, leftSchema, rightSchema models.CsvSchema, keyColumns []string) ([]models.RowMatch, error) {
	if len(keyColumns) == 0 {
		return nil, errorwrapper.NewValidationError("key_columns", keyColumns, "primary key matching requires at least one key column")
	}

	leftIndices, err := resolveKeyColumns(leftSchema, keyColumns)
	if err != nil {
		return nil, err
	}
	rightIndices, err := resolveKeyColumns(rightSchema, keyColumns)
	if err != nil {
		return nil, err
	}

	rightByKey := make(map[string][]int)
	for i, row := range rightRows {
		key := rowKey(row, rightIndices)
		rightByKey[key] = append(rightByKey[key], i)
	}

	var matches []models.RowMatch
	usedRight := make(map[int]bool)

	for i, row := range leftRows {
		key := rowKey(row, leftIndices)
		candidates := rightByKey[key]

		matched := -1
		for _, candidate := range candidates {
			if !usedRight[candidate] {
				matched = candidate
				break
			}
		}

		if matched == -1 {
			matches = append(matches, models.RowMatch{Type: models.ChangeDeleted, LeftIndex: i, RightIndex: -1, Key: key})
			continue
		}

		usedRight[matched] = true
		matchType := models.ChangeModified
		if rowsEqual(row, rightRows[matched]) {
			matchType = models.ChangeUnchanged
		}
		matches = append(matches, models.RowMatch{Type: matchType, LeftIndex: i, RightIndex: matched, Key: key})
	}

	for i, row := range rightRows {
		if !usedRight[i] {
			matches = append(matches, models.RowMatch{Type: models.ChangeAdded, LeftIndex: -1, RightIndex: i, Key: rowKey(row, rightIndices)})
		}
	}

	// Re-sort by original row index for stable output.
	sort.SliceStable(matches, func(a, b int) bool {
		return matchSortIndex(matches[a]) < matchSortIndex(matches[b])
	})

	return matches, nil
}

// matchByFuzzy greedily assigns each left row its best-scoring unused right
// row above the similarity threshold. O(n*m); acceptable only for small CSVs.
func (d *Differ) matchByFuzzy(leftRows, rightRows [][]string, threshold float64) []models.RowMatch {
	if threshold <= 0 {
		threshold = 0.8
	}

	var matches []models.RowMatch
	usedRight := make(map[int]bool)

	for i, leftRow := range leftRows {
		bestSimilarity := 0.0
		bestIndex := -1

		for j, rightRow := range rightRows {
			if usedRight[j] {
				continue
			}
			similarity := d.heuristics.ComputeJaccardSimilarity(leftRow, rightRow)
			if similarity >= threshold && similarity > bestSimilarity {
				bestSimilarity = similarity
				bestIndex = j
			}
		}

		if bestIndex == -1 {
			matches = append(matches, models.RowMatch{Type: models.ChangeDeleted, LeftIndex: i, RightIndex: -1})
			continue
		}

		usedRight[bestIndex] = true
		matchType := models.ChangeModified
		if bestSimilarity == 1.0 {
			matchType = models.ChangeUnchanged
		}
		matches = append(matches, models.RowMatch{
			Type:       matchType,
			LeftIndex:  i,
			RightIndex: bestIndex,
			Similarity: bestSimilarity,
		})
	}

	for j := range rightRows {
		if !usedRight[j] {
			matches = append(matches, models.RowMatch{Type: models.ChangeAdded, LeftIndex: -1, RightIndex: j})
		}
	}

	return matches
}

// buildChange converts a RowMatch into a DiffChange, running cell-level
// comparison for matched pairs in advanced mode.
func (d *Differ) buildChange(match models.RowMatch, leftRows, rightRows [][]string, leftOffset, rightOffset int,
	leftDelimiter, rightDelimiter string, mapping map[int]int, leftSchema, rightSchema models.CsvSchema,
	options DiffOptions) (models.DiffChange, []models.CellChange) {

	change := models.DiffChange{Type: match.Type}
	if match.LeftIndex >= 0 {
		change.LeftLineNumber = match.LeftIndex + leftOffset
		change.LeftContent = FormatRow(leftRows[match.LeftIndex], leftDelimiter)
	}
	if match.RightIndex >= 0 {
		change.RightLineNumber = match.RightIndex + rightOffset
		change.RightContent = FormatRow(rightRows[match.RightIndex], rightDelimiter)
	}

	if match.Type != models.ChangeModified || options.Mode != models.ModeAdvanced {
		return change, nil
	}

	cellChanges := d.compareRowCells(leftRows[match.LeftIndex], rightRows[match.RightIndex],
		mapping, leftSchema, options)
	if len(cellChanges) == 0 {
		// Normalization rendered every mapped cell equal.
		change.Type = models.ChangeUnchanged
	}
	return change, cellChanges
}

// compareRowCells walks the column mapping and reports cells that still
// differ after type-aware normalization. Missing cells in ragged rows are
// treated as empty strings; unmapped columns are excluded from comparison.
func (d *Differ) compareRowCells(leftRow, rightRow []string, mapping map[int]int, leftSchema models.CsvSchema, options DiffOptions) []models.CellChange {
	leftIndices := make([]int, 0, len(mapping))
	for li := range mapping {
		leftIndices = append(leftIndices, li)
	}
	sort.Ints(leftIndices)

	var changes []models.CellChange
	for _, li := range leftIndices {
		ri := mapping[li]
		leftValue := cellAt(leftRow, li)
		rightValue := cellAt(rightRow, ri)

		normOpts := normalizer.Options{
			IgnoreWhitespace: options.IgnoreWhitespace,
			IgnoreCase:       options.IgnoreCase,
			Type:             columnTypeAt(leftSchema, li),
		}

		if d.normalizer.Normalize(leftValue, normOpts) == d.normalizer.Normalize(rightValue, normOpts) {
			continue
		}

		changes = append(changes, models.CellChange{
			ColumnIndex: li,
			ColumnName:  columnNameAt(leftSchema, li),
			LeftValue:   leftValue,
			RightValue:  rightValue,
		})
	}
	return changes
}

func resolveKeyColumns(schema models.CsvSchema, keyColumns []string) ([]int, error) {
	byName := make(map[string]int, len(schema.Columns))
	for _, col := range schema.Columns {
		byName[strings.ToLower(col.Name)] = col.Index
	}

	indices := make([]int, 0, len(keyColumns))
	for _, name := range keyColumns {
		idx, ok := byName[strings.ToLower(name)]
		if !ok {
			return nil, errorwrapper.NewValidationError("key_columns", name, "key column not found in schema")
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

// rowKey builds the normalized join key from the configured key columns
func rowKey(row []string, keyIndices []int) string {
	parts := make([]string, len(keyIndices))
	for i, idx := range keyIndices {
		parts[i] = strings.ToLower(strings.TrimSpace(cellAt(row, idx)))
	}
	return strings.Join(parts, "|")
}

func matchSortIndex(match models.RowMatch) int {
	if match.LeftIndex >= 0 {
		return match.LeftIndex
	}
	return match.RightIndex
}

func rowsEqual(left, right []string) bool {
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if left[i] != right[i] {
			return false
		}
	}
	return true
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func columnTypeAt(schema models.CsvSchema, idx int) models.ColumnType {
	if idx >= 0 && idx < len(schema.Columns) {
		return schema.Columns[idx].Type
	}
	return models.ColumnTypeString
}

func columnNameAt(schema models.CsvSchema, idx int) string {
	if idx >= 0 && idx < len(schema.Columns) {
		return schema.Columns[idx].Name
	}
	return ""
}
